// Package engine wires the delay ring, pipeline scheduler, censorship
// worker, audio host, ASR engine, lexicon, and optional filter/refiner
// stages into the single running system described in spec §6: the control
// plane a CLI or any other front end drives through Initialize/Start/Stop.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/explicitlyaudio/streamcensor/internal/asr"
	"github.com/explicitlyaudio/streamcensor/internal/audiohost"
	"github.com/explicitlyaudio/streamcensor/internal/censor"
	"github.com/explicitlyaudio/streamcensor/internal/config"
	"github.com/explicitlyaudio/streamcensor/internal/lexicon"
	"github.com/explicitlyaudio/streamcensor/internal/modelfetch"
	"github.com/explicitlyaudio/streamcensor/internal/pipeline"
	"github.com/explicitlyaudio/streamcensor/internal/refiner"
	"github.com/explicitlyaudio/streamcensor/internal/ring"
	"github.com/explicitlyaudio/streamcensor/internal/status"
	"github.com/explicitlyaudio/streamcensor/internal/vocalfilter"
)

// ringSeconds is how much audio the delay ring holds beyond target_delay,
// so the censorship worker has room to fall behind without losing its
// write target. See spec §3 Delay Ring sizing.
const ringSeconds = 30.0

// Engine is the top-level orchestrator. One Engine owns one running
// instance of the pipeline described in spec §4.
type Engine struct {
	cfg config.Config

	ring      *ring.Ring
	scheduler *pipeline.Scheduler
	worker    *censor.Worker
	backend   audiohost.Backend
	asrEngine closer
	status    *status.Server

	workerCtx    context.Context
	workerCancel context.CancelFunc
}

// closer is satisfied by ASR engines that hold a loaded model and need
// explicit teardown (e.g. WhisperEngine); asr.ScriptedEngine does not.
type closer interface {
	Close() error
}

// New constructs an Engine for cfg without starting audio I/O or the
// background worker. Call Initialize to load the model and lexicon.
func New(cfg config.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Initialize loads the lexicon and ASR model and wires the pipeline. It must
// be called once before Start. Returns a Configuration-class error (spec
// §7) on any failure — the caller should treat these as fatal at startup.
func (e *Engine) Initialize() error {
	mode, err := config.ModeFromString(e.cfg.CensorMode)
	if err != nil {
		return err
	}

	lex, err := lexicon.Load(e.cfg.LexiconPath)
	if err != nil {
		return fmt.Errorf("engine: lexicon: %w", err)
	}

	asrEngine, err := asr.NewConfiguredEngine(e.cfg.ModelPath)
	if errors.Is(err, asr.ErrModelNotFound) {
		if fetchErr := e.autoFetchModel(); fetchErr != nil {
			return fmt.Errorf("engine: asr: %w (auto-fetch failed: %v)", err, fetchErr)
		}
		asrEngine, err = asr.NewConfiguredEngine(e.cfg.ModelPath)
	}
	if err != nil {
		return fmt.Errorf("engine: asr: %w", err)
	}
	if c, ok := asrEngine.(closer); ok {
		e.asrEngine = c
	}

	var filter vocalfilter.Filter
	if e.cfg.VocalFilterEnabled {
		filter = vocalfilter.NewBandpass(float64(e.cfg.SampleRate), 150, 5000)
	}

	var ref refiner.Refiner
	if e.cfg.RefinerEnabled {
		ref = refiner.NewEnergyMinimum()
	}

	capacity := int64(float64(e.cfg.SampleRate) * (e.cfg.TargetDelaySeconds + ringSeconds))
	e.ring = ring.New(e.cfg.Channels, capacity)

	handoff := pipeline.NewHandoff()
	e.scheduler = pipeline.New(e.ring, handoff, pipeline.Params{
		SampleRate:             e.cfg.SampleRate,
		Channels:               e.cfg.Channels,
		PeriodSize:             e.cfg.PeriodSize,
		ChunkSeconds:           e.cfg.ChunkSeconds,
		TargetDelaySeconds:     e.cfg.TargetDelaySeconds,
		PauseHysteresisSeconds: e.cfg.PauseHysteresisSeconds,
	})

	e.worker = censor.NewWorker(e.ring, handoff, asrEngine, lex, filter, ref, censor.Params{
		SysRate:      e.cfg.SampleRate,
		AsrRate:      e.cfg.AsrSampleRate,
		ChunkSeconds: e.cfg.ChunkSeconds,
		Mode:         mode,
		PadPreMs:     e.cfg.PadPreMs,
		PadPostMs:    e.cfg.PadPostMs,
		FadeMax:      e.cfg.FadeSamplesMax,
		ReverseGain:  e.cfg.ReverseGain,
	}, e.scheduler.IsPaused, e.scheduler.IncrementProfanityCount)

	e.backend = audiohost.NewPortAudioBackend()

	if e.cfg.Status.Enabled {
		e.status = status.New(e.cfg.Status.BindAddress, e.cfg.Status.Port, e.scheduler.Snapshot)
	}

	return nil
}

// autoFetchModel downloads the whisper.cpp model named by e.cfg.ModelPath's
// file name into that path's directory, when the file is missing and its
// name matches a known registry entry.
func (e *Engine) autoFetchModel() error {
	fileName := filepath.Base(e.cfg.ModelPath)
	entry, err := modelfetch.LookupByFileName(fileName)
	if err != nil {
		return err
	}
	lastLogged := -1
	_, err = modelfetch.Fetch(filepath.Dir(e.cfg.ModelPath), entry, func(pct int) {
		if pct/10 != lastLogged/10 {
			lastLogged = pct
			log.Printf("engine: downloading %s: %d%%", entry.FileName, pct)
		}
	})
	return err
}

// Start opens the audio device, launches the censorship worker, and (if
// configured) the status server. It returns once audio I/O is flowing.
func (e *Engine) Start() error {
	if e.scheduler == nil {
		return errors.New("engine: Start called before Initialize")
	}

	channels := e.cfg.Channels
	periodSize := e.cfg.PeriodSize
	framesIn := make([][]float32, channels)
	framesOut := make([][]float32, channels)
	for ch := range framesIn {
		framesIn[ch] = make([]float32, periodSize)
		framesOut[ch] = make([]float32, periodSize)
	}

	cb := func(in, out []float32) {
		deinterleave(in, framesIn, channels)
		e.scheduler.Process(framesIn, framesOut)
		interleave(framesOut, out, channels)
	}

	if err := e.backend.Open(float64(e.cfg.SampleRate), channels, periodSize, cb); err != nil {
		if errors.Is(err, audiohost.ErrDeviceUnavailable) {
			return err
		}
		return fmt.Errorf("engine: open audio device: %w", err)
	}
	if err := e.backend.Start(); err != nil {
		e.backend.Close() //nolint:errcheck
		return fmt.Errorf("engine: start audio device: %w", err)
	}

	e.workerCtx, e.workerCancel = context.WithCancel(context.Background())
	go e.worker.Run(e.workerCtx)

	if e.status != nil {
		go func() {
			if err := <-e.status.Start(); err != nil {
				log.Printf("engine: status server error: %v", err)
			}
		}()
		e.status.MarkReady()
	}

	e.scheduler.SetRunning(true)
	log.Printf("engine: started — %dHz/%dch, target_delay=%.1fs, mode=%s", e.cfg.SampleRate, channels, e.cfg.TargetDelaySeconds, e.cfg.CensorMode)
	return nil
}

// Stop halts audio I/O, cancels the censorship worker, and shuts down the
// status server. It is safe to call once after a successful Start.
func (e *Engine) Stop() error {
	e.scheduler.SetRunning(false)

	var firstErr error
	if err := e.backend.Stop(); err != nil {
		firstErr = fmt.Errorf("engine: stop audio device: %w", err)
	}
	if err := e.backend.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("engine: close audio device: %w", err)
	}

	if e.workerCancel != nil {
		e.workerCancel()
	}

	if e.status != nil {
		if err := e.status.Stop(5 * time.Second); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("engine: stop status server: %w", err)
		}
	}

	if e.asrEngine != nil {
		if err := e.asrEngine.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("engine: close asr engine: %w", err)
		}
	}

	log.Printf("engine: stopped — %d profanity ops applied, %d out-of-window drops", e.scheduler.Snapshot().ProfanityCount, e.worker.OutOfWindowCount())
	return firstErr
}

// Snapshot exposes the scheduler's observability surface for front ends
// that don't want to poll the status HTTP server in-process (e.g. the CLI's
// own periodic log line).
func (e *Engine) Snapshot() pipeline.Snapshot { return e.scheduler.Snapshot() }

func deinterleave(in []float32, out [][]float32, channels int) {
	n := len(in) / channels
	for ch := 0; ch < channels; ch++ {
		dst := out[ch]
		for i := 0; i < n && i < len(dst); i++ {
			dst[i] = in[i*channels+ch]
		}
	}
}

func interleave(in [][]float32, out []float32, channels int) {
	n := 0
	if channels > 0 {
		n = len(out) / channels
	}
	for i := 0; i < n; i++ {
		for ch := 0; ch < channels; ch++ {
			if i < len(in[ch]) {
				out[i*channels+ch] = in[ch][i]
			}
		}
	}
}
