// Package censor implements the censorship worker: the background task that
// drains staged chunks, transcribes them, detects profanity, and writes
// censored audio back into the delay ring at the correct absolute
// positions.
package censor

import (
	"context"
	"log"
	"math"
	"sync/atomic"

	"github.com/explicitlyaudio/streamcensor/internal/asr"
	"github.com/explicitlyaudio/streamcensor/internal/dsp"
	"github.com/explicitlyaudio/streamcensor/internal/lexicon"
	"github.com/explicitlyaudio/streamcensor/internal/pipeline"
	"github.com/explicitlyaudio/streamcensor/internal/refiner"
	"github.com/explicitlyaudio/streamcensor/internal/ring"
	"github.com/explicitlyaudio/streamcensor/internal/vocalfilter"
)

// Params is the worker's runtime configuration, mirroring the relevant
// slice of internal/config.Config.
type Params struct {
	SysRate      int
	AsrRate      int
	ChunkSeconds float64
	Mode         dsp.Mode
	PadPreMs     float64
	PadPostMs    float64
	FadeMax      int
	ReverseGain  float32
}

// Worker is the single background censorship task described in spec §4.3.
// It owns no state shared with the audio thread except through the ring's
// Overwrite/ReadWindow (mutator-only) and the handoff slot.
type Worker struct {
	ring    *ring.Ring
	handoff *pipeline.Handoff
	engine  asr.Engine
	lexicon *lexicon.Set
	filter  vocalfilter.Filter // nil if vocal_filter_enabled is false
	refiner refiner.Refiner    // nil if refiner_enabled is false
	params  Params

	// underrun mirrors the scheduler's paused flag; if it reports true when
	// a chunk finishes transcribing, all censorship for that chunk is
	// skipped (better to leak one word than to stutter — §4.3 step 11).
	underrun func() bool
	// onApplied is called once per successfully applied CensorOp, wired to
	// the scheduler's profanity counter.
	onApplied func()

	outOfWindowCount atomic.Uint64
}

// NewWorker builds a Worker. filter and refiner may be nil to disable those
// optional stages.
func NewWorker(r *ring.Ring, h *pipeline.Handoff, engine asr.Engine, lex *lexicon.Set, filter vocalfilter.Filter, ref refiner.Refiner, params Params, underrun func() bool, onApplied func()) *Worker {
	return &Worker{
		ring:      r,
		handoff:   h,
		engine:    engine,
		lexicon:   lex,
		filter:    filter,
		refiner:   ref,
		params:    params,
		underrun:  underrun,
		onApplied: onApplied,
	}
}

// OutOfWindowCount reports how many CensorOps were skipped because the ring
// had already evicted their target span by the time the worker tried to
// apply them.
func (w *Worker) OutOfWindowCount() uint64 { return w.outOfWindowCount.Load() }

// Run drains the handoff slot until ctx is cancelled: Idle (wait on the
// slot's notification channel) -> Transcribing -> Applying -> Idle. An
// in-flight chunk runs to completion even if ctx is cancelled mid-chunk;
// only the next Idle wait observes cancellation.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.handoff.Notify():
		}
		c := w.handoff.TryTake()
		if c == nil {
			continue
		}
		w.processChunk(ctx, c)
		w.handoff.Release()
	}
}

// processChunk implements spec §4.3 steps 1-11 for a single staged chunk.
func (w *Worker) processChunk(ctx context.Context, c *pipeline.Chunk) {
	asrCopy := append([]float32(nil), c.Samples...)
	if w.filter != nil {
		w.filter.Apply(asrCopy) // ASR-only copy; c.Samples (written to the ring) stays untouched
	}

	resampled := asr.Resample(asrCopy, w.params.SysRate, w.params.AsrRate)
	segments, err := w.engine.Transcribe(ctx, resampled)
	if err != nil {
		log.Printf("censor: transcription error, passing chunk through: %v", err)
		return
	}
	if len(segments) == 0 {
		return
	}

	var words []asr.WordSegment
	for _, seg := range segments {
		segWords := seg.Words
		if len(segWords) == 0 {
			segWords = distributeWords(seg)
		}
		words = append(words, segWords...)
	}
	for i := range words {
		words[i] = clampWord(words[i], w.params.ChunkSeconds)
	}
	if w.refiner != nil {
		for i := range words {
			words[i] = clampWord(w.refiner.Refine(words[i], c.Samples, w.params.SysRate), w.params.ChunkSeconds)
		}
	}

	ops := detectProfanity(words, w.lexicon, w.params.PadPreMs/1000, w.params.PadPostMs/1000, w.params.ChunkSeconds)
	if len(ops) == 0 {
		return
	}

	if w.underrun != nil && w.underrun() {
		return
	}

	for _, op := range ops {
		w.applyOp(op, c)
	}
}

// applyOp maps a chunk-relative CensorOp to AbsPos (spec §4.3 step 9) and
// writes the censored samples back into the ring (step 10).
func (w *Worker) applyOp(op CensorOp, c *pipeline.Chunk) {
	rate := float64(w.params.SysRate)
	absStart := c.StartAbs + ring.AbsPos(math.Floor(op.StartS*rate))
	absEnd := c.StartAbs + ring.AbsPos(math.Floor(op.EndS*rate))
	n := absEnd - absStart
	if n <= 0 {
		return
	}

	channels := w.ring.Channels()
	original := make([][]float32, channels)
	for ch := range original {
		original[ch] = make([]float32, n)
	}
	if err := w.ring.ReadWindow(absStart, original); err != nil {
		w.outOfWindowCount.Add(1)
		return
	}

	fadeSamples := dsp.FadeSamples(int(n), w.params.FadeMax)
	censored := make([][]float32, channels)
	for ch := range censored {
		censored[ch] = make([]float32, n)
		switch w.params.Mode {
		case dsp.Reverse:
			dsp.ApplyReverse(censored[ch], original[ch], w.params.ReverseGain, fadeSamples)
		default:
			dsp.ApplyMute(censored[ch], original[ch], fadeSamples)
		}
	}

	if err := w.ring.Overwrite(absStart, censored); err != nil {
		w.outOfWindowCount.Add(1)
		return
	}
	if w.onApplied != nil {
		w.onApplied()
	}
}
