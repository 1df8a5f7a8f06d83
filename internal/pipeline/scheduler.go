// Package pipeline implements the real-time audio callback: the scheduler
// that appends input to the delay ring, stages mono chunks for the
// censorship worker, and reads delayed output back out, with startup-gate
// and underrun/recovery hysteresis.
package pipeline

import (
	"math"
	"sync/atomic"

	"github.com/explicitlyaudio/streamcensor/internal/ring"
)

// Params is the scheduler's runtime configuration. It is a strict subset of
// internal/config.Config — the scheduler does not know about YAML, CLI
// flags, or anything outside its own math.
type Params struct {
	SampleRate             int
	Channels               int
	PeriodSize             int
	ChunkSeconds           float64
	TargetDelaySeconds     float64
	PauseHysteresisSeconds float64
}

// ChunkSamples returns the staging buffer length in samples.
func (p Params) ChunkSamples() int {
	return int(float64(p.SampleRate) * p.ChunkSeconds)
}

// TargetDelaySamples returns the target delay in samples.
func (p Params) TargetDelaySamples() int64 {
	return int64(float64(p.SampleRate) * p.TargetDelaySeconds)
}

// Scheduler is the per-callback orchestrator described in §4.2. One
// Scheduler owns one delay ring and one handoff slot; Process is called once
// per audio period from the host's real-time thread and never locks or
// blocks. It allocates only when the staging buffer fills: the staged
// samples are copied into a new Chunk for the worker.
type Scheduler struct {
	params  Params
	ring    *ring.Ring
	handoff *Handoff

	targetDelaySamples int64

	staging         []float32
	stagingLen      int
	stagingStartAbs ring.AbsPos
	pendingChunk    *Chunk

	playbackStarted atomic.Bool
	paused          atomic.Bool
	running         atomic.Bool

	inputLevelRMS  atomicFloat32
	profanityCount atomic.Uint64
}

// New builds a Scheduler over an already-allocated ring and handoff slot.
func New(r *ring.Ring, h *Handoff, params Params) *Scheduler {
	return &Scheduler{
		params:             params,
		ring:               r,
		handoff:            h,
		targetDelaySamples: params.TargetDelaySamples(),
		staging:            make([]float32, params.ChunkSamples()),
		stagingStartAbs:    r.WriteHead(),
	}
}

// SetRunning marks the scheduler as started or stopped for the
// observability snapshot; it does not affect Process behavior.
func (s *Scheduler) SetRunning(v bool) { s.running.Store(v) }

// IncrementProfanityCount is called by the censorship worker each time it
// successfully applies a CensorOp.
func (s *Scheduler) IncrementProfanityCount() { s.profanityCount.Add(1) }

// Handoff returns the scheduler's handoff slot, for the worker to drain.
func (s *Scheduler) Handoff() *Handoff { return s.handoff }

// IsPaused reports whether playback is currently paused for underrun
// recovery. Wired to the censorship worker's underrun guard (spec §4.3
// step 11): a chunk finishing transcription while paused skips censorship
// rather than risk stuttering to catch up.
func (s *Scheduler) IsPaused() bool { return s.paused.Load() }

// Ring returns the scheduler's delay ring, for the worker's overwrite calls.
func (s *Scheduler) Ring() *ring.Ring { return s.ring }

// Snapshot returns a point-in-time copy of the observability surface.
func (s *Scheduler) Snapshot() Snapshot {
	fill := s.ring.Fill()
	var fraction float32
	if s.targetDelaySamples > 0 {
		fraction = float32(fill) / float32(s.targetDelaySamples)
	}
	return Snapshot{
		InputLevelRMS:   s.inputLevelRMS.Load(),
		FillFraction:    fraction,
		LatencyMs:       float32(s.params.TargetDelaySeconds * 1000),
		ProfanityCount:  s.profanityCount.Load(),
		Running:         s.running.Load(),
		Paused:          s.paused.Load(),
		PlaybackStarted: s.playbackStarted.Load(),
	}
}

// Process runs one audio period: framesIn and framesOut are channel-major
// ([channel][periodSize]), matching ring.Append/ring.ReadAt. Both must have
// length params.PeriodSize per channel. Process allocates only in a period
// where the staging buffer fills (one Chunk and its sample copy).
func (s *Scheduler) Process(framesIn, framesOut [][]float32) {
	s.meterLevel(framesIn)
	s.ring.Append(framesIn)
	s.accumulateStaging(framesIn)
	s.startupGate()
	s.underrunRecovery()
	s.produceOutput(framesOut)
}

// meterLevel computes the RMS of channel 0 and publishes it for observers.
func (s *Scheduler) meterLevel(framesIn [][]float32) {
	if len(framesIn) == 0 || len(framesIn[0]) == 0 {
		s.inputLevelRMS.Store(0)
		return
	}
	ch0 := framesIn[0]
	var sum float64
	for _, v := range ch0 {
		sum += float64(v) * float64(v)
	}
	rms := float32(0)
	if len(ch0) > 0 {
		rms = float32(math.Sqrt(sum / float64(len(ch0))))
	}
	s.inputLevelRMS.Store(rms)
}

// accumulateStaging appends the mono downmix of this period's input frames
// into the staging buffer, handing it off to the worker once full. If the
// worker is still behind (handoff slot not Empty), the buffer stays full and
// further input is dropped from the ASR path only — it has already been
// appended to the ring for playback.
func (s *Scheduler) accumulateStaging(framesIn [][]float32) {
	n := 0
	if len(framesIn) > 0 {
		n = len(framesIn[0])
	}
	// This period's frames are already on the ring: frame i is at
	// periodStart+i.
	periodStart := s.ring.WriteHead() - int64(n)

	if s.pendingChunk != nil {
		if s.handoff.TryPublish(s.pendingChunk) {
			s.pendingChunk = nil
			s.stagingLen = 0
			s.stagingStartAbs = periodStart
		}
	}

	channels := len(framesIn)
	for i := 0; i < n; i++ {
		if s.pendingChunk != nil {
			// Worker still behind from an earlier fill this same call;
			// drop remaining frames from the ASR path, keep them on the
			// ring (already appended above).
			break
		}
		var sum float32
		for ch := 0; ch < channels; ch++ {
			if i < len(framesIn[ch]) {
				sum += framesIn[ch][i]
			}
		}
		mono := float32(0)
		if channels > 0 {
			mono = sum / float32(channels)
		}
		s.staging[s.stagingLen] = mono
		s.stagingLen++
		if s.stagingLen == len(s.staging) {
			c := &Chunk{
				Samples:  append([]float32(nil), s.staging...),
				StartAbs: s.stagingStartAbs,
			}
			if s.handoff.TryPublish(c) {
				s.stagingLen = 0
				s.stagingStartAbs = periodStart + int64(i) + 1
			} else {
				s.pendingChunk = c
			}
		}
	}
}

// startupGate implements §4.2 step 4: playback begins once fill first
// reaches the target delay.
func (s *Scheduler) startupGate() {
	if s.playbackStarted.Load() {
		return
	}
	if s.ring.Fill() >= s.targetDelaySamples {
		s.ring.SetReadHead(s.ring.WriteHead() - s.targetDelaySamples)
		s.playbackStarted.Store(true)
	}
}

// underrunRecovery implements §4.2 step 5: hysteresis band around the
// target delay, preventing rapid toggling of paused.
func (s *Scheduler) underrunRecovery() {
	if !s.playbackStarted.Load() {
		return
	}
	fillSeconds := float64(s.ring.Fill()) / float64(s.params.SampleRate)
	switch {
	case !s.paused.Load() && fillSeconds < s.params.TargetDelaySeconds-s.params.PauseHysteresisSeconds:
		s.paused.Store(true)
	case s.paused.Load() && fillSeconds >= s.params.TargetDelaySeconds:
		s.paused.Store(false)
	}
}

// produceOutput implements §4.2 step 6: silence before playback starts or
// while paused (read_head frozen), otherwise the delayed ring content,
// advancing read_head by one block.
func (s *Scheduler) produceOutput(framesOut [][]float32) {
	n := 0
	if len(framesOut) > 0 {
		n = len(framesOut[0])
	}
	if !s.playbackStarted.Load() || s.paused.Load() {
		for ch := range framesOut {
			clear(framesOut[ch][:n])
		}
		return
	}
	readHead := s.ring.ReadHead()
	if err := s.ring.ReadAt(readHead, framesOut); err != nil {
		// Real-time contract: never fail, degrade to silence.
		for ch := range framesOut {
			clear(framesOut[ch][:n])
		}
		return
	}
	s.ring.AdvanceReadHead(int64(n))
}
