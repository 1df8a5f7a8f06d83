package pipeline

import (
	"sync/atomic"

	"github.com/explicitlyaudio/streamcensor/internal/ring"
)

// handoffState is the Handoff Slot's lifecycle: Empty (audio thread may
// publish), Pending (worker has not yet picked it up), InFlight (worker owns
// it).
type handoffState int32

const (
	handoffEmpty handoffState = iota
	handoffPending
	handoffInFlight
)

// Chunk is the mono downmix staged for the next ASR submission, plus the
// AbsPos its sample 0 corresponds to in the delay ring.
type Chunk struct {
	Samples  []float32
	StartAbs ring.AbsPos
}

// Handoff is the single-writer (audio thread) / single-reader (worker) slot
// described in the data model: it holds at most one staged chunk at a time
// (P4). TryPublish is real-time safe — it is a single CAS plus a pointer
// store, never blocks.
type Handoff struct {
	state atomic.Int32
	chunk atomic.Pointer[Chunk]
	// notify wakes a worker blocked in Idle; buffered to size 1 so the
	// real-time publisher never blocks on send.
	notify chan struct{}
}

// NewHandoff returns an empty Handoff slot.
func NewHandoff() *Handoff {
	return &Handoff{notify: make(chan struct{}, 1)}
}

// TryPublish publishes c if the slot is currently Empty, transitioning it to
// Pending and waking a worker waiting on Notify. Reports whether the publish
// happened — the caller (the scheduler) treats a false return as "worker
// still behind" per spec §4.2 step 3.
func (h *Handoff) TryPublish(c *Chunk) bool {
	if !h.state.CompareAndSwap(int32(handoffEmpty), int32(handoffPending)) {
		return false
	}
	h.chunk.Store(c)
	select {
	case h.notify <- struct{}{}:
	default:
	}
	return true
}

// Notify returns the channel a worker should receive from while Idle.
func (h *Handoff) Notify() <-chan struct{} { return h.notify }

// TryTake transitions Pending -> InFlight and returns the chunk, or nil if
// nothing is Pending. Called only by the worker.
func (h *Handoff) TryTake() *Chunk {
	if !h.state.CompareAndSwap(int32(handoffPending), int32(handoffInFlight)) {
		return nil
	}
	return h.chunk.Load()
}

// Release transitions InFlight -> Empty, clearing the stored chunk so the
// audio thread may publish again.
func (h *Handoff) Release() {
	h.chunk.Store(nil)
	h.state.Store(int32(handoffEmpty))
}

// State reports the current lifecycle state; exported for tests only.
func (h *Handoff) State() int32 { return h.state.Load() }
