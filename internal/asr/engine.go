// Package asr defines the speech-recognition contract the censorship worker
// depends on, plus a whisper.cpp-backed implementation and a scriptable fake
// for tests. Times on Segment and WordSegment are seconds relative to the
// start of the chunk that was submitted.
package asr

import "context"

// WordSegment is one recognized word with its timing and confidence.
type WordSegment struct {
	Text       string
	StartS     float64
	EndS       float64
	Confidence float32
}

// Segment is one ASR result span. Words is nil when the engine only
// produces segment-level timing — the caller is responsible for the
// equal-slice distribution described in the censorship worker's procedure.
type Segment struct {
	T0, T1 float64
	Text   string
	Words  []WordSegment
}

// Engine transcribes a mono PCM buffer already resampled to the engine's
// expected rate. Implementations must be safe to call concurrently with
// audio I/O on a separate goroutine; the real-time audio thread never calls
// this interface.
type Engine interface {
	Transcribe(ctx context.Context, pcm []float32) ([]Segment, error)
}
