//go:build whispercpp

package asr

import (
	"context"
	"fmt"
	"os"

	whisperlib "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

// WhisperEngine wraps github.com/ggerganov/whisper.cpp/bindings/go. Building
// it requires the go.mod replace directive pointing at a whisper.cpp
// checkout with libwhisper.a already built, and the whispercpp build tag.
type WhisperEngine struct {
	model   whisperlib.Model
	context whisperlib.Context
}

// NewWhisperEngine loads modelPath and configures a decoding context tuned
// for short chunk transcription rather than long-form dictation.
func NewWhisperEngine(modelPath string) (*WhisperEngine, error) {
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return nil, ErrModelNotFound
	}

	model, err := whisperlib.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("asr: load model %q: %w", modelPath, err)
	}

	ctx, err := model.NewContext()
	if err != nil {
		model.Close()
		return nil, fmt.Errorf("asr: create context: %w", err)
	}
	ctx.SetLanguage("en") //nolint:errcheck — "en" is always valid
	ctx.SetThreads(4)
	ctx.SetBeamSize(2)
	ctx.SetMaxContext(0) // each chunk is independent

	return &WhisperEngine{model: model, context: ctx}, nil
}

// Transcribe runs one decode pass over pcm (already resampled to the
// engine's expected rate) and returns one Segment per whisper.cpp segment.
// whisper.cpp exposes only segment-level timing here, so Words is left nil
// — the censorship worker distributes word timings across the segment text.
func (w *WhisperEngine) Transcribe(ctx context.Context, pcm []float32) ([]Segment, error) {
	if w.context == nil {
		return nil, fmt.Errorf("asr: engine not loaded")
	}
	if err := w.context.Process(pcm, nil, nil, nil); err != nil {
		return nil, fmt.Errorf("asr: process: %w", err)
	}

	var out []Segment
	for {
		seg, err := w.context.NextSegment()
		if err != nil {
			break // io.EOF — no more segments
		}
		out = append(out, Segment{
			T0:   seg.Start.Seconds(),
			T1:   seg.End.Seconds(),
			Text: seg.Text,
		})
	}
	return out, nil
}

// Close releases the loaded model.
func (w *WhisperEngine) Close() error {
	if w.model != nil {
		return w.model.Close()
	}
	return nil
}

// NewConfiguredEngine builds the production Engine for modelPath.
func NewConfiguredEngine(modelPath string) (Engine, error) {
	return NewWhisperEngine(modelPath)
}
