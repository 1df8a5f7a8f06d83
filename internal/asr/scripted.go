package asr

import (
	"context"
	"sync"
)

// Result is one queued response for ScriptedEngine.
type Result struct {
	Segments []Segment
	Err      error
}

// ScriptedEngine is a fake Engine that returns pre-programmed results in
// order, one per call to Transcribe. It never touches CGo or a model file,
// so it drives pipeline and censor package tests without a real ASR engine.
type ScriptedEngine struct {
	mu      sync.Mutex
	results []Result
	calls   int
}

// NewScriptedEngine returns a ScriptedEngine that yields results in order.
// Once exhausted, Transcribe returns an empty result (pass-through), the
// same behavior real engines exhibit on silence.
func NewScriptedEngine(results ...Result) *ScriptedEngine {
	return &ScriptedEngine{results: results}
}

func (s *ScriptedEngine) Transcribe(ctx context.Context, pcm []float32) ([]Segment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.calls++ }()
	if s.calls >= len(s.results) {
		return nil, nil
	}
	r := s.results[s.calls]
	return r.Segments, r.Err
}

// Calls reports how many times Transcribe has been invoked.
func (s *ScriptedEngine) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
