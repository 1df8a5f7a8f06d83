package censor

import (
	"context"
	"testing"

	"github.com/explicitlyaudio/streamcensor/internal/asr"
	"github.com/explicitlyaudio/streamcensor/internal/dsp"
	"github.com/explicitlyaudio/streamcensor/internal/lexicon"
	"github.com/explicitlyaudio/streamcensor/internal/pipeline"
	"github.com/explicitlyaudio/streamcensor/internal/ring"
)

func constChunk(n int, v float32) []float32 {
	buf := make([]float32, n)
	for i := range buf {
		buf[i] = v
	}
	return buf
}

func baseParams(mode dsp.Mode) Params {
	return Params{
		SysRate:      48000,
		AsrRate:      16000,
		ChunkSeconds: 1.0,
		Mode:         mode,
		PadPreMs:     0,
		PadPostMs:    0,
		FadeMax:      4,
		ReverseGain:  0.5,
	}
}

// TestProcessChunkMuteIsHardCut mirrors S2: a mid-chunk word normalizes to a
// lexicon hit; the matching ring span is silenced with a hard cut, no fade.
func TestProcessChunkMuteIsHardCut(t *testing.T) {
	r := ring.New(1, 200000)
	samples := constChunk(48000, 0.5)
	r.Append([][]float32{samples})

	h := pipeline.NewHandoff()
	chunk := &pipeline.Chunk{Samples: samples, StartAbs: 0}
	h.TryPublish(chunk)

	engine := asr.NewScriptedEngine(asr.Result{Segments: []asr.Segment{
		{T0: 0, T1: 1, Words: []asr.WordSegment{{Text: "curse", StartS: 0.5, EndS: 0.6}}},
	}})
	lex := lexicon.FromWords([]string{"curse"})

	var applied int
	w := NewWorker(r, h, engine, lex, nil, nil, baseParams(dsp.Mute), func() bool { return false }, func() { applied++ })

	c := h.TryTake()
	w.processChunk(context.Background(), c)

	if applied != 1 {
		t.Fatalf("applied = %d, want 1", applied)
	}

	out := [][]float32{make([]float32, 4800)}
	if err := r.ReadAt(24000, out); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if out[0][0] != 0 {
		t.Errorf("out[0] = %v, want 0 (mute is a hard cut, no fade)", out[0][0])
	}
	if out[0][4] != 0 {
		t.Errorf("out[4] = %v, want 0 (body silence)", out[0][4])
	}
	if out[0][2400] != 0 {
		t.Errorf("out[2400] = %v, want 0 (body silence)", out[0][2400])
	}
	if out[0][4799] != 0 {
		t.Errorf("out[4799] = %v, want 0 (trailing edge is also a hard cut)", out[0][4799])
	}
}

// TestProcessChunkReverseWithFade mirrors S3: reversed + attenuated
// original with fade at the edges.
func TestProcessChunkReverseWithFade(t *testing.T) {
	r := ring.New(1, 200000)
	samples := constChunk(48000, 0.5)
	r.Append([][]float32{samples})

	h := pipeline.NewHandoff()
	chunk := &pipeline.Chunk{Samples: samples, StartAbs: 0}
	h.TryPublish(chunk)

	engine := asr.NewScriptedEngine(asr.Result{Segments: []asr.Segment{
		{T0: 0, T1: 1, Words: []asr.WordSegment{{Text: "curse", StartS: 0.5, EndS: 0.6}}},
	}})
	lex := lexicon.FromWords([]string{"curse"})

	w := NewWorker(r, h, engine, lex, nil, nil, baseParams(dsp.Reverse), func() bool { return false }, func() {})

	c := h.TryTake()
	w.processChunk(context.Background(), c)

	out := [][]float32{make([]float32, 4800)}
	if err := r.ReadAt(24000, out); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if out[0][0] != 0 {
		t.Errorf("out[0] = %v, want 0 (fade-in starts at 0)", out[0][0])
	}
	if out[0][4] != 0.25 {
		t.Errorf("out[4] = %v, want 0.25 (0.5 original * 0.5 gain, full envelope)", out[0][4])
	}
}

func TestProcessChunkUnderrunGuardSkipsAllCensorship(t *testing.T) {
	r := ring.New(1, 200000)
	samples := constChunk(48000, 0.5)
	r.Append([][]float32{samples})

	h := pipeline.NewHandoff()
	chunk := &pipeline.Chunk{Samples: samples, StartAbs: 0}
	h.TryPublish(chunk)

	engine := asr.NewScriptedEngine(asr.Result{Segments: []asr.Segment{
		{T0: 0, T1: 1, Words: []asr.WordSegment{{Text: "curse", StartS: 0.5, EndS: 0.6}}},
	}})
	lex := lexicon.FromWords([]string{"curse"})

	var applied int
	w := NewWorker(r, h, engine, lex, nil, nil, baseParams(dsp.Mute), func() bool { return true }, func() { applied++ })

	c := h.TryTake()
	w.processChunk(context.Background(), c)

	if applied != 0 {
		t.Fatalf("applied = %d, want 0 under underrun guard", applied)
	}
	out := [][]float32{make([]float32, 10)}
	r.ReadAt(24000, out)
	for _, v := range out[0] {
		if v != 0.5 {
			t.Fatalf("expected untouched audio under underrun guard, got %v", v)
		}
	}
}

func TestProcessChunkOutOfWindowIsSkippedAndCounted(t *testing.T) {
	r := ring.New(1, 4096) // small capacity so the op's span gets evicted
	samples := constChunk(48000, 0.5)
	r.Append([][]float32{samples}) // writeHead=48000, window=[43904,48000)

	h := pipeline.NewHandoff()
	chunk := &pipeline.Chunk{Samples: samples, StartAbs: 0}
	h.TryPublish(chunk)

	// word at 0.5-0.6s maps to AbsPos [24000,28800), long evicted.
	engine := asr.NewScriptedEngine(asr.Result{Segments: []asr.Segment{
		{T0: 0, T1: 1, Words: []asr.WordSegment{{Text: "curse", StartS: 0.5, EndS: 0.6}}},
	}})
	lex := lexicon.FromWords([]string{"curse"})

	var applied int
	w := NewWorker(r, h, engine, lex, nil, nil, baseParams(dsp.Mute), func() bool { return false }, func() { applied++ })

	c := h.TryTake()
	w.processChunk(context.Background(), c)

	if applied != 0 {
		t.Fatalf("applied = %d, want 0 (op should be OutOfWindow)", applied)
	}
	if w.OutOfWindowCount() != 1 {
		t.Fatalf("OutOfWindowCount() = %d, want 1", w.OutOfWindowCount())
	}
}

func TestProcessChunkASRFailureIsPassthrough(t *testing.T) {
	r := ring.New(1, 200000)
	samples := constChunk(48000, 0.5)
	r.Append([][]float32{samples})

	h := pipeline.NewHandoff()
	chunk := &pipeline.Chunk{Samples: samples, StartAbs: 0}
	h.TryPublish(chunk)

	engine := asr.NewScriptedEngine(asr.Result{Err: context.DeadlineExceeded})
	lex := lexicon.FromWords([]string{"curse"})

	var applied int
	w := NewWorker(r, h, engine, lex, nil, nil, baseParams(dsp.Mute), func() bool { return false }, func() { applied++ })

	c := h.TryTake()
	w.processChunk(context.Background(), c)

	if applied != 0 {
		t.Fatalf("applied = %d, want 0 on ASR failure", applied)
	}
}
