package censor

import (
	"testing"

	"github.com/explicitlyaudio/streamcensor/internal/asr"
	"github.com/explicitlyaudio/streamcensor/internal/lexicon"
)

func TestDistributeWordsSplitsSegmentEqually(t *testing.T) {
	seg := asr.Segment{T0: 1.0, T1: 2.0, Text: "one two three four"}
	words := distributeWords(seg)
	if len(words) != 4 {
		t.Fatalf("len(words) = %d, want 4", len(words))
	}
	for i, w := range words {
		wantStart := 1.0 + float64(i)*0.25
		wantEnd := wantStart + 0.25
		if w.StartS != wantStart || w.EndS != wantEnd {
			t.Errorf("words[%d] = (%v,%v), want (%v,%v)", i, w.StartS, w.EndS, wantStart, wantEnd)
		}
	}
}

func TestClampWordEnforcesMinLengthAndBounds(t *testing.T) {
	w := clampWord(asr.WordSegment{StartS: -1, EndS: -0.9}, 5.0)
	if w.StartS != 0 {
		t.Errorf("StartS = %v, want 0", w.StartS)
	}
	if w.EndS < 0.05 {
		t.Errorf("EndS = %v, want >= 0.05", w.EndS)
	}

	w2 := clampWord(asr.WordSegment{StartS: 4.99, EndS: 6.0}, 5.0)
	if w2.EndS != 5.0 {
		t.Errorf("EndS = %v, want clamped to chunkSeconds 5.0", w2.EndS)
	}
}

func TestDetectProfanitySingleWordHit(t *testing.T) {
	lex := lexicon.FromWords([]string{"curse"})
	words := []asr.WordSegment{{Text: "a"}, {Text: "Curse!", StartS: 1.0, EndS: 1.2}, {Text: "b"}}
	ops := detectProfanity(words, lex, 0, 0, 10)
	if len(ops) != 1 {
		t.Fatalf("len(ops) = %d, want 1", len(ops))
	}
	if ops[0].StartS != 1.0 || ops[0].EndS != 1.2 {
		t.Errorf("op = %+v, want {1.0 1.2}", ops[0])
	}
}

// TestDetectProfanityMultiWordHitIsSingleOp is S5: an adjacent-pair hit
// produces exactly one CensorOp spanning both words, not two.
func TestDetectProfanityMultiWordHitIsSingleOp(t *testing.T) {
	lex := lexicon.FromWords([]string{"mothertrucker"})
	words := []asr.WordSegment{
		{Text: "mother", StartS: 0.10, EndS: 0.30},
		{Text: "trucker", StartS: 0.31, EndS: 0.55},
	}
	ops := detectProfanity(words, lex, 0, 0, 10)
	if len(ops) != 1 {
		t.Fatalf("len(ops) = %d, want exactly 1", len(ops))
	}
	if ops[0].StartS != 0.10 || ops[0].EndS != 0.55 {
		t.Errorf("op = %+v, want {0.10 0.55}", ops[0])
	}
}

func TestDetectProfanityAppliesAsymmetricPadding(t *testing.T) {
	lex := lexicon.FromWords([]string{"curse"})
	words := []asr.WordSegment{{Text: "curse", StartS: 1.0, EndS: 1.2}}
	ops := detectProfanity(words, lex, 0.4, 0.1, 10)
	if len(ops) != 1 {
		t.Fatalf("len(ops) = %d, want 1", len(ops))
	}
	if ops[0].StartS != 0.6 {
		t.Errorf("StartS = %v, want 0.6 (1.0 - 0.4 pad_pre)", ops[0].StartS)
	}
	if ops[0].EndS != 1.3 {
		t.Errorf("EndS = %v, want 1.3 (1.2 + 0.1 pad_post)", ops[0].EndS)
	}
}

func TestDetectProfanityNoHitsProducesNoOps(t *testing.T) {
	lex := lexicon.FromWords([]string{"curse"})
	words := []asr.WordSegment{{Text: "nice"}, {Text: "day"}}
	if ops := detectProfanity(words, lex, 0, 0, 10); len(ops) != 0 {
		t.Fatalf("len(ops) = %d, want 0", len(ops))
	}
}
