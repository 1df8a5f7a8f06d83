package censor

import (
	"strings"

	"github.com/explicitlyaudio/streamcensor/internal/asr"
	"github.com/explicitlyaudio/streamcensor/internal/lexicon"
)

// distributeWords subdivides a segment that carries no per-word timing into
// len(fields) equal slices of the segment's duration, per spec §4.3 step 4.
func distributeWords(seg asr.Segment) []asr.WordSegment {
	fields := strings.Fields(seg.Text)
	if len(fields) == 0 {
		return nil
	}
	d := seg.T1 - seg.T0
	if d < 0 {
		d = 0
	}
	slice := d / float64(len(fields))
	out := make([]asr.WordSegment, len(fields))
	for i, f := range fields {
		out[i] = asr.WordSegment{
			Text:   f,
			StartS: seg.T0 + float64(i)*slice,
			EndS:   seg.T0 + float64(i+1)*slice,
		}
	}
	return out
}

// clampWord enforces spec §4.3 step 4's bounds: within [0, chunkSeconds],
// end_s >= start_s + 0.05. A word too close to the chunk end to fit the
// minimum length has its start moved back instead.
func clampWord(w asr.WordSegment, chunkSeconds float64) asr.WordSegment {
	if w.StartS < 0 {
		w.StartS = 0
	}
	if w.StartS > chunkSeconds {
		w.StartS = chunkSeconds
	}
	if w.EndS > chunkSeconds {
		w.EndS = chunkSeconds
	}
	if w.EndS < w.StartS+0.05 {
		w.EndS = w.StartS + 0.05
		if w.EndS > chunkSeconds {
			w.EndS = chunkSeconds
			w.StartS = chunkSeconds - 0.05
			if w.StartS < 0 {
				w.StartS = 0
			}
		}
	}
	return w
}

// detectProfanity implements spec §4.3 steps 6-8: normalize each token,
// test single words and adjacent pairs against the lexicon, and pad any hit
// into a CensorOp.
func detectProfanity(words []asr.WordSegment, lex *lexicon.Set, padPre, padPost, chunkSeconds float64) []CensorOp {
	var ops []CensorOp
	for i := 0; i < len(words); i++ {
		norm := lexicon.Normalize(words[i].Text)
		if norm == "" {
			continue
		}
		if i+1 < len(words) {
			norm2 := lexicon.Normalize(words[i+1].Text)
			if norm2 != "" && lex.Contains(norm+norm2) {
				ops = append(ops, pad(words[i].StartS, words[i+1].EndS, padPre, padPost, chunkSeconds))
				i++
				continue
			}
		}
		if lex.Contains(norm) {
			ops = append(ops, pad(words[i].StartS, words[i].EndS, padPre, padPost, chunkSeconds))
		}
	}
	return ops
}
