// Package vocalfilter provides an optional, pure, in-place pre-filter
// applied to the ASR-bound copy of a chunk before resampling — never to the
// copy written back to the delay ring.
package vocalfilter

import "math"

// Filter is applied in-place to a mono chunk and performs no I/O.
type Filter interface {
	Apply(pcm []float32)
}

// biquadStage is one Direct Form I second-order section.
type biquadStage struct {
	b0, b1, b2 float64
	a1, a2     float64
	x1, x2     float64
	y1, y2     float64
}

func (s *biquadStage) process(x float64) float64 {
	y := s.b0*x + s.b1*s.x1 + s.b2*s.x2 - s.a1*s.y1 - s.a2*s.y2
	s.x2, s.x1 = s.x1, x
	s.y2, s.y1 = s.y1, y
	return y
}

// Bandpass cascades a high-pass and a low-pass biquad to approximate a
// speech-band filter (e.g. 300-3400 Hz telephone band, or 150-5000 Hz for a
// wider vocal range).
type Bandpass struct {
	highPass biquadStage
	lowPass  biquadStage
}

// NewBandpass builds a Bandpass for the given cutoff frequencies at
// sampleRate, using a standard RBJ one-pole-equivalent Q of 0.707
// (Butterworth-like, maximally flat passband).
func NewBandpass(sampleRate, lowCutHz, highCutHz float64) *Bandpass {
	return &Bandpass{
		highPass: highPassCoeffs(sampleRate, lowCutHz, 0.707),
		lowPass:  lowPassCoeffs(sampleRate, highCutHz, 0.707),
	}
}

// Apply filters pcm in place, high-pass then low-pass. Filter state is reset
// at the start of each call, so the output depends only on pcm.
func (b *Bandpass) Apply(pcm []float32) {
	b.highPass.x1, b.highPass.x2, b.highPass.y1, b.highPass.y2 = 0, 0, 0, 0
	b.lowPass.x1, b.lowPass.x2, b.lowPass.y1, b.lowPass.y2 = 0, 0, 0, 0
	for i, x := range pcm {
		y := b.highPass.process(float64(x))
		y = b.lowPass.process(y)
		pcm[i] = float32(y)
	}
}

func highPassCoeffs(sampleRate, cutoffHz, q float64) biquadStage {
	w0 := 2 * math.Pi * cutoffHz / sampleRate
	cosW0 := math.Cos(w0)
	sinW0 := math.Sin(w0)
	alpha := sinW0 / (2 * q)

	b0 := (1 + cosW0) / 2
	b1 := -(1 + cosW0)
	b2 := (1 + cosW0) / 2
	a0 := 1 + alpha
	a1 := -2 * cosW0
	a2 := 1 - alpha

	return normalize(b0, b1, b2, a0, a1, a2)
}

func lowPassCoeffs(sampleRate, cutoffHz, q float64) biquadStage {
	w0 := 2 * math.Pi * cutoffHz / sampleRate
	cosW0 := math.Cos(w0)
	sinW0 := math.Sin(w0)
	alpha := sinW0 / (2 * q)

	b0 := (1 - cosW0) / 2
	b1 := 1 - cosW0
	b2 := (1 - cosW0) / 2
	a0 := 1 + alpha
	a1 := -2 * cosW0
	a2 := 1 - alpha

	return normalize(b0, b1, b2, a0, a1, a2)
}

func normalize(b0, b1, b2, a0, a1, a2 float64) biquadStage {
	return biquadStage{
		b0: b0 / a0,
		b1: b1 / a0,
		b2: b2 / a0,
		a1: a1 / a0,
		a2: a2 / a0,
	}
}
