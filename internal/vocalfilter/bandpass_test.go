package vocalfilter

import "testing"

func TestBandpassAppliesInPlace(t *testing.T) {
	b := NewBandpass(48000, 300, 3400)
	pcm := make([]float32, 256)
	for i := range pcm {
		pcm[i] = 1
	}
	before := append([]float32(nil), pcm...)
	b.Apply(pcm)

	same := true
	for i := range pcm {
		if pcm[i] != before[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("Apply did not modify samples")
	}
}

func TestBandpassDoesNotBlowUp(t *testing.T) {
	b := NewBandpass(48000, 150, 5000)
	pcm := make([]float32, 4800)
	for i := range pcm {
		if i%2 == 0 {
			pcm[i] = 1
		} else {
			pcm[i] = -1
		}
	}
	b.Apply(pcm)
	for i, v := range pcm {
		if v > 10 || v < -10 {
			t.Fatalf("pcm[%d] = %v, filter diverged", i, v)
		}
	}
}
