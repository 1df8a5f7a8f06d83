package asr

import "testing"

func TestResampleLengthMatchesRateRatio(t *testing.T) {
	chunk := make([]float32, 48000)
	out := Resample(chunk, 48000, 16000)
	if len(out) != 16000 {
		t.Fatalf("len(out) = %d, want 16000", len(out))
	}
}

func TestResampleConstantSignalStaysConstant(t *testing.T) {
	chunk := make([]float32, 480)
	for i := range chunk {
		chunk[i] = 0.5
	}
	out := Resample(chunk, 48000, 16000)
	for i, v := range out {
		if v != 0.5 {
			t.Fatalf("out[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestResampleInterpolatesLinearRamp(t *testing.T) {
	n := 100
	chunk := make([]float32, n)
	for i := range chunk {
		chunk[i] = float32(i)
	}
	out := Resample(chunk, 100, 50) // 2:1 downsample
	for j, v := range out {
		want := float32(j) * 2
		if v != want {
			t.Fatalf("out[%d] = %v, want %v", j, v, want)
		}
	}
}

func TestResampleEmptyInput(t *testing.T) {
	if out := Resample(nil, 48000, 16000); out != nil {
		t.Fatalf("Resample(nil) = %v, want nil", out)
	}
}
