package asr

// Resample converts chunk from sysRate to asrRate by linear interpolation.
// The mapping from a resampled sample index j to the system-rate offset
// within chunk is j*sysRate/asrRate — a fixed, deterministic formula chosen
// over a quality-tuned resampler (see DESIGN.md) so that ASR word timings
// map back to AbsPos reproducibly.
func Resample(chunk []float32, sysRate, asrRate int) []float32 {
	if len(chunk) == 0 || sysRate <= 0 || asrRate <= 0 {
		return nil
	}
	outLen := int(float64(len(chunk)) * float64(asrRate) / float64(sysRate))
	out := make([]float32, outLen)
	ratio := float64(sysRate) / float64(asrRate)
	last := len(chunk) - 1
	for j := 0; j < outLen; j++ {
		srcPos := float64(j) * ratio
		i0 := int(srcPos)
		if i0 > last {
			i0 = last
		}
		frac := float32(srcPos - float64(i0))
		s0 := chunk[i0]
		s1 := s0
		if i0 < last {
			s1 = chunk[i0+1]
		}
		out[j] = s0 + frac*(s1-s0)
	}
	return out
}
