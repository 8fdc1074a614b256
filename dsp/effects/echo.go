package effects

// applyEcho processes one channel through a single feedback delay line.
// The whole call is a no-op copy when the delay does not fit the signal.
func applyEcho(samples []float64, sampleRate int, p EchoParams) []float64 {
	out := make([]float64, len(samples))
	delaySamples := int(float64(sampleRate) * p.DelayMs / 1000)

	if delaySamples <= 0 || delaySamples >= len(samples) {
		copy(out, samples)
		return out
	}

	ring := make([]float64, delaySamples)
	index := 0
	wet := p.WetLevel

	for i, x := range samples {
		echo := x + ring[index]*p.Feedback
		ring[index] = echo
		index++
		if index >= delaySamples {
			index = 0
		}
		out[i] = x*(1-wet) + echo*wet
	}

	return out
}
