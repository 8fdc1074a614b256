package effects

import (
	"math"

	"github.com/metromuse/audiocore/dsp/interp"
)

// chorusMixGain is the total wet contribution, shared across voices.
const chorusMixGain = 0.3

// applyChorus processes one channel. Each voice reads a sine-modulated tap
// from a delay line fed with the dry signal; the tail of the signal is
// intentionally never written so late taps fall back to silence instead of
// reading past the end.
func applyChorus(samples []float64, sampleRate int, p ChorusParams) []float64 {
	out := append([]float64(nil), samples...)

	maxDelay := int(float64(sampleRate) * p.Depth * 2)
	if maxDelay <= 0 {
		return out
	}

	sr := float64(sampleRate)
	voiceGain := chorusMixGain / float64(p.Voices)

	for voice := 0; voice < p.Voices; voice++ {
		phaseOffset := 2 * math.Pi * float64(voice) / float64(p.Voices)
		ring := make([]float64, maxDelay)

		for i, x := range samples {
			lfo := math.Sin(2*math.Pi*p.Rate*float64(i)/sr + phaseOffset)
			delayTime := p.Depth * sr * (1 + lfo) / 2
			delaySamples := int(delayTime)

			if delaySamples < maxDelay && i >= delaySamples {
				frac := delayTime - float64(delaySamples)
				next := delaySamples + 1
				if next > maxDelay-1 {
					next = maxDelay - 1
				}
				out[i] += interp.Linear(ring[delaySamples], ring[next], frac) * voiceGain
			}

			if i < len(samples)-maxDelay {
				ring[i%maxDelay] = x
			}
		}
	}

	return out
}
