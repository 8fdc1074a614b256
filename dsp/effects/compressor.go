package effects

import (
	"math"

	"github.com/metromuse/audiocore/dsp/core"
)

// applyCompressor processes one channel with a peak-following envelope and
// static gain computer. Channels are compressed independently; stereo images
// can shift under heavy compression, matching the original behavior.
func applyCompressor(samples []float64, sampleRate int, p CompressorParams) []float64 {
	out := make([]float64, len(samples))

	sr := float64(sampleRate)
	attackCoef := math.Exp(-1 / (sr * p.AttackMs / 1000))
	releaseCoef := math.Exp(-1 / (sr * p.ReleaseMs / 1000))
	threshold := core.DBToLinear(p.ThresholdDB)

	envelope := 0.0
	for i, x := range samples {
		level := math.Abs(x)
		if level > envelope {
			envelope = level + (envelope-level)*attackCoef
		} else {
			envelope = level + (envelope-level)*releaseCoef
		}

		gain := 1.0
		if envelope > threshold {
			gain = (threshold + (envelope-threshold)/p.Ratio) / envelope
		}

		out[i] = x * gain
	}

	return out
}
