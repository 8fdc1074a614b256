package effects

import (
	"math"

	"github.com/metromuse/audiocore/dsp/core"
	"github.com/metromuse/audiocore/dsp/filter/biquad"
)

// applyEQ processes one channel through the three bands in series:
// low shelf, mid peak, high shelf. Bands within 0.1 dB of flat are bypassed.
//
// The shelves are built by blending a Butterworth reference filter with the
// dry signal: out = x + (filtered - x) * (g - 1), which reaches gain g in
// the band and unity outside it.
func applyEQ(samples []float64, sampleRate int, p EQParams) []float64 {
	out := append([]float64(nil), samples...)
	sr := float64(sampleRate)

	if math.Abs(p.LowGainDB) > eqGainEpsilonDB {
		blendBand(out, biquad.ButterworthLowPass(p.LowFreq, sr), core.DBToLinear(p.LowGainDB))
	}

	if math.Abs(p.MidGainDB) > eqGainEpsilonDB {
		s := biquad.NewSection(biquad.Peaking(p.MidFreq, p.MidGainDB, p.Q, sr))
		s.ProcessInPlace(out)
	}

	if math.Abs(p.HighGainDB) > eqGainEpsilonDB {
		blendBand(out, biquad.ButterworthHighPass(p.HighFreq, sr), core.DBToLinear(p.HighGainDB))
	}

	return out
}

func blendBand(buf []float64, c biquad.Coefficients, gainLinear float64) {
	s := biquad.NewSection(c)
	blend := gainLinear - 1
	for i, x := range buf {
		buf[i] = x + (s.ProcessSample(x)-x)*blend
	}
}
