package effects

import (
	"math"
	"testing"
)

func rms(buf []float64) float64 {
	var sum float64
	for _, v := range buf {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(buf)))
}

func sine(freq float64, n, sr int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sr))
	}
	return out
}

func TestEQFlatIsExactIdentity(t *testing.T) {
	in := sine(440, 4096, 44100)
	out := applyEQ(in, 44100, DefaultEQParams())
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("sample %d mismatch: got=%g want=%g", i, out[i], in[i])
		}
	}
}

func TestEQSubThresholdGainBypasses(t *testing.T) {
	p := DefaultEQParams()
	p.LowGainDB = 0.05
	p.MidGainDB = -0.1
	p.HighGainDB = 0.09

	in := sine(440, 1024, 44100)
	out := applyEQ(in, 44100, p)
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("sample %d mismatch: got=%g want=%g", i, out[i], in[i])
		}
	}
}

func TestEQLowBoostIsFrequencySelective(t *testing.T) {
	const sr = 44100
	p := DefaultEQParams()
	p.LowGainDB = 6

	low := sine(50, sr, sr)
	lowOut := applyEQ(low, sr, p)
	lowRatio := rms(lowOut) / rms(low)
	if lowRatio < 1.8 || lowRatio > 2.1 {
		t.Fatalf("low band gain ratio got=%g want ~2", lowRatio)
	}

	high := sine(8000, sr, sr)
	highOut := applyEQ(high, sr, p)
	highRatio := rms(highOut) / rms(high)
	if math.Abs(highRatio-1) > 0.1 {
		t.Fatalf("low boost leaked into highs: ratio=%g", highRatio)
	}
}

func TestEQMidCutAttenuatesCenter(t *testing.T) {
	const sr = 44100
	p := DefaultEQParams()
	p.MidGainDB = -12

	in := sine(p.MidFreq, sr, sr)
	out := applyEQ(in, sr, p)

	ratio := rms(out) / rms(in)
	want := math.Pow(10, -12.0/20)
	if math.Abs(ratio-want) > 0.05 {
		t.Fatalf("mid cut ratio got=%g want=%g", ratio, want)
	}
}
