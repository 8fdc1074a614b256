package effects

import (
	"math"
	"testing"
)

func TestChorusSilenceStaysSilent(t *testing.T) {
	out := applyChorus(make([]float64, 44100), 44100, DefaultChorusParams())
	for i, v := range out {
		if v != 0 {
			t.Fatalf("sample %d not silent: %g", i, v)
		}
	}
}

func TestChorusShortSignalIsDryCopy(t *testing.T) {
	// Signal shorter than the modulation window: the delay line is never
	// written, so only the dry path survives.
	in := []float64{0.5, -0.5, 0.25}
	out := applyChorus(in, 44100, DefaultChorusParams())
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("sample %d mismatch: got=%g want=%g", i, out[i], in[i])
		}
	}
	out[0] = 99
	if in[0] != 0.5 {
		t.Fatalf("output aliases input")
	}
}

func TestChorusThickensLongSignal(t *testing.T) {
	const sr = 44100
	in := make([]float64, sr)
	for i := range in {
		in[i] = math.Sin(2 * math.Pi * 220 * float64(i) / sr)
	}

	out := applyChorus(in, sr, DefaultChorusParams())

	changed := false
	for i := range in {
		if math.IsNaN(out[i]) || math.IsInf(out[i], 0) {
			t.Fatalf("sample %d not finite: %g", i, out[i])
		}
		if math.Abs(out[i]-in[i]) > 1e-9 {
			changed = true
		}
	}
	if !changed {
		t.Fatalf("chorus left a long signal untouched")
	}
}

func TestChorusZeroLength(t *testing.T) {
	if out := applyChorus(nil, 44100, DefaultChorusParams()); len(out) != 0 {
		t.Fatalf("len=%d want 0", len(out))
	}
}
