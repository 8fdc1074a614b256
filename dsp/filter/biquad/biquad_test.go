package biquad

import (
	"math"
	"testing"
)

func TestIdentityPassesThrough(t *testing.T) {
	s := NewSection(Identity())
	for i, x := range []float64{1, -0.5, 0.25, 0, 0.75} {
		if y := s.ProcessSample(x); y != x {
			t.Fatalf("sample %d: got=%g want=%g", i, y, x)
		}
	}
}

func TestProcessBlockToMatchesProcessSample(t *testing.T) {
	c := ButterworthLowPass(1000, 44100)
	ref := NewSection(c)
	blk := NewSection(c)

	src := make([]float64, 256)
	for i := range src {
		src[i] = math.Sin(2 * math.Pi * 440 * float64(i) / 44100)
	}

	want := make([]float64, len(src))
	for i, x := range src {
		want[i] = ref.ProcessSample(x)
	}

	got := make([]float64, len(src))
	blk.ProcessBlockTo(got, src)
	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > 1e-12 {
			t.Fatalf("sample %d mismatch: got=%g want=%g diff=%g", i, got[i], want[i], diff)
		}
	}
}

func TestButterworthLowPassDCGain(t *testing.T) {
	s := NewSection(ButterworthLowPass(1000, 44100))

	var y float64
	for i := 0; i < 44100; i++ {
		y = s.ProcessSample(1)
	}
	if diff := math.Abs(y - 1); diff > 1e-6 {
		t.Fatalf("DC gain got=%g want=1 diff=%g", y, diff)
	}
}

func TestButterworthHighPassBlocksDC(t *testing.T) {
	s := NewSection(ButterworthHighPass(1000, 44100))

	var y float64
	for i := 0; i < 44100; i++ {
		y = s.ProcessSample(1)
	}
	if math.Abs(y) > 1e-6 {
		t.Fatalf("DC leak: got=%g want 0", y)
	}
}

func TestPeakingZeroGainIsIdentity(t *testing.T) {
	s := NewSection(Peaking(1000, 0, 1.0, 44100))
	for i := 0; i < 512; i++ {
		x := math.Sin(2 * math.Pi * 330 * float64(i) / 44100)
		y := s.ProcessSample(x)
		if diff := math.Abs(y - x); diff > 1e-9 {
			t.Fatalf("sample %d mismatch: got=%g want=%g diff=%g", i, y, x, diff)
		}
	}
}

func TestPeakingBoostsCenterFrequency(t *testing.T) {
	const (
		sr     = 44100.0
		center = 1000.0
	)
	s := NewSection(Peaking(center, 6, 1.0, sr))

	// Steady-state amplitude at the center frequency.
	var peak float64
	n := int(sr)
	for i := 0; i < n; i++ {
		y := s.ProcessSample(math.Sin(2 * math.Pi * center * float64(i) / sr))
		if i > n/2 && math.Abs(y) > peak {
			peak = math.Abs(y)
		}
	}

	want := math.Pow(10, 6.0/20)
	if diff := math.Abs(peak - want); diff > 0.05 {
		t.Fatalf("center gain got=%g want=%g diff=%g", peak, want, diff)
	}
}

func TestDegenerateDesignFallsBackToIdentity(t *testing.T) {
	for _, c := range []Coefficients{
		ButterworthLowPass(0, 44100),
		ButterworthLowPass(30000, 44100),
		ButterworthHighPass(1000, 0),
		Peaking(math.NaN(), 6, 1, 44100),
	} {
		if c != Identity() {
			t.Fatalf("expected identity coefficients, got %+v", c)
		}
	}
}

func TestReset(t *testing.T) {
	s := NewSection(ButterworthLowPass(500, 44100))
	s.ProcessSample(1)
	s.ProcessSample(1)
	s.Reset()
	if y := s.ProcessSample(0); y != 0 {
		t.Fatalf("state survived Reset: got=%g", y)
	}
}
