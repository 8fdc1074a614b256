package resample

import (
	"errors"
	"math"
	"testing"
)

func TestOutputLenRounding(t *testing.T) {
	cases := []struct {
		inLen, src, dst, want int
	}{
		{100, 44100, 44100, 100},
		{100, 44100, 48000, 109}, // 108.84 rounds up
		{100, 48000, 44100, 92},  // 91.875 rounds up
		{441, 44100, 22050, 221}, // 220.5 rounds half away
		{0, 44100, 48000, 0},
	}
	for _, c := range cases {
		if got := OutputLen(c.inLen, c.src, c.dst); got != c.want {
			t.Fatalf("OutputLen(%d,%d,%d)=%d want %d", c.inLen, c.src, c.dst, got, c.want)
		}
	}
}

func TestLinearIdentityAtEqualRates(t *testing.T) {
	src := []float64{0.1, -0.2, 0.3, -0.4}
	out, err := Linear(src, 44100, 44100)
	if err != nil {
		t.Fatalf("Linear: %v", err)
	}
	if len(out) != len(src) {
		t.Fatalf("len=%d want %d", len(out), len(src))
	}
	for i := range src {
		if out[i] != src[i] {
			t.Fatalf("sample %d: got=%g want=%g", i, out[i], src[i])
		}
	}
	out[0] = 99
	if src[0] != 0.1 {
		t.Fatalf("output aliases input")
	}
}

func TestLinearRejectsBadRates(t *testing.T) {
	if _, err := Linear([]float64{1}, 0, 44100); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}
	if _, err := Linear([]float64{1}, 44100, -1); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}
}

func TestLinearEmptyInput(t *testing.T) {
	out, err := Linear(nil, 44100, 48000)
	if err != nil {
		t.Fatalf("Linear: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("len=%d want 0", len(out))
	}
}

func TestLinearUpsamplePreservesRamp(t *testing.T) {
	// A linear ramp stays linear under linear interpolation.
	src := make([]float64, 100)
	for i := range src {
		src[i] = float64(i)
	}

	out, err := Linear(src, 22050, 44100)
	if err != nil {
		t.Fatalf("Linear: %v", err)
	}
	if len(out) != 200 {
		t.Fatalf("len=%d want 200", len(out))
	}
	for i := 0; i < 198; i++ {
		want := float64(i) * 0.5
		if diff := math.Abs(out[i] - want); diff > 1e-9 {
			t.Fatalf("sample %d mismatch: got=%g want=%g diff=%g", i, out[i], want, diff)
		}
	}
}

func TestLinearIntoPadsWithLastSample(t *testing.T) {
	src := []float64{1, 2, 3}
	dst := make([]float64, 5)
	LinearInto(dst, src, 44100, 44100)
	want := []float64{1, 2, 3, 3, 3}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("sample %d: got=%g want=%g", i, dst[i], want[i])
		}
	}
}

func TestLinearIntoZeroesOnEmptySource(t *testing.T) {
	dst := []float64{9, 9, 9}
	LinearInto(dst, nil, 44100, 48000)
	for i, v := range dst {
		if v != 0 {
			t.Fatalf("sample %d not zeroed: %g", i, v)
		}
	}
}
