package effects

import (
	"math"
	"testing"
)

func TestEchoImpulseTrain(t *testing.T) {
	const sr = 1000
	p := EchoParams{DelayMs: 100, Feedback: 0.5, WetLevel: 1} // 100 samples
	in := make([]float64, 350)
	in[0] = 1

	out := applyEcho(in, sr, p)

	want := map[int]float64{0: 1, 100: 0.5, 200: 0.25, 300: 0.125}
	for idx, w := range want {
		if diff := math.Abs(out[idx] - w); diff > 1e-12 {
			t.Fatalf("sample %d mismatch: got=%g want=%g diff=%g", idx, out[idx], w, diff)
		}
	}
	if out[50] != 0 {
		t.Fatalf("unexpected signal between taps: %g", out[50])
	}
}

func TestEchoZeroFeedbackIsIdentity(t *testing.T) {
	p := EchoParams{DelayMs: 50, Feedback: 0, WetLevel: 0.7}
	in := []float64{0.5, -0.25, 0.125, 0, 1, -1, 0.3, 0.7, -0.2, 0.9}
	out := applyEcho(in, 100, p) // 5-sample delay
	for i := range in {
		if diff := math.Abs(out[i] - in[i]); diff > 1e-12 {
			t.Fatalf("sample %d mismatch: got=%g want=%g", i, out[i], in[i])
		}
	}
}

func TestEchoZeroWetReproducesDry(t *testing.T) {
	p := EchoParams{DelayMs: 50, Feedback: 0.5, WetLevel: 0}
	in := []float64{0.5, -0.25, 0.125, 0, 1, -1, 0.3, 0.7, -0.2, 0.9}
	out := applyEcho(in, 100, p)
	for i := range in {
		if diff := math.Abs(out[i] - in[i]); diff > 1e-12 {
			t.Fatalf("sample %d mismatch: got=%g want=%g", i, out[i], in[i])
		}
	}
}

func TestEchoSilenceStaysSilent(t *testing.T) {
	p := EchoParams{DelayMs: 300, Feedback: 0.3, WetLevel: 0.5}
	in := make([]float64, 44100)
	out := applyEcho(in, 44100, p)
	for i, v := range out {
		if v != 0 {
			t.Fatalf("sample %d nonzero: %g", i, v)
		}
	}
}

func TestEchoNoOpWhenDelayExceedsSignal(t *testing.T) {
	p := EchoParams{DelayMs: 1000, Feedback: 0.5, WetLevel: 1}
	in := []float64{1, 2, 3}
	out := applyEcho(in, 44100, p)
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("sample %d mismatch: got=%g want=%g", i, out[i], in[i])
		}
	}
	out[0] = 99
	if in[0] != 1 {
		t.Fatalf("no-op path aliases input")
	}
}
