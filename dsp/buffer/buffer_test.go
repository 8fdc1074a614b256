package buffer

import (
	"errors"
	"math"
	"testing"
)

func TestNewValidation(t *testing.T) {
	if _, err := New(0, 10, 44100); !errors.Is(err, ErrInvalidChannels) {
		t.Fatalf("expected ErrInvalidChannels, got %v", err)
	}
	if _, err := New(2, 10, 0); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("expected ErrInvalidSampleRate, got %v", err)
	}

	b, err := New(2, -5, 44100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if b.Frames() != 0 {
		t.Fatalf("negative frames should clamp to 0, got %d", b.Frames())
	}
}

func TestFromSlicesRagged(t *testing.T) {
	_, err := FromSlices([][]float64{{1, 2, 3}, {1, 2}}, 44100)
	if !errors.Is(err, ErrRaggedChannels) {
		t.Fatalf("expected ErrRaggedChannels, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b, err := Mono([]float64{1, 2, 3}, 48000)
	if err != nil {
		t.Fatalf("Mono: %v", err)
	}

	c := b.Clone()
	c.Channel(0)[1] = 99
	if b.Channel(0)[1] != 2 {
		t.Fatalf("clone shares storage with source")
	}
	if c.SampleRate() != 48000 {
		t.Fatalf("clone lost sample rate: %d", c.SampleRate())
	}
}

func TestSliceClamps(t *testing.T) {
	b, _ := Mono([]float64{0, 1, 2, 3, 4}, 44100)

	s := b.Slice(-3, 99)
	if s.Frames() != 5 {
		t.Fatalf("clamped slice frames=%d want 5", s.Frames())
	}

	s = b.Slice(1, 3)
	want := []float64{1, 2}
	for i, v := range s.Channel(0) {
		if v != want[i] {
			t.Fatalf("slice[%d]=%g want %g", i, v, want[i])
		}
	}

	s = b.Slice(4, 2)
	if s.Frames() != 0 {
		t.Fatalf("inverted range should be empty, got %d frames", s.Frames())
	}
}

func TestCutRange(t *testing.T) {
	b, _ := FromSlices([][]float64{
		{0, 1, 2, 3, 4},
		{5, 6, 7, 8, 9},
	}, 44100)

	cut := b.CutRange(1, 3)
	if cut.Frames() != 3 {
		t.Fatalf("frames=%d want 3", cut.Frames())
	}
	want := [][]float64{{0, 3, 4}, {5, 8, 9}}
	for ch := range want {
		for i, v := range want[ch] {
			if cut.Channel(ch)[i] != v {
				t.Fatalf("ch %d sample %d: got=%g want=%g", ch, i, cut.Channel(ch)[i], v)
			}
		}
	}
	if b.Frames() != 5 {
		t.Fatalf("source mutated: frames=%d", b.Frames())
	}
}

func TestInsertAt(t *testing.T) {
	b, _ := Mono([]float64{0, 1, 2}, 44100)
	ins, _ := Mono([]float64{8, 9}, 44100)

	out, err := b.InsertAt(1, ins)
	if err != nil {
		t.Fatalf("InsertAt: %v", err)
	}
	want := []float64{0, 8, 9, 1, 2}
	for i, v := range want {
		if out.Channel(0)[i] != v {
			t.Fatalf("sample %d: got=%g want=%g", i, out.Channel(0)[i], v)
		}
	}

	// Out-of-range index clamps to an append.
	out, err = b.InsertAt(99, ins)
	if err != nil {
		t.Fatalf("InsertAt: %v", err)
	}
	if out.Channel(0)[3] != 8 {
		t.Fatalf("expected insert at tail, got %v", out.Channel(0))
	}

	wrongRate, _ := Mono([]float64{1}, 22050)
	if _, err := b.InsertAt(0, wrongRate); !errors.Is(err, ErrRateMismatch) {
		t.Fatalf("expected ErrRateMismatch, got %v", err)
	}
	stereo, _ := FromSlices([][]float64{{1}, {1}}, 44100)
	if _, err := b.InsertAt(0, stereo); !errors.Is(err, ErrChannelMismatch) {
		t.Fatalf("expected ErrChannelMismatch, got %v", err)
	}
}

func TestScaleRange(t *testing.T) {
	b, _ := Mono([]float64{1, 1, 1, 1}, 44100)
	out := b.ScaleRange(1, 3, 0.5)
	want := []float64{1, 0.5, 0.5, 1}
	for i, v := range want {
		if out.Channel(0)[i] != v {
			t.Fatalf("sample %d: got=%g want=%g", i, out.Channel(0)[i], v)
		}
	}
	if b.Channel(0)[1] != 1 {
		t.Fatalf("source mutated")
	}
}

func TestRampRange(t *testing.T) {
	b, _ := Mono([]float64{1, 1, 1, 1, 1}, 44100)

	out := b.RampRange(0, 5, 0, 1)
	ramp := out.Channel(0)
	if ramp[0] != 0 || ramp[4] != 1 {
		t.Fatalf("ramp endpoints: %v", ramp)
	}
	if math.Abs(ramp[2]-0.5) > 1e-12 {
		t.Fatalf("ramp midpoint got=%g want=0.5", ramp[2])
	}

	out = b.RampRange(2, 3, 0.25, 0.75)
	if out.Channel(0)[2] != 0.25 {
		t.Fatalf("single-sample ramp should hold start value, got %g", out.Channel(0)[2])
	}
}

func TestPeakAndDuration(t *testing.T) {
	b, _ := FromSlices([][]float64{
		{0.1, -0.9, 0.2},
		{0.3, 0.4, -0.5},
	}, 3)
	if p := b.Peak(); p != 0.9 {
		t.Fatalf("peak=%g want 0.9", p)
	}
	if d := b.Duration(); math.Abs(d-1.0) > 1e-12 {
		t.Fatalf("duration=%g want 1", d)
	}
}
