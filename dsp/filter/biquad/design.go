package biquad

import "math"

// butterworthQ is the quality factor of a single second-order Butterworth
// stage.
const butterworthQ = 1 / math.Sqrt2

// ButterworthLowPass designs a second-order Butterworth lowpass at freq (Hz).
// Degenerate inputs yield pass-through coefficients.
func ButterworthLowPass(freq, sampleRate float64) Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return Identity()
	}

	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * butterworthQ)

	b0 := (1 - cw) / 2
	b1 := 1 - cw
	b2 := (1 - cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalize(b0, b1, b2, a0, a1, a2)
}

// ButterworthHighPass designs a second-order Butterworth highpass at freq
// (Hz). Degenerate inputs yield pass-through coefficients.
func ButterworthHighPass(freq, sampleRate float64) Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return Identity()
	}

	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * butterworthQ)

	b0 := (1 + cw) / 2
	b1 := -(1 + cw)
	b2 := (1 + cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalize(b0, b1, b2, a0, a1, a2)
}

// Peaking designs a peaking-EQ biquad (RBJ) with gain in dB centered at freq
// (Hz). A non-positive or non-finite q falls back to the Butterworth q.
func Peaking(freq, gainDB, q, sampleRate float64) Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return Identity()
	}
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		q = butterworthQ
	}

	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)
	a := math.Pow(10, gainDB/40)

	b0 := 1 + alpha*a
	b1 := -2 * cw
	b2 := 1 - alpha*a
	a0 := 1 + alpha/a
	a1 := -2 * cw
	a2 := 1 - alpha/a

	return normalize(b0, b1, b2, a0, a1, a2)
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	nyquist := sampleRate / 2
	if freq <= 0 || freq >= nyquist || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

func normalize(b0, b1, b2, a0, a1, a2 float64) Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return Identity()
	}

	return Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
