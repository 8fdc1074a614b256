// Package interp provides fractional-delay interpolation helpers used by the
// resampler and the modulation effects.
package interp

// Linear interpolates between a and b at frac in [0,1].
func Linear(a, b, frac float64) float64 {
	return a + frac*(b-a)
}

// At reads samples at the fractional index pos using linear interpolation.
// The position is clamped to the valid range; an empty slice reads as 0.
func At(samples []float64, pos float64) float64 {
	n := len(samples)
	if n == 0 {
		return 0
	}
	if pos <= 0 {
		return samples[0]
	}
	if pos >= float64(n-1) {
		return samples[n-1]
	}
	idx := int(pos)
	return Linear(samples[idx], samples[idx+1], pos-float64(idx))
}

// Hermite4 computes cubic 4-point interpolation from x0 to x1 at t in [0,1],
// using the neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}
