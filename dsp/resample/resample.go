// Package resample converts audio between sample rates with linear
// interpolation, preserving duration: the output length is the input length
// scaled by the rate ratio, rounded to the nearest frame.
package resample

import (
	"errors"
	"math"

	"github.com/metromuse/audiocore/dsp/interp"
)

// ErrInvalidRate indicates a non-positive source or destination rate.
var ErrInvalidRate = errors.New("resample: invalid sample rate")

// OutputLen returns the output length for converting inLen samples from
// srcRate to dstRate: round(inLen * dstRate/srcRate).
func OutputLen(inLen, srcRate, dstRate int) int {
	if inLen <= 0 || srcRate <= 0 || dstRate <= 0 {
		return 0
	}
	if srcRate == dstRate {
		return inLen
	}
	return int(math.Round(float64(inLen) * float64(dstRate) / float64(srcRate)))
}

// Linear converts src from srcRate to dstRate into a new slice.
func Linear(src []float64, srcRate, dstRate int) ([]float64, error) {
	if srcRate <= 0 || dstRate <= 0 {
		return nil, ErrInvalidRate
	}
	if len(src) == 0 {
		return nil, nil
	}
	if srcRate == dstRate {
		return append([]float64(nil), src...), nil
	}

	dst := make([]float64, OutputLen(len(src), srcRate, dstRate))
	LinearInto(dst, src, srcRate, dstRate)

	return dst, nil
}

// LinearInto fills dst with src converted from srcRate to dstRate. The
// caller chooses len(dst); positions past the end of src repeat the last
// sample. dst is zeroed when src is empty. Zero-alloc.
func LinearInto(dst, src []float64, srcRate, dstRate int) {
	if len(src) == 0 {
		for i := range dst {
			dst[i] = 0
		}
		return
	}
	if srcRate == dstRate {
		n := copy(dst, src)
		last := src[len(src)-1]
		for i := n; i < len(dst); i++ {
			dst[i] = last
		}
		return
	}

	step := float64(srcRate) / float64(dstRate)
	for i := range dst {
		dst[i] = interp.At(src, float64(i)*step)
	}
}
