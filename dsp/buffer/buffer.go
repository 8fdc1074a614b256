// Package buffer provides the multichannel sample buffer shared by the
// effects, editing and mixing packages.
//
// A Buffer is a channels-by-frames float64 matrix plus a sample rate. Mono
// audio is a 1-channel buffer. All splice and gain operations return freshly
// allocated buffers; a published buffer is never mutated in place, which
// keeps undo snapshots and lock-free pointer swaps safe.
package buffer

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrInvalidChannels is returned for a non-positive channel count.
	ErrInvalidChannels = errors.New("buffer: channel count must be positive")
	// ErrInvalidSampleRate is returned for a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("buffer: sample rate must be positive")
	// ErrRaggedChannels is returned when channel slices differ in length.
	ErrRaggedChannels = errors.New("buffer: channels differ in length")
	// ErrRateMismatch is returned when combining buffers with different rates.
	ErrRateMismatch = errors.New("buffer: sample rate mismatch")
	// ErrChannelMismatch is returned when combining buffers with different
	// channel counts.
	ErrChannelMismatch = errors.New("buffer: channel count mismatch")
)

// Buffer holds interleaved-free multichannel audio: one float64 slice per
// channel, all the same length.
type Buffer struct {
	data       [][]float64
	sampleRate int
}

// New allocates a zeroed buffer with the given shape.
func New(channels, frames, sampleRate int) (*Buffer, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	if frames < 0 {
		frames = 0
	}

	data := make([][]float64, channels)
	for ch := range data {
		data[ch] = make([]float64, frames)
	}

	return &Buffer{data: data, sampleRate: sampleRate}, nil
}

// FromSlices wraps the given channel slices without copying; the caller must
// not retain them. All channels must share a length.
func FromSlices(data [][]float64, sampleRate int) (*Buffer, error) {
	if len(data) == 0 {
		return nil, ErrInvalidChannels
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	frames := len(data[0])
	for ch := 1; ch < len(data); ch++ {
		if len(data[ch]) != frames {
			return nil, fmt.Errorf("%w: channel 0 has %d frames, channel %d has %d",
				ErrRaggedChannels, frames, ch, len(data[ch]))
		}
	}

	return &Buffer{data: data, sampleRate: sampleRate}, nil
}

// Mono wraps a single channel of samples without copying.
func Mono(samples []float64, sampleRate int) (*Buffer, error) {
	return FromSlices([][]float64{samples}, sampleRate)
}

// Channels returns the channel count.
func (b *Buffer) Channels() int { return len(b.data) }

// Frames returns the per-channel sample count.
func (b *Buffer) Frames() int {
	if len(b.data) == 0 {
		return 0
	}
	return len(b.data[0])
}

// SampleRate returns the sample rate in Hz.
func (b *Buffer) SampleRate() int { return b.sampleRate }

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	return float64(b.Frames()) / float64(b.sampleRate)
}

// Channel returns the samples of channel ch. The slice aliases the buffer;
// treat it as read-only.
func (b *Buffer) Channel(ch int) []float64 { return b.data[ch] }

// Peak returns the largest absolute sample value across all channels.
func (b *Buffer) Peak() float64 {
	peak := 0.0
	for _, ch := range b.data {
		if p := vecmath.MaxAbs(ch); p > peak {
			peak = p
		}
	}
	return peak
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	data := make([][]float64, len(b.data))
	for ch := range b.data {
		data[ch] = append([]float64(nil), b.data[ch]...)
	}
	return &Buffer{data: data, sampleRate: b.sampleRate}
}

// clampRange normalizes [start, end) to the frame range.
func (b *Buffer) clampRange(start, end int) (int, int) {
	frames := b.Frames()
	if start < 0 {
		start = 0
	}
	if end > frames {
		end = frames
	}
	if start > end {
		start = end
	}
	return start, end
}

// Slice returns a copy of the frames in [start, end), clamped to the buffer.
func (b *Buffer) Slice(start, end int) *Buffer {
	start, end = b.clampRange(start, end)
	data := make([][]float64, len(b.data))
	for ch := range b.data {
		data[ch] = append([]float64(nil), b.data[ch][start:end]...)
	}
	return &Buffer{data: data, sampleRate: b.sampleRate}
}

// KeepRange returns a new buffer holding only the frames in [start, end).
func (b *Buffer) KeepRange(start, end int) *Buffer {
	return b.Slice(start, end)
}

// CutRange returns a new buffer with the frames in [start, end) removed.
func (b *Buffer) CutRange(start, end int) *Buffer {
	start, end = b.clampRange(start, end)
	data := make([][]float64, len(b.data))
	for ch := range b.data {
		src := b.data[ch]
		out := make([]float64, 0, len(src)-(end-start))
		out = append(out, src[:start]...)
		out = append(out, src[end:]...)
		data[ch] = out
	}
	return &Buffer{data: data, sampleRate: b.sampleRate}
}

// InsertAt returns a new buffer with other spliced in at frame index at.
// The rates and channel counts must match.
func (b *Buffer) InsertAt(at int, other *Buffer) (*Buffer, error) {
	if other.sampleRate != b.sampleRate {
		return nil, fmt.Errorf("%w: %d vs %d", ErrRateMismatch, b.sampleRate, other.sampleRate)
	}
	if other.Channels() != b.Channels() {
		return nil, fmt.Errorf("%w: %d vs %d", ErrChannelMismatch, b.Channels(), other.Channels())
	}
	frames := b.Frames()
	if at < 0 {
		at = 0
	}
	if at > frames {
		at = frames
	}

	data := make([][]float64, len(b.data))
	for ch := range b.data {
		src := b.data[ch]
		ins := other.data[ch]
		out := make([]float64, 0, len(src)+len(ins))
		out = append(out, src[:at]...)
		out = append(out, ins...)
		out = append(out, src[at:]...)
		data[ch] = out
	}
	return &Buffer{data: data, sampleRate: b.sampleRate}, nil
}

// ScaleRange returns a copy with the frames in [start, end) multiplied by
// factor.
func (b *Buffer) ScaleRange(start, end int, factor float64) *Buffer {
	start, end = b.clampRange(start, end)
	out := b.Clone()
	for ch := range out.data {
		vecmath.ScaleBlockInPlace(out.data[ch][start:end], factor)
	}
	return out
}

// RampRange returns a copy with the frames in [start, end) multiplied by a
// linear ramp from from to to across the range.
func (b *Buffer) RampRange(start, end int, from, to float64) *Buffer {
	start, end = b.clampRange(start, end)
	out := b.Clone()
	n := end - start
	if n == 0 {
		return out
	}

	ramp := make([]float64, n)
	if n == 1 {
		ramp[0] = from
	} else {
		step := (to - from) / float64(n-1)
		for i := range ramp {
			ramp[i] = from + step*float64(i)
		}
	}
	for ch := range out.data {
		vecmath.MulBlockInPlace(out.data[ch][start:end], ramp)
	}
	return out
}
