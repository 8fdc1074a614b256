// Package vorbis decodes Ogg Vorbis streams into sample buffers.
package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/metromuse/audiocore/dsp/buffer"
)

// ErrNotVorbis is returned when the input is not an Ogg Vorbis stream.
var ErrNotVorbis = errors.New("vorbis: not an Ogg Vorbis stream")

// Decode reads a whole Ogg Vorbis stream into a buffer, one slice per
// channel.
func Decode(r io.Reader) (*buffer.Buffer, error) {
	samples, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbis, err)
	}
	if format.Channels <= 0 {
		return nil, ErrNotVorbis
	}

	channels := format.Channels
	frames := len(samples) / channels
	data := make([][]float64, channels)
	for ch := range data {
		data[ch] = make([]float64, frames)
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			data[ch][i] = float64(samples[i*channels+ch])
		}
	}

	return buffer.FromSlices(data, format.SampleRate)
}
