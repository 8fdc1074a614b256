// Package mp3 decodes MP3 streams into sample buffers.
package mp3

import (
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/metromuse/audiocore/dsp/buffer"
)

// ErrNotMP3 is returned when the input cannot be parsed as MP3.
var ErrNotMP3 = errors.New("mp3: not an MP3 stream")

// Decode reads a whole MP3 stream into a stereo buffer. go-mp3 always
// produces 16-bit little-endian stereo at the stream's sample rate.
func Decode(r io.Reader) (*buffer.Buffer, error) {
	d, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3, err)
	}

	raw, err := io.ReadAll(d)
	if err != nil {
		return nil, fmt.Errorf("mp3: decode: %w", err)
	}

	// 4 bytes per frame: left int16, right int16.
	frames := len(raw) / 4
	left := make([]float64, frames)
	right := make([]float64, frames)
	for i := 0; i < frames; i++ {
		l := int16(uint16(raw[4*i]) | uint16(raw[4*i+1])<<8)
		r := int16(uint16(raw[4*i+2]) | uint16(raw[4*i+3])<<8)
		left[i] = float64(l) / 32768
		right[i] = float64(r) / 32768
	}

	return buffer.FromSlices([][]float64{left, right}, d.SampleRate())
}
