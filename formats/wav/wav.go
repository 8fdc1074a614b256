// Package wav decodes WAV files into sample buffers and exports buffers as
// 16-bit PCM WAV. Decoding accepts any PCM bit depth go-audio understands;
// export always writes 16-bit, matching the editor's save path.
package wav

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/metromuse/audiocore/dsp/buffer"
)

var (
	// ErrNotWav is returned when the input is not a valid WAV stream.
	ErrNotWav = errors.New("wav: not a WAV file")
	// ErrEmptyBuffer is returned when encoding a buffer without frames.
	ErrEmptyBuffer = errors.New("wav: nothing to encode")
)

// Decode reads a whole WAV stream into a buffer. Samples are normalized to
// [-1, 1] by the source bit depth.
func Decode(r io.ReadSeeker) (*buffer.Buffer, error) {
	d := gowav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, ErrNotWav
	}

	pcm, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav: decode: %w", err)
	}
	if pcm.Format == nil || pcm.Format.NumChannels <= 0 {
		return nil, ErrNotWav
	}

	channels := pcm.Format.NumChannels
	frames := len(pcm.Data) / channels

	bitDepth := pcm.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = int(d.BitDepth)
	}
	scale := 1.0 / float64(int64(1)<<(bitDepth-1))

	data := make([][]float64, channels)
	for ch := range data {
		data[ch] = make([]float64, frames)
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			data[ch][i] = float64(pcm.Data[i*channels+ch]) * scale
		}
	}

	return buffer.FromSlices(data, pcm.Format.SampleRate)
}

// Encode writes buf as a 16-bit PCM WAV stream. Samples outside [-1, 1] are
// clipped.
func Encode(w io.WriteSeeker, buf *buffer.Buffer) error {
	if buf == nil || buf.Frames() == 0 {
		return ErrEmptyBuffer
	}

	channels := buf.Channels()
	frames := buf.Frames()

	data := make([]int, frames*channels)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			v := buf.Channel(ch)[i]
			if v > 1 {
				v = 1
			} else if v < -1 {
				v = -1
			}
			data[i*channels+ch] = int(math.Round(v * 32767))
		}
	}

	enc := gowav.NewEncoder(w, buf.SampleRate(), 16, channels, 1)
	pcm := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  buf.SampleRate(),
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(pcm); err != nil {
		return fmt.Errorf("wav: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav: finalize: %w", err)
	}

	return nil
}
