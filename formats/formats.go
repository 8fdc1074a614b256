// Package formats loads audio files into sample buffers, dispatching on the
// file extension to the codec subpackages.
package formats

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/metromuse/audiocore/dsp/buffer"
	"github.com/metromuse/audiocore/formats/mp3"
	"github.com/metromuse/audiocore/formats/vorbis"
	"github.com/metromuse/audiocore/formats/wav"
)

// ErrUnsupportedFormat is returned for file extensions with no decoder.
var ErrUnsupportedFormat = errors.New("formats: unsupported file format")

// Load decodes the audio file at path into a buffer. Supported extensions
// are .wav, .mp3 and .ogg.
func Load(path string) (*buffer.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("formats: open: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".ogg":
		return vorbis.Decode(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// SaveWAV writes buf to path as a 16-bit PCM WAV file.
func SaveWAV(path string, buf *buffer.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("formats: create: %w", err)
	}

	if err := wav.Encode(f, buf); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
