package engine

import "io"

// Device turns a pulled sample stream into audible output. Start begins
// pulling interleaved stereo float32 little-endian frames from stream at the
// given rate and returns a handle that stops playback when closed.
//
// The stream signals the end of playback with io.EOF; the device must stop
// pulling once it sees it.
type Device interface {
	Start(sampleRate int, stream io.Reader) (io.Closer, error)
}
