package engine

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/hajimehoshi/oto/v2"
)

// ErrDeviceRate is returned when playback is requested at a rate other than
// the one the audio context was created with. The context is process-wide
// and its rate cannot change once created.
var ErrDeviceRate = errors.New("engine: audio device rate is fixed")

const (
	otoChannelCount = 2
	otoFormat       = 0 // 32-bit float little-endian
)

var (
	otoOnce  sync.Once
	otoCtx   *oto.Context
	otoRate  int
	otoReady chan struct{}
	otoErr   error
)

// OtoDevice plays through the system's default output via oto. The zero
// value is ready to use.
type OtoDevice struct{}

// Start creates the process-wide context on first use and begins pulling
// from stream.
func (OtoDevice) Start(sampleRate int, stream io.Reader) (io.Closer, error) {
	otoOnce.Do(func() {
		otoCtx, otoReady, otoErr = oto.NewContext(sampleRate, otoChannelCount, otoFormat)
		otoRate = sampleRate
	})
	if otoErr != nil {
		return nil, fmt.Errorf("engine: open audio device: %w", otoErr)
	}
	if sampleRate != otoRate {
		return nil, fmt.Errorf("%w at %d Hz, requested %d Hz", ErrDeviceRate, otoRate, sampleRate)
	}

	<-otoReady

	p := otoCtx.NewPlayer(stream)
	p.Play()

	return otoHandle{p: p}, nil
}

type otoHandle struct {
	p oto.Player
}

func (h otoHandle) Close() error {
	return h.p.Close()
}
