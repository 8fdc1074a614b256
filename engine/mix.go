package engine

import (
	"io"
	"math"
	"time"

	"github.com/cwbudde/algo-vecmath"

	"github.com/metromuse/audiocore/dsp/core"
	"github.com/metromuse/audiocore/dsp/resample"
	"github.com/metromuse/audiocore/track"
)

// mixStream renders the project into interleaved stereo float32 LE frames.
// The device pulls it from its own goroutine; every shared value it touches
// is an atomic on the engine or track. Scratch buffers persist across reads
// and only grow, so the steady state allocates nothing.
type mixStream struct {
	e    *Engine
	rate int

	window    []float64
	resampled []float64
	left      []float64
	right     []float64
}

func newMixStream(e *Engine, rate int) *mixStream {
	return &mixStream{e: e, rate: rate}
}

const bytesPerFrame = 8 // 2 channels x float32

func (s *mixStream) Read(p []byte) (int, error) {
	if Transport(s.e.state.Load()) != Playing {
		return 0, io.EOF
	}

	frames := len(p) / bytesPerFrame
	if frames > s.e.maxFrames {
		frames = s.e.maxFrames
	}
	if frames == 0 {
		return 0, nil
	}

	started := time.Now()
	pos := s.e.Position()

	if pos >= s.e.MaxDuration() {
		return s.finish()
	}

	s.left = core.EnsureLen(s.left, frames)
	s.right = core.EnsureLen(s.right, frames)
	core.Zero(s.left)
	core.Zero(s.right)

	for _, t := range activeSet(*s.e.tracks.Load()) {
		s.mixTrack(t, pos, frames)
	}

	if gv := s.e.GlobalVolume(); gv != 1 {
		vecmath.ScaleBlockInPlace(s.left, gv)
		vecmath.ScaleBlockInPlace(s.right, gv)
	}

	peak := vecmath.MaxAbs(s.left)
	if r := vecmath.MaxAbs(s.right); r > peak {
		peak = r
	}
	if peak > 1 {
		vecmath.ScaleBlockInPlace(s.left, 1/peak)
		vecmath.ScaleBlockInPlace(s.right, 1/peak)
	}

	for i := 0; i < frames; i++ {
		putFloat32LE(p[i*bytesPerFrame:], float32(s.left[i]))
		putFloat32LE(p[i*bytesPerFrame+4:], float32(s.right[i]))
	}

	elapsed := float64(frames) / float64(s.rate)
	newPos := pos + elapsed
	s.e.setPosition(newPos)
	if s.e.events.PositionChanged != nil {
		s.e.events.PositionChanged(newPos)
	}

	if s.e.perf != nil {
		deadline := time.Duration(elapsed * float64(time.Second))
		s.e.perf.ReportCallback(time.Since(started), deadline)
	}

	return frames * bytesPerFrame, nil
}

// mixTrack adds one track's window to the left/right accumulators. A panic
// in here drops the track for this callback only.
func (s *mixStream) mixTrack(t *track.Track, pos float64, frames int) {
	defer func() {
		if r := recover(); r != nil {
			s.e.log.Error("track skipped for this buffer", "id", t.ID(), "panic", r)
		}
	}()

	buf := t.Buffer()
	if buf == nil {
		return
	}

	native := buf.SampleRate()
	srcLen := resample.OutputLen(frames, s.rate, native)
	if srcLen == 0 {
		return
	}
	startIdx := int(pos * float64(native))
	if startIdx >= buf.Frames() {
		return
	}

	vol := t.Volume()
	s.window = core.EnsureLen(s.window, srcLen)
	s.resampled = core.EnsureLen(s.resampled, frames)

	// Left from channel 0, right from channel 1 when present.
	rightCh := buf.Channels() - 1
	if rightCh > 1 {
		rightCh = 1
	}

	for _, lane := range [2]struct {
		src int
		dst []float64
	}{
		{src: 0, dst: s.left},
		{src: rightCh, dst: s.right},
	} {
		data := buf.Channel(lane.src)
		end := startIdx + srcLen
		if end > len(data) {
			end = len(data)
		}

		n := core.CopyInto(s.window, data[startIdx:end])
		core.Zero(s.window[n:])
		if vol != 1 {
			vecmath.ScaleBlockInPlace(s.window[:n], vol)
		}

		resample.LinearInto(s.resampled, s.window, native, s.rate)
		vecmath.AddBlockInPlace(lane.dst, s.resampled)
	}
}

// finish ends playback when the position passes the project length.
func (s *mixStream) finish() (int, error) {
	if s.e.state.CompareAndSwap(int32(Playing), int32(Stopped)) {
		s.e.setPosition(0)
		s.e.log.Info("playback finished")
		if s.e.events.PlaybackStopped != nil {
			s.e.events.PlaybackStopped()
		}
	}
	return 0, io.EOF
}

func putFloat32LE(b []byte, v float32) {
	bits := math.Float32bits(v)
	b[0] = byte(bits)
	b[1] = byte(bits >> 8)
	b[2] = byte(bits >> 16)
	b[3] = byte(bits >> 24)
}
