// Package engine hosts the playback engine: the track list, transport
// control, undo history and the real-time mix stream feeding the output
// device.
package engine

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	"github.com/metromuse/audiocore/dsp/core"
	"github.com/metromuse/audiocore/perf"
	"github.com/metromuse/audiocore/track"
)

// Transport is the playback state machine.
type Transport int32

const (
	Stopped Transport = iota
	Playing
	Paused
)

func (t Transport) String() string {
	switch t {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("transport(%d)", int32(t))
	}
}

// Events carries the engine's notification callbacks. Nil fields are
// skipped. PositionChanged fires from the mix goroutine once per callback
// with strictly increasing values while playing; the reported position
// trails the audible output by at most one buffer.
type Events struct {
	PlaybackStarted func()
	PlaybackPaused  func()
	PlaybackStopped func()
	PositionChanged func(seconds float64)
	TrackAdded      func(t *track.Track)
	TrackRemoved    func(t *track.Track)
}

const (
	defaultMaxFrames = 2048
	minMixFrames     = 64
)

type config struct {
	device    Device
	log       *slog.Logger
	perf      perf.Reporter
	maxFrames int
	volume    float64
	events    Events
}

// Option configures an Engine.
type Option func(*config)

// WithDevice sets the output device. Defaults to OtoDevice.
func WithDevice(d Device) Option {
	return func(c *config) {
		if d != nil {
			c.device = d
		}
	}
}

// WithLogger sets the engine logger. Defaults to discard.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.log = logger
		}
	}
}

// WithPerfReporter installs a per-callback performance reporter.
func WithPerfReporter(r perf.Reporter) Option {
	return func(c *config) {
		c.perf = r
	}
}

// WithMaxFrames caps the frames mixed per device callback.
func WithMaxFrames(n int) Option {
	return func(c *config) {
		if n >= minMixFrames {
			c.maxFrames = n
		}
	}
}

// WithGlobalVolume sets the initial master volume in [0, 1].
func WithGlobalVolume(v float64) Option {
	return func(c *config) {
		c.volume = core.Clamp(v, 0, 1)
	}
}

// WithEvents installs the notification callbacks.
func WithEvents(ev Events) Option {
	return func(c *config) {
		c.events = ev
	}
}

// Engine owns the track list and drives mixing and transport.
type Engine struct {
	log       *slog.Logger
	device    Device
	perf      perf.Reporter
	maxFrames int
	events    Events

	tracks       atomic.Pointer[[]*track.Track]
	state        atomic.Int32
	position     atomic.Uint64 // float64 bits, seconds
	globalVolume atomic.Uint64 // float64 bits

	history   *track.History
	clipboard track.Clipboard

	mu     sync.Mutex // transport transitions and track-list writes
	handle io.Closer
}

// New creates an engine with no tracks.
func New(opts ...Option) *Engine {
	cfg := config{
		device:    OtoDevice{},
		log:       slog.New(slog.DiscardHandler),
		maxFrames: defaultMaxFrames,
		volume:    1.0,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	e := &Engine{
		log:       cfg.log,
		device:    cfg.device,
		perf:      cfg.perf,
		maxFrames: cfg.maxFrames,
		events:    cfg.events,
		history:   track.NewHistory(),
	}
	empty := make([]*track.Track, 0)
	e.tracks.Store(&empty)
	e.globalVolume.Store(math.Float64bits(cfg.volume))

	return e
}

// Tracks returns a snapshot of the track list.
func (e *Engine) Tracks() []*track.Track {
	return append([]*track.Track(nil), *e.tracks.Load()...)
}

// TrackByID returns the track with the given id, or nil.
func (e *Engine) TrackByID(id string) *track.Track {
	for _, t := range *e.tracks.Load() {
		if t.ID() == id {
			return t
		}
	}
	return nil
}

// AddTrack creates a new empty track, colored from the palette, and appends
// it to the project.
func (e *Engine) AddTrack(name string) *track.Track {
	e.mu.Lock()
	current := *e.tracks.Load()
	t := track.New(name, track.ColorForIndex(len(current)))
	next := append(append([]*track.Track(nil), current...), t)
	e.tracks.Store(&next)
	e.mu.Unlock()

	e.log.Info("track added", "id", t.ID(), "name", t.Name())
	if e.events.TrackAdded != nil {
		e.events.TrackAdded(t)
	}
	return t
}

// RemoveTrack removes the track with the given id. It reports whether a
// track was removed.
func (e *Engine) RemoveTrack(id string) bool {
	e.mu.Lock()
	current := *e.tracks.Load()
	var removed *track.Track
	next := make([]*track.Track, 0, len(current))
	for _, t := range current {
		if t.ID() == id && removed == nil {
			removed = t
			continue
		}
		next = append(next, t)
	}
	if removed != nil {
		e.tracks.Store(&next)
	}
	e.mu.Unlock()

	if removed == nil {
		return false
	}
	e.log.Info("track removed", "id", id)
	if e.events.TrackRemoved != nil {
		e.events.TrackRemoved(removed)
	}
	return true
}

// Clipboard returns the shared edit clipboard.
func (e *Engine) Clipboard() *track.Clipboard {
	return &e.clipboard
}

// PushHistory records the current project state as an undo point. Call it
// before a mutating edit.
func (e *Engine) PushHistory() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history.Push(*e.tracks.Load())
}

// Undo restores the previous project state. It reports whether anything was
// undone.
func (e *Engine) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	restored, ok := e.history.Undo(*e.tracks.Load())
	if !ok {
		e.log.Info("nothing to undo")
		return false
	}
	e.tracks.Store(&restored)
	return true
}

// Redo reapplies the most recently undone state. It reports whether
// anything was redone.
func (e *Engine) Redo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	restored, ok := e.history.Redo(*e.tracks.Load())
	if !ok {
		e.log.Info("nothing to redo")
		return false
	}
	e.tracks.Store(&restored)
	return true
}

// State returns the current transport state.
func (e *Engine) State() Transport {
	return Transport(e.state.Load())
}

// Position returns the playback position in seconds.
func (e *Engine) Position() float64 {
	return math.Float64frombits(e.position.Load())
}

func (e *Engine) setPosition(sec float64) {
	e.position.Store(math.Float64bits(sec))
}

// GlobalVolume returns the master volume in [0, 1].
func (e *Engine) GlobalVolume() float64 {
	return math.Float64frombits(e.globalVolume.Load())
}

// SetGlobalVolume sets the master volume, clamped to [0, 1].
func (e *Engine) SetGlobalVolume(v float64) {
	if math.IsNaN(v) {
		v = 0
	}
	e.globalVolume.Store(math.Float64bits(core.Clamp(v, 0, 1)))
}

// MaxDuration returns the longest track duration in seconds.
func (e *Engine) MaxDuration() float64 {
	var max float64
	for _, t := range *e.tracks.Load() {
		if d := t.Duration(); d > max {
			max = d
		}
	}
	return max
}

// Play starts playback. From Paused it resumes at the paused position; from
// Stopped it starts at the first track selection's start, or 0. With no
// playable tracks it logs and returns nil.
func (e *Engine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch Transport(e.state.Load()) {
	case Playing:
		e.log.Info("already playing")
		return nil
	case Stopped:
		e.setPosition(e.startPosition())
	case Paused:
		// Resume from the held position.
	}

	return e.startLocked()
}

// PlayFrom starts or restarts playback at pos seconds, clamped to the
// project length.
func (e *Engine) PlayFrom(pos float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopStreamLocked()
	e.setPosition(core.Clamp(pos, 0, e.MaxDuration()))

	return e.startLocked()
}

// Pause pauses playback, keeping the position. Pausing while not playing is
// a logged no-op.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if Transport(e.state.Load()) != Playing {
		e.log.Info("pause ignored", "state", e.State().String())
		return
	}

	e.state.Store(int32(Paused))
	e.stopStreamLocked()
	e.log.Info("playback paused", "position", e.Position())
	if e.events.PlaybackPaused != nil {
		e.events.PlaybackPaused()
	}
}

// Stop stops playback and resets the position to 0. Stopping while stopped
// is a logged no-op.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

func (e *Engine) stopLocked() {
	if Transport(e.state.Load()) == Stopped {
		e.log.Info("stop ignored, already stopped")
		return
	}

	e.state.Store(int32(Stopped))
	e.stopStreamLocked()
	e.setPosition(0)
	e.log.Info("playback stopped")
	if e.events.PlaybackStopped != nil {
		e.events.PlaybackStopped()
	}
}

// Rewind resets the position to 0 and, if playing, restarts playback from
// the top.
func (e *Engine) Rewind() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	wasPlaying := Transport(e.state.Load()) == Playing
	e.stopStreamLocked()
	e.setPosition(0)

	if !wasPlaying {
		if Transport(e.state.Load()) == Paused {
			e.state.Store(int32(Stopped))
		}
		return nil
	}
	return e.startLocked()
}

// startPosition is the first selection start across tracks, or 0.
func (e *Engine) startPosition() float64 {
	for _, t := range *e.tracks.Load() {
		if sel, ok := t.Selection(); ok {
			lo, _ := sel.Bounds()
			return math.Max(lo, 0)
		}
	}
	return 0
}

// startLocked opens a mix stream at the current position and hands it to
// the device. Caller holds e.mu.
func (e *Engine) startLocked() error {
	rate := e.targetRate()
	if rate == 0 {
		e.log.Info("play ignored, no playable tracks")
		return nil
	}

	stream := newMixStream(e, rate)
	handle, err := e.device.Start(rate, stream)
	if err != nil {
		return fmt.Errorf("engine: start playback: %w", err)
	}

	e.handle = handle
	e.state.Store(int32(Playing))
	e.log.Info("playback started", "rate", rate, "position", e.Position())
	if e.events.PlaybackStarted != nil {
		e.events.PlaybackStarted()
	}
	return nil
}

func (e *Engine) stopStreamLocked() {
	if e.handle != nil {
		if err := e.handle.Close(); err != nil {
			e.log.Warn("closing device handle", "err", err)
		}
		e.handle = nil
	}
}

// targetRate is the highest native rate among tracks that would contribute
// to the mix right now; 0 when none would.
func (e *Engine) targetRate() int {
	rate := 0
	for _, t := range activeSet(*e.tracks.Load()) {
		if sr := t.SampleRate(); sr > rate {
			rate = sr
		}
	}
	return rate
}

// activeSet filters to playable, unmuted tracks, restricted to the soloed
// subset when any of them is soloed.
func activeSet(tracks []*track.Track) []*track.Track {
	active := make([]*track.Track, 0, len(tracks))
	anySolo := false
	for _, t := range tracks {
		if !t.Playable() || t.Muted() {
			continue
		}
		if t.Soloed() {
			anySolo = true
		}
		active = append(active, t)
	}
	if !anySolo {
		return active
	}

	soloed := active[:0]
	for _, t := range active {
		if t.Soloed() {
			soloed = append(soloed, t)
		}
	}
	return soloed
}
