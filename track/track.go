// Package track models a single audio track: identity, appearance, mix
// controls, audio data, selection state, the edit commands of the editor and
// snapshot-based undo history.
//
// Mute, solo, volume and the buffer pointer are read by the real-time mix
// path while the editing side writes them, so they are atomics. Buffers are
// replaced wholesale by pointer swap; a published buffer is never mutated.
package track

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/metromuse/audiocore/dsp/buffer"
	"github.com/metromuse/audiocore/dsp/core"
)

// DefaultName is assigned to tracks created without a name.
const DefaultName = "New Track"

// Colors is the default track color palette, assigned round-robin as tracks
// are added.
var Colors = []string{
	"#47cbff", // sky blue
	"#ff6b6b", // coral red
	"#5ad95a", // green
	"#ffc14d", // orange
	"#af8cff", // purple
	"#ff9cee", // pink
	"#4deeea", // cyan
	"#ffec59", // yellow
	"#ffa64d", // amber
	"#9cff9c", // light green
}

// ColorForIndex returns the palette color for the i-th track.
func ColorForIndex(i int) string {
	if i < 0 {
		i = -i
	}
	return Colors[i%len(Colors)]
}

// Selection is a time range in seconds. Start and End are unordered; use
// Bounds for the normalized pair.
type Selection struct {
	Start, End float64
}

// Bounds returns the selection ordered low to high.
func (s Selection) Bounds() (float64, float64) {
	if s.Start > s.End {
		return s.End, s.Start
	}
	return s.Start, s.End
}

// Track is one audio track. The zero value is not usable; construct with New.
type Track struct {
	id string

	mu    sync.Mutex
	name  string
	color string
	path  string

	muted     atomic.Bool
	soloed    atomic.Bool
	volume    atomic.Uint64 // float64 bits
	buf       atomic.Pointer[buffer.Buffer]
	selection atomic.Pointer[Selection]
}

// New creates an empty track with the given name and color. An empty name
// falls back to DefaultName, an empty color to the first palette entry.
func New(name, color string) *Track {
	if name == "" {
		name = DefaultName
	}
	if color == "" {
		color = Colors[0]
	}

	t := &Track{
		id:    uuid.NewString(),
		name:  name,
		color: color,
	}
	t.volume.Store(math.Float64bits(1.0))

	return t
}

// ID returns the track's stable identifier.
func (t *Track) ID() string { return t.id }

// Name returns the track name.
func (t *Track) Name() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.name
}

// SetName renames the track.
func (t *Track) SetName(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.name = name
}

// Color returns the track color as a hex string.
func (t *Track) Color() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.color
}

// SetColor sets the track color.
func (t *Track) SetColor(color string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.color = color
}

// Path returns the source file path, if the audio came from a file.
func (t *Track) Path() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.path
}

// Muted reports whether the track is muted.
func (t *Track) Muted() bool { return t.muted.Load() }

// SetMuted mutes or unmutes the track.
func (t *Track) SetMuted(v bool) { t.muted.Store(v) }

// Soloed reports whether the track is soloed.
func (t *Track) Soloed() bool { return t.soloed.Load() }

// SetSoloed solos or unsolos the track.
func (t *Track) SetSoloed(v bool) { t.soloed.Store(v) }

// Volume returns the track volume in [0, 1].
func (t *Track) Volume() float64 {
	return math.Float64frombits(t.volume.Load())
}

// SetVolume sets the track volume, clamped to [0, 1]. NaN is treated as 0.
func (t *Track) SetVolume(v float64) {
	if math.IsNaN(v) {
		v = 0
	}
	t.volume.Store(math.Float64bits(core.Clamp(v, 0, 1)))
}

// Buffer returns the current audio buffer, or nil when no audio is loaded.
func (t *Track) Buffer() *buffer.Buffer {
	return t.buf.Load()
}

// SetAudioData publishes buf as the track's audio and records its source
// path. A nil buf clears the track.
func (t *Track) SetAudioData(buf *buffer.Buffer, path string) {
	t.mu.Lock()
	t.path = path
	t.mu.Unlock()
	t.buf.Store(buf)
}

// setBuffer swaps in an edited buffer without touching the path.
func (t *Track) setBuffer(buf *buffer.Buffer) {
	t.buf.Store(buf)
}

// Playable reports whether the track has audio to contribute to a mix.
func (t *Track) Playable() bool {
	return t.buf.Load() != nil
}

// Duration returns the track length in seconds, 0 when empty.
func (t *Track) Duration() float64 {
	buf := t.buf.Load()
	if buf == nil {
		return 0
	}
	return buf.Duration()
}

// SampleRate returns the native rate of the loaded audio, 0 when empty.
func (t *Track) SampleRate() int {
	buf := t.buf.Load()
	if buf == nil {
		return 0
	}
	return buf.SampleRate()
}

// Selection returns the current selection, or ok=false when none is set.
func (t *Track) Selection() (Selection, bool) {
	sel := t.selection.Load()
	if sel == nil {
		return Selection{}, false
	}
	return *sel, true
}

// SetSelection sets the selection range in seconds.
func (t *Track) SetSelection(start, end float64) {
	t.selection.Store(&Selection{Start: start, End: end})
}

// ClearSelection removes the selection.
func (t *Track) ClearSelection() {
	t.selection.Store(nil)
}

// MixWindow returns a copy of the audio window [startSec, startSec+durSec)
// scaled by the track volume, at the track's native rate. A durSec <= 0
// extends to the end. It returns nil when the track is muted or has no
// audio, matching the mix path's notion of an inactive track.
func (t *Track) MixWindow(startSec, durSec float64) *buffer.Buffer {
	if t.Muted() {
		return nil
	}
	buf := t.buf.Load()
	if buf == nil {
		return nil
	}

	sr := float64(buf.SampleRate())
	start := int(startSec * sr)
	end := buf.Frames()
	if durSec > 0 {
		if e := start + int(durSec*sr); e < end {
			end = e
		}
	}

	win := buf.Slice(start, end)
	return win.ScaleRange(0, win.Frames(), t.Volume())
}
