package track

import (
	"errors"
	"fmt"

	"github.com/metromuse/audiocore/dsp/buffer"
	"github.com/metromuse/audiocore/dsp/core"
)

// Edit failures are benign: the command reports status and leaves the track
// unchanged. Callers surface them to the user instead of aborting.
var (
	// ErrNoAudio indicates the track has no audio loaded.
	ErrNoAudio = errors.New("track: no audio loaded")
	// ErrNoSelection indicates there is no usable selection for the command.
	ErrNoSelection = errors.New("track: no valid selection")
	// ErrClipboardEmpty indicates a paste with nothing on the clipboard.
	ErrClipboardEmpty = errors.New("track: clipboard is empty")
	// ErrClipboardRate indicates the clipboard audio has a different rate.
	ErrClipboardRate = errors.New("track: clipboard sample rate differs")
	// ErrGainRange indicates a gain outside the allowed -20..+20 dB.
	ErrGainRange = errors.New("track: gain out of range [-20, 20] dB")
)

const maxGainDB = 20.0

// Clipboard holds audio copied from a track. One clipboard is shared across
// tracks; paste requires matching sample rates.
type Clipboard struct {
	buf *buffer.Buffer
}

// Empty reports whether the clipboard holds audio.
func (c *Clipboard) Empty() bool { return c == nil || c.buf == nil }

// Buffer returns the held audio, or nil.
func (c *Clipboard) Buffer() *buffer.Buffer {
	if c == nil {
		return nil
	}
	return c.buf
}

// selectionIndices converts the selection to clamped frame indices. ok is
// false when there is no audio, no selection, or the range is empty.
func (t *Track) selectionIndices() (start, end int, ok bool) {
	buf := t.buf.Load()
	if buf == nil {
		return 0, 0, false
	}
	sel, has := t.Selection()
	if !has {
		return 0, 0, false
	}

	lo, hi := sel.Bounds()
	if lo == hi {
		return 0, 0, false
	}

	sr := float64(buf.SampleRate())
	start = int(sr * lo)
	end = int(sr * hi)
	if end > buf.Frames() {
		end = buf.Frames()
	}
	if start < 0 {
		start = 0
	}
	if start >= end {
		return 0, 0, false
	}

	return start, end, true
}

// Copy places the selected audio on the clipboard.
func (t *Track) Copy(clip *Clipboard) error {
	buf := t.buf.Load()
	if buf == nil {
		return ErrNoAudio
	}
	start, end, ok := t.selectionIndices()
	if !ok {
		return ErrNoSelection
	}

	clip.buf = buf.Slice(start, end)
	return nil
}

// Cut copies the selected audio to the clipboard and removes it from the
// track. The selection is cleared afterwards.
func (t *Track) Cut(clip *Clipboard) error {
	buf := t.buf.Load()
	if buf == nil {
		return ErrNoAudio
	}
	start, end, ok := t.selectionIndices()
	if !ok {
		return ErrNoSelection
	}

	clip.buf = buf.Slice(start, end)
	t.setBuffer(buf.CutRange(start, end))
	t.ClearSelection()
	return nil
}

// Paste inserts the clipboard audio at the selection start, or at the
// beginning when nothing is selected.
func (t *Track) Paste(clip *Clipboard) error {
	buf := t.buf.Load()
	if buf == nil {
		return ErrNoAudio
	}
	if clip.Empty() {
		return ErrClipboardEmpty
	}
	if clip.buf.SampleRate() != buf.SampleRate() {
		return fmt.Errorf("%w: %d vs %d", ErrClipboardRate, clip.buf.SampleRate(), buf.SampleRate())
	}

	insertAt := 0
	if start, _, ok := t.selectionIndices(); ok {
		insertAt = start
	}

	next, err := buf.InsertAt(insertAt, clip.buf)
	if err != nil {
		return err
	}
	t.setBuffer(next)
	return nil
}

// Trim keeps only the selected audio and clears the selection.
func (t *Track) Trim() error {
	buf := t.buf.Load()
	if buf == nil {
		return ErrNoAudio
	}
	start, end, ok := t.selectionIndices()
	if !ok {
		return ErrNoSelection
	}

	t.setBuffer(buf.KeepRange(start, end))
	t.ClearSelection()
	return nil
}

// Gain scales the selected audio by db decibels, range -20..+20.
func (t *Track) Gain(db float64) error {
	if !core.ValidParam(db) || db < -maxGainDB || db > maxGainDB {
		return fmt.Errorf("%w: %g", ErrGainRange, db)
	}
	buf := t.buf.Load()
	if buf == nil {
		return ErrNoAudio
	}
	start, end, ok := t.selectionIndices()
	if !ok {
		return ErrNoSelection
	}

	t.setBuffer(buf.ScaleRange(start, end, core.DBToLinear(db)))
	return nil
}

// FadeIn applies a linear 0 to 1 ramp across the selection.
func (t *Track) FadeIn() error {
	return t.fade(0, 1)
}

// FadeOut applies a linear 1 to 0 ramp across the selection.
func (t *Track) FadeOut() error {
	return t.fade(1, 0)
}

func (t *Track) fade(from, to float64) error {
	buf := t.buf.Load()
	if buf == nil {
		return ErrNoAudio
	}
	start, end, ok := t.selectionIndices()
	if !ok {
		return ErrNoSelection
	}

	t.setBuffer(buf.RampRange(start, end, from, to))
	return nil
}
