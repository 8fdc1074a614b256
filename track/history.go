package track

import (
	"github.com/metromuse/audiocore/dsp/buffer"
)

// Snapshot is a deep copy of one track's state, including audio.
type Snapshot struct {
	ID        string
	Name      string
	Color     string
	Path      string
	Muted     bool
	Soloed    bool
	Volume    float64
	Buffer    *buffer.Buffer
	Selection *Selection
}

// TakeSnapshot captures the track's full state. The buffer is cloned so
// later edits cannot reach into the snapshot.
func (t *Track) TakeSnapshot() Snapshot {
	s := Snapshot{
		ID:     t.id,
		Name:   t.Name(),
		Color:  t.Color(),
		Path:   t.Path(),
		Muted:  t.Muted(),
		Soloed: t.Soloed(),
		Volume: t.Volume(),
	}
	if buf := t.buf.Load(); buf != nil {
		s.Buffer = buf.Clone()
	}
	if sel, ok := t.Selection(); ok {
		s.Selection = &sel
	}
	return s
}

// FromSnapshot materializes a track from a snapshot, preserving its ID.
func FromSnapshot(s Snapshot) *Track {
	t := New(s.Name, s.Color)
	t.id = s.ID
	t.path = s.Path
	t.SetMuted(s.Muted)
	t.SetSoloed(s.Soloed)
	t.SetVolume(s.Volume)
	if s.Buffer != nil {
		t.buf.Store(s.Buffer.Clone())
	}
	if s.Selection != nil {
		t.SetSelection(s.Selection.Start, s.Selection.End)
	}
	return t
}

// History is a two-stack undo/redo over whole-project track state. Each
// entry is a deep snapshot of every track; memory cost is accepted for
// exact, dependency-free restores.
type History struct {
	undo [][]Snapshot
	redo [][]Snapshot
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

func snapshotAll(tracks []*Track) []Snapshot {
	snaps := make([]Snapshot, len(tracks))
	for i, t := range tracks {
		snaps[i] = t.TakeSnapshot()
	}
	return snaps
}

func materialize(snaps []Snapshot) []*Track {
	tracks := make([]*Track, len(snaps))
	for i, s := range snaps {
		tracks[i] = FromSnapshot(s)
	}
	return tracks
}

// Push records the given state as the new undo point and clears the redo
// stack. Call it before every mutating edit.
func (h *History) Push(tracks []*Track) {
	h.undo = append(h.undo, snapshotAll(tracks))
	h.redo = h.redo[:0]
}

// Undo swaps current for the most recent undo snapshot. It returns the
// restored tracks and true, or nil and false when there is nothing to undo.
func (h *History) Undo(current []*Track) ([]*Track, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}

	last := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, snapshotAll(current))

	return materialize(last), true
}

// Redo swaps current for the most recent redo snapshot. It returns the
// restored tracks and true, or nil and false when there is nothing to redo.
func (h *History) Redo(current []*Track) ([]*Track, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}

	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, snapshotAll(current))

	return materialize(next), true
}

// CanUndo reports whether an undo snapshot is available.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether a redo snapshot is available.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
