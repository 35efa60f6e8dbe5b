package locator

import "slotfinder-backend/internal/models"

// MoveEntry is one applied relocation as seen by the undo history.
type MoveEntry struct {
	ProductID   string
	ProductName string
	From        models.Location
	To          models.Location
}

// History is a bounded linear undo/redo history. Entries before the index
// are applied; entries at and after it have been undone. Pushing after an
// undo truncates the redo tail — branching is not supported. The zero value
// is not usable, construct with NewHistory.
//
// History is not goroutine safe; the Mover serializes access.
type History struct {
	entries []MoveEntry
	index   int
	limit   int
}

func NewHistory(limit int) *History {
	if limit < 1 {
		limit = 1
	}
	return &History{limit: limit}
}

// Push records a newly applied move, discarding any undone tail. When the
// history is full the oldest entry falls off the front.
func (h *History) Push(e MoveEntry) {
	h.entries = append(h.entries[:h.index], e)
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
	h.index = len(h.entries)
}

func (h *History) CanUndo() bool { return h.index > 0 }
func (h *History) CanRedo() bool { return h.index < len(h.entries) }

// PeekUndo returns the move an undo would revert, without moving the index.
func (h *History) PeekUndo() (MoveEntry, bool) {
	if !h.CanUndo() {
		return MoveEntry{}, false
	}
	return h.entries[h.index-1], true
}

// PeekRedo returns the move a redo would re-apply, without moving the index.
func (h *History) PeekRedo() (MoveEntry, bool) {
	if !h.CanRedo() {
		return MoveEntry{}, false
	}
	return h.entries[h.index], true
}

// StepBack commits an undo. Callers peek first, apply the inverse move, and
// only then step, so a failed apply leaves the history untouched.
func (h *History) StepBack() {
	if h.CanUndo() {
		h.index--
	}
}

// StepForward commits a redo.
func (h *History) StepForward() {
	if h.CanRedo() {
		h.index++
	}
}

func (h *History) Len() int { return len(h.entries) }
