package history

import "rico-32/internal/palette"

// Change records a cell's color before the frame that modified it.
type Change struct {
	Row, Col int
	Prior    palette.Color
}

// Entry is one frame's batch of changes.
type Entry []Change

// Grid is the surface undo and redo are replayed against.
type Grid interface {
	Get(row, col int) palette.Color
	Put(row, col int, c palette.Color)
}

type cell struct{ row, col int }

// History is a linear undo/redo log batched per frame.
type History struct {
	pending Entry
	seen    map[cell]struct{}
	undo    []Entry
	redo    []Entry
}

// New returns an empty history.
func New() *History {
	return &History{seen: make(map[cell]struct{})}
}

// Record notes the prior color of a cell about to be written. Only the first
// write to a cell within a frame is kept.
func (h *History) Record(row, col int, prior palette.Color) {
	k := cell{row, col}
	if _, ok := h.seen[k]; ok {
		return
	}
	h.seen[k] = struct{}{}
	h.pending = append(h.pending, Change{Row: row, Col: col, Prior: prior})
}

// Dirty reports whether the current frame has recorded changes.
func (h *History) Dirty() bool {
	return len(h.pending) > 0
}

// Commit closes the frame. A non-empty batch becomes one undo entry and
// clears the redo stack. It reports whether an entry was pushed.
func (h *History) Commit() bool {
	if len(h.pending) == 0 {
		return false
	}
	h.undo = append(h.undo, h.pending)
	h.redo = h.redo[:0]
	h.pending = nil
	clear(h.seen)
	return true
}

// Discard drops the current frame's pending changes without pushing them.
func (h *History) Discard() {
	h.pending = nil
	clear(h.seen)
}

// Undo replays the newest undo entry onto g and moves its inverse to the redo
// stack. It reports whether anything was undone.
func (h *History) Undo(g Grid) bool {
	e, ok := pop(&h.undo)
	if !ok {
		return false
	}
	h.redo = append(h.redo, apply(g, e))
	return true
}

// Redo is Undo in the other direction.
func (h *History) Redo(g Grid) bool {
	e, ok := pop(&h.redo)
	if !ok {
		return false
	}
	h.undo = append(h.undo, apply(g, e))
	return true
}

// UndoLen returns the number of undo entries.
func (h *History) UndoLen() int { return len(h.undo) }

// RedoLen returns the number of redo entries.
func (h *History) RedoLen() int { return len(h.redo) }

// Reset drops all entries, used when the edited surface changes identity.
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
	h.Discard()
}

func pop(stack *[]Entry) (Entry, bool) {
	s := *stack
	if len(s) == 0 {
		return nil, false
	}
	e := s[len(s)-1]
	*stack = s[:len(s)-1]
	return e, true
}

// apply writes e's priors to g and returns the inverse entry.
func apply(g Grid, e Entry) Entry {
	inverse := make(Entry, 0, len(e))
	for _, ch := range e {
		inverse = append(inverse, Change{Row: ch.Row, Col: ch.Col, Prior: g.Get(ch.Row, ch.Col)})
		g.Put(ch.Row, ch.Col, ch.Prior)
	}
	return inverse
}
