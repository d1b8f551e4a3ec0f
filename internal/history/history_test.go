package history

import (
	"testing"

	"rico-32/internal/canvas"
	"rico-32/internal/palette"
)

// paint writes c at (row, col) the way the editor does: record, then put.
func paint(h *History, g *canvas.Canvas, row, col int, c palette.Color) {
	if g.Get(row, col) == c {
		return
	}
	h.Record(row, col, g.Get(row, col))
	g.Put(row, col, c)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	g := canvas.New(4, 4, palette.Blank)
	g.Put(0, 0, palette.Green)
	h := New()

	pre := g.Clone()
	paint(h, g, 0, 0, palette.Red)
	paint(h, g, 0, 0, palette.Blue)
	paint(h, g, 1, 1, palette.Red)
	paint(h, g, 3, 2, palette.Gold)
	post := g.Clone()
	if !h.Commit() {
		t.Fatal("Commit reported no entry")
	}

	if !h.Undo(g) {
		t.Fatal("Undo reported nothing to undo")
	}
	if !g.Equal(pre) {
		t.Error("undo did not restore the pre-frame canvas")
	}
	if !h.Redo(g) {
		t.Fatal("Redo reported nothing to redo")
	}
	if !g.Equal(post) {
		t.Error("redo did not restore the post-frame canvas")
	}
}

func TestFirstWriteWins(t *testing.T) {
	g := canvas.New(2, 2, palette.Black)
	h := New()
	paint(h, g, 0, 0, palette.Red)
	paint(h, g, 0, 0, palette.Blue)
	paint(h, g, 0, 0, palette.Green)
	h.Commit()
	if h.undo[0][0].Prior != palette.Black || len(h.undo[0]) != 1 {
		t.Errorf("entry = %+v, want one change with prior BLACK", h.undo[0])
	}
}

func TestCommitClearsRedo(t *testing.T) {
	g := canvas.New(2, 2, palette.Black)
	h := New()
	paint(h, g, 0, 0, palette.Red)
	h.Commit()
	h.Undo(g)
	if h.RedoLen() != 1 {
		t.Fatalf("redo len = %d, want 1", h.RedoLen())
	}

	// A frame with no edits keeps redo available.
	if h.Commit() {
		t.Error("empty frame pushed an entry")
	}
	if h.RedoLen() != 1 {
		t.Error("empty frame cleared redo")
	}

	paint(h, g, 1, 1, palette.Blue)
	h.Commit()
	if h.RedoLen() != 0 {
		t.Error("new edit did not clear redo")
	}
}

func TestMultipleFrames(t *testing.T) {
	g := canvas.New(3, 1, palette.Blank)
	h := New()
	var snaps []*canvas.Canvas
	for i, c := range []palette.Color{palette.Red, palette.Green, palette.Blue} {
		snaps = append(snaps, g.Clone())
		paint(h, g, 0, i, c)
		h.Commit()
	}
	for i := 2; i >= 0; i-- {
		h.Undo(g)
		if !g.Equal(snaps[i]) {
			t.Errorf("after undo %d canvas mismatch", 3-i)
		}
	}
	if h.Undo(g) {
		t.Error("undo on empty stack reported success")
	}
}

func TestRepeatGate(t *testing.T) {
	r := &Repeat{Delay: 5, Every: 2}
	var fired []int
	for frame := 0; frame < 12; frame++ {
		if r.Step(true) {
			fired = append(fired, frame)
		}
	}
	want := []int{0, 6, 8, 10}
	if len(fired) != len(want) {
		t.Fatalf("fired on %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Fatalf("fired on %v, want %v", fired, want)
		}
	}

	// Release resets the gate.
	r.Step(false)
	if !r.Step(true) {
		t.Error("gate did not fire on the first frame after release")
	}
	if r.Step(true) {
		t.Error("gate fired during the initial delay")
	}
}

func TestRepeatReset(t *testing.T) {
	r := &Repeat{Delay: 5, Every: 1}
	if !r.Step(true) {
		t.Fatal("first held frame did not fire")
	}
	if r.Step(true) {
		t.Fatal("second held frame fired inside the delay")
	}
	r.Reset()
	if !r.Step(true) {
		t.Error("held frame after Reset did not fire")
	}
}
