package editor

import (
	"rico-32/internal/canvas"
	"rico-32/internal/input"
	"rico-32/internal/palette"
)

// Rect is an inclusive, normalized cell rectangle in sprite coordinates.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// span returns the normalized box between two cells.
func span(ax, ay, bx, by int) Rect {
	return Rect{X1: min(ax, bx), Y1: min(ay, by), X2: max(ax, bx), Y2: max(ay, by)}
}

// W returns the width in cells.
func (r Rect) W() int { return r.X2 - r.X1 + 1 }

// H returns the height in cells.
func (r Rect) H() int { return r.Y2 - r.Y1 + 1 }

// Contains reports whether cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X1: r.X1 + dx, Y1: r.Y1 + dy, X2: r.X2 + dx, Y2: r.Y2 + dy}
}

// selection is the Select tool's state. floating, when set, always matches
// rect's size; a move drag and a new-selection drag never coexist.
type selection struct {
	active   bool
	rect     Rect
	floating *canvas.Canvas

	dragging bool
	anchor   [2]int

	moving    bool
	moveFrom  [2]int
	moveStart Rect
}

// Selection returns the current selection rectangle, if any.
func (e *Editor) Selection() (Rect, bool) {
	return e.sel.rect, e.sel.active
}

// Floating returns the lifted content, or nil when nothing is floating.
func (e *Editor) Floating() *canvas.Canvas { return e.sel.floating }

// Clipboard returns the copied content, or nil.
func (e *Editor) Clipboard() *canvas.Canvas { return e.clipboard }

func (e *Editor) updateSelection(in input.Snapshot) {
	p := in.Pointer
	x, y, on := e.grid(p)

	if p.JustPressed && on {
		if e.sel.active && e.sel.rect.Contains(x, y) {
			e.sel.moving = true
			e.sel.moveFrom = [2]int{x, y}
			e.sel.moveStart = e.sel.rect
			if e.sel.floating == nil {
				e.lift()
			}
		} else {
			e.stamp()
			e.sel.active = false
			e.sel.dragging = true
			e.sel.anchor = [2]int{x, y}
		}
	}

	switch {
	case !p.Pressed:
		e.sel.moving = false
		e.sel.dragging = false
	case e.sel.moving:
		e.sel.rect = e.sel.moveStart.Translate(x-e.sel.moveFrom[0], y-e.sel.moveFrom[1])
	case e.sel.dragging:
		e.sel.rect = span(e.sel.anchor[0], e.sel.anchor[1], x, y)
		e.sel.active = true
	}
}

// lift moves the selected cells into the floating buffer. The cleared source
// cells go through the tracked write path so undo restores them.
func (e *Editor) lift() {
	r := e.sel.rect
	e.sel.floating = e.sprite().Crop(r.X1, r.Y1, r.W(), r.H())
	for cy := r.Y1; cy <= r.Y2; cy++ {
		for cx := r.X1; cx <= r.X2; cx++ {
			e.set(cy, cx, palette.Blank)
		}
	}
}

// stamp writes floating content back at the selection's position and clears
// the buffer. The rectangle itself is left alone.
func (e *Editor) stamp() {
	f := e.sel.floating
	if f == nil {
		return
	}
	e.sel.floating = nil
	if !e.sel.active {
		return
	}
	e.paint(e.sel.rect.X1, e.sel.rect.Y1, f)
}

// dropSelection stamps and then forgets the selection and any drag.
func (e *Editor) dropSelection() {
	e.stamp()
	e.sel = selection{}
}

func (e *Editor) drawSelection() {
	if !e.sel.active {
		return
	}
	r := e.sel.rect
	if f := e.sel.floating; f != nil {
		size := e.sheet.Size
		for fr := 0; fr < f.Height(); fr++ {
			for fc := 0; fc < f.Width(); fc++ {
				row, col := r.Y1+fr, r.X1+fc
				if row < 0 || col < 0 || row >= size || col >= size {
					continue
				}
				e.drawCell(row, col, f.Get(fr, fc))
			}
		}
	}
	x := CanvasX + r.X1*e.cell
	y := DrawY + r.Y1*e.cell
	w := r.W() * e.cell
	h := r.H() * e.cell
	e.screen.Rect(x, y, w, h, palette.White)
	e.screen.Rect(x-1, y-1, w+2, h+2, palette.Black)
}

func (e *Editor) handleClipboard(in input.Snapshot) {
	if in.ChordPressed(input.KeyC) {
		e.Copy()
	}
	if in.ChordPressed(input.KeyV) {
		e.Paste()
	}
}

// Copy captures the floating content, or else the selected cells. It never
// modifies the sprite.
func (e *Editor) Copy() {
	switch {
	case e.sel.floating != nil:
		e.clipboard = e.sel.floating.Clone()
	case e.sel.active:
		r := e.sel.rect
		e.clipboard = e.sprite().Crop(r.X1, r.Y1, r.W(), r.H())
	}
}

// Paste stamps any floating content, then floats a copy of the clipboard at
// the sprite origin. The clipboard is kept for further pastes.
func (e *Editor) Paste() {
	if e.clipboard == nil {
		return
	}
	e.stamp()
	c := e.clipboard.Clone()
	e.sel = selection{
		active:   true,
		rect:     Rect{X1: 0, Y1: 0, X2: c.Width() - 1, Y2: c.Height() - 1},
		floating: c,
	}
}

// fill recolors the 4-connected region of the seed's color starting at (row, col).
func (e *Editor) fill(row, col int, c palette.Color) {
	sp := e.sprite()
	w, h := sp.Width(), sp.Height()
	seed := sp.Get(row, col)
	visited := make([]bool, w*h)
	stack := [][2]int{{row, col}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[p[0]*w+p[1]] {
			continue
		}
		visited[p[0]*w+p[1]] = true
		e.set(p[0], p[1], c)

		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			ny, nx := p[0]+d[0], p[1]+d[1]
			if ny < 0 || nx < 0 || ny >= h || nx >= w || visited[ny*w+nx] {
				continue
			}
			if sp.Get(ny, nx) == seed {
				stack = append(stack, [2]int{ny, nx})
			}
		}
	}
}
