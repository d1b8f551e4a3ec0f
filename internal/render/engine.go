// Package render presents composed console frames on ANSI terminals and
// converts sprite sheets to and from PNG images.
package render

import (
	"strings"

	"rico-32/internal/compose"
)

// Cell represents a single terminal cell with full RGB color.
type Cell struct {
	Ch            rune
	FgR, FgG, FgB uint8
	BgR, BgG, BgB uint8
}

var sentinel = Cell{Ch: '\x00', FgR: 255, BgB: 255}

// Backdrop is shown where a frame pixel is transparent.
var Backdrop = [3]uint8{0, 0, 0}

// Engine is a per-session double-buffer diff renderer. Each terminal cell
// shows two vertically stacked frame pixels.
type Engine struct {
	width, height int
	current       [][]Cell
	next          [][]Cell
	firstFrame    bool
}

// NewEngine creates a renderer for the given terminal dimensions.
func NewEngine(width, height int) *Engine {
	e := &Engine{}
	e.Resize(width, height)
	return e
}

// Resize adjusts the renderer for a new terminal size. The next frame is
// drawn in full.
func (e *Engine) Resize(width, height int) {
	e.width = width
	e.height = height
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	e.firstFrame = true
}

// Size returns the terminal dimensions in cells.
func (e *Engine) Size() (width, height int) {
	return e.width, e.height
}

// Invalidate forces a full redraw on the next frame.
func (e *Engine) Invalidate() {
	e.firstFrame = true
}

func (e *Engine) makeBuffer(fill Cell) [][]Cell {
	buf := make([][]Cell, e.height)
	for y := 0; y < e.height; y++ {
		buf[y] = make([]Cell, e.width)
		for x := 0; x < e.width; x++ {
			buf[y][x] = fill
		}
	}
	return buf
}

// CellFor maps terminal cell (col, row) to its top pixel. The bottom pixel
// is one row below. Mouse reports are translated the same way.
func CellFor(col, row int) (x, y int) {
	return col, row * 2
}

func pixel(f *compose.Frame, x, y int) (r, g, b uint8) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return Backdrop[0], Backdrop[1], Backdrop[2]
	}
	r, g, b, a := f.At(x, y)
	if a == 0 {
		return Backdrop[0], Backdrop[1], Backdrop[2]
	}
	return r, g, b
}

func cellAt(f *compose.Frame, col, row int) Cell {
	x, y := CellFor(col, row)
	c := Cell{Ch: HalfBlock}
	c.FgR, c.FgG, c.FgB = pixel(f, x, y)
	c.BgR, c.BgG, c.BgB = pixel(f, x, y+1)
	return c
}

// Render produces the ANSI byte output for f, emitting only the cells that
// changed since the previous call. Frame pixels past the terminal edge are
// clipped.
func (e *Engine) Render(f *compose.Frame) string {
	for row := 0; row < e.height; row++ {
		for col := 0; col < e.width; col++ {
			e.next[row][col] = cellAt(f, col, row)
		}
	}

	// Diff current vs next, emit only changed cells
	var sb strings.Builder
	sb.Grow(16384)

	lastRow, lastCol := -1, -1
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			nc := e.next[y][x]
			if e.firstFrame || nc != e.current[y][x] {
				// Only emit cursor position if not consecutive
				if y != lastRow || x != lastCol {
					sb.WriteString(MoveTo(y+1, x+1))
				}
				WriteCellSGR(&sb, nc)
				lastRow = y
				lastCol = x + 1
			}
		}
	}

	if sb.Len() > 0 {
		sb.WriteString(Reset)
	}

	// Swap buffers
	e.current, e.next = e.next, e.current
	e.firstFrame = false

	return sb.String()
}

// Dump renders the whole frame as plain lines of half-block cells, for
// printing to a terminal that is not under session control.
func Dump(f *compose.Frame) string {
	var sb strings.Builder
	for row := 0; row < (f.Height+1)/2; row++ {
		for col := 0; col < f.Width; col++ {
			WriteCellSGR(&sb, cellAt(f, col, row))
		}
		sb.WriteString(Reset)
		sb.WriteByte('\n')
	}
	return sb.String()
}
