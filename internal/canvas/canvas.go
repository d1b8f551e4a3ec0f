package canvas

import (
	"errors"
	"fmt"

	"rico-32/internal/palette"
)

// ErrOutOfBounds is returned by accessors that are asked for a cell outside the grid.
var ErrOutOfBounds = errors.New("out of bounds")

// Canvas is a fixed-size grid of palette colors, row-major with the origin top-left.
type Canvas struct {
	width, height int
	cells         []palette.Color
}

// New creates a width x height canvas with every cell set to fill.
func New(width, height int, fill palette.Color) *Canvas {
	c := &Canvas{
		width:  width,
		height: height,
		cells:  make([]palette.Color, width*height),
	}
	if fill != palette.Blank {
		c.Fill(fill)
	}
	return c
}

// Width returns the number of columns.
func (c *Canvas) Width() int { return c.width }

// Height returns the number of rows.
func (c *Canvas) Height() int { return c.height }

// InBounds reports whether (row, col) addresses a cell.
func (c *Canvas) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < c.height && col < c.width
}

// SetPixel paints a single cell. Blank never overwrites and out-of-bounds
// writes are ignored; every drawing primitive goes through here.
func (c *Canvas) SetPixel(row, col int, color palette.Color) {
	if color == palette.Blank {
		return
	}
	if !c.InBounds(row, col) {
		return
	}
	c.cells[row*c.width+col] = color
}

// Put overwrites a cell, including with Blank. Out-of-bounds writes are ignored.
func (c *Canvas) Put(row, col int, color palette.Color) {
	if !c.InBounds(row, col) {
		return
	}
	c.cells[row*c.width+col] = color
}

// Get returns the color at (row, col), or Blank outside the grid.
func (c *Canvas) Get(row, col int) palette.Color {
	if !c.InBounds(row, col) {
		return palette.Blank
	}
	return c.cells[row*c.width+col]
}

// At returns the color at (row, col) or ErrOutOfBounds.
func (c *Canvas) At(row, col int) (palette.Color, error) {
	if !c.InBounds(row, col) {
		return palette.Blank, fmt.Errorf("pixel (%d, %d) on %dx%d canvas: %w", col, row, c.width, c.height, ErrOutOfBounds)
	}
	return c.cells[row*c.width+col], nil
}

// Fill overwrites every cell, including with Blank.
func (c *Canvas) Fill(color palette.Color) {
	for i := range c.cells {
		c.cells[i] = color
	}
}

// Row returns the backing slice for one row. Callers must not retain it.
func (c *Canvas) Row(row int) []palette.Color {
	return c.cells[row*c.width : (row+1)*c.width]
}

// Clone returns a deep copy.
func (c *Canvas) Clone() *Canvas {
	out := &Canvas{width: c.width, height: c.height, cells: make([]palette.Color, len(c.cells))}
	copy(out.cells, c.cells)
	return out
}

// Equal reports whether both canvases have the same size and cells.
func (c *Canvas) Equal(o *Canvas) bool {
	if c.width != o.width || c.height != o.height {
		return false
	}
	for i := range c.cells {
		if c.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Bytes returns the palette index of every cell in row-major order.
func (c *Canvas) Bytes() []byte {
	out := make([]byte, len(c.cells))
	for i, v := range c.cells {
		out[i] = byte(v)
	}
	return out
}
