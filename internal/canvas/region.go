package canvas

import "rico-32/internal/palette"

// Crop copies the w x h region at (x, y). Cells outside c read as Blank.
func (c *Canvas) Crop(x, y, w, h int) *Canvas {
	out := New(w, h, palette.Blank)
	for r := 0; r < h; r++ {
		for col := 0; col < w; col++ {
			out.cells[r*w+col] = c.Get(y+r, x+col)
		}
	}
	return out
}

// FlipH mirrors the canvas left to right in place.
func (c *Canvas) FlipH() {
	for r := 0; r < c.height; r++ {
		row := c.Row(r)
		for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
			row[i], row[j] = row[j], row[i]
		}
	}
}

// FlipV mirrors the canvas top to bottom in place.
func (c *Canvas) FlipV() {
	for i, j := 0, c.height-1; i < j; i, j = i+1, j-1 {
		a, b := c.Row(i), c.Row(j)
		for k := range a {
			a[k], b[k] = b[k], a[k]
		}
	}
}
