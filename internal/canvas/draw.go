package canvas

import "rico-32/internal/palette"

// FillRect paints a w x h block with its top-left corner at (x, y).
func (c *Canvas) FillRect(x, y, w, h int, color palette.Color) {
	for j := x; j < x+w; j++ {
		for i := y; i < y+h; i++ {
			c.SetPixel(i, j, color)
		}
	}
}

// Rect draws an outline whose edges sit on columns x and x+w and rows y and y+h.
func (c *Canvas) Rect(x, y, w, h int, color palette.Color) {
	for i := x; i < x+w; i++ {
		c.SetPixel(y, i, color)
		c.SetPixel(y+h, i, color)
	}
	for i := y; i < y+h; i++ {
		c.SetPixel(i, x, color)
		c.SetPixel(i, x+w, color)
	}
	c.SetPixel(y+h, x+w, color)
}

// Circle paints every cell within r of (cx, cy).
func (c *Canvas) Circle(cx, cy, r int, color palette.Color) {
	r2 := r * r
	for x := cx - r; x <= cx+r; x++ {
		for y := cy - r; y <= cy+r; y++ {
			dx := x - cx
			dy := y - cy
			if dx*dx+dy*dy <= r2 {
				c.SetPixel(y, x, color)
			}
		}
	}
}

// Clear paints every cell. Clearing to Blank is a no-op like any other Blank write.
func (c *Canvas) Clear(color palette.Color) {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			c.SetPixel(y, x, color)
		}
	}
}

// Blit overlays src with its top-left corner at (x, y). Blank source cells are transparent.
func (c *Canvas) Blit(x, y int, src *Canvas) {
	for j := 0; j < src.height; j++ {
		for i := 0; i < src.width; i++ {
			c.SetPixel(y+j, x+i, src.cells[j*src.width+i])
		}
	}
}

// BlitGrid overlays a literal color grid, used for built-in icons.
func (c *Canvas) BlitGrid(x, y int, grid [][]palette.Color) {
	for j, row := range grid {
		for i, col := range row {
			c.SetPixel(y+j, x+i, col)
		}
	}
}
