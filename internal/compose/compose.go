package compose

import (
	"runtime"
	"sync"

	"rico-32/internal/canvas"
)

// Frame is an RGBA byte buffer, 4 bytes per pixel, row-major.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

// NewFrame allocates a zeroed (fully transparent) frame.
func NewFrame(width, height int) *Frame {
	return &Frame{Width: width, Height: height, Pix: make([]byte, width*height*4)}
}

// Draw composites c into the frame. See Compose.
func (f *Frame) Draw(c *canvas.Canvas, scale, offX, offY int) {
	Compose(f.Pix, f.Width, c, scale, offX, offY)
}

// At returns the RGBA quadruple at (x, y).
func (f *Frame) At(x, y int) (r, g, b, a uint8) {
	i := (y*f.Width + x) * 4
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2], f.Pix[i+3]
}

// Compose writes every cell of c as a scale x scale block of its palette RGBA
// into dst, a buffer stride pixels wide, with the canvas origin at
// (offX, offY). Blank cells are written with alpha 0. Blocks falling outside
// dst are clipped.
func Compose(dst []byte, stride int, c *canvas.Canvas, scale, offX, offY int) {
	composeRows(dst, stride, c, scale, offX, offY, 0, c.Height())
}

// ComposeParallel is Compose with source rows split across workers. Each
// worker owns a disjoint band of destination rows. workers <= 0 uses GOMAXPROCS.
func ComposeParallel(dst []byte, stride int, c *canvas.Canvas, scale, offX, offY, workers int) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	rows := c.Height()
	if workers > rows {
		workers = rows
	}
	if workers <= 1 {
		Compose(dst, stride, c, scale, offX, offY)
		return
	}

	band := (rows + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < rows; start += band {
		end := min(start+band, rows)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			composeRows(dst, stride, c, scale, offX, offY, start, end)
		}(start, end)
	}
	wg.Wait()
}

func composeRows(dst []byte, stride int, c *canvas.Canvas, scale, offX, offY, rowStart, rowEnd int) {
	if scale <= 0 || stride <= 0 {
		return
	}
	height := len(dst) / (stride * 4)

	// Visible destination column span for this canvas.
	x0 := max(offX, 0)
	x1 := min(offX+c.Width()*scale, stride)
	if x0 >= x1 {
		return
	}

	for r := rowStart; r < rowEnd; r++ {
		y := offY + r*scale
		if y+scale <= 0 || y >= height {
			continue
		}

		// Expand the source row into the first visible destination row of
		// the block, then replicate it downwards.
		first := max(y, 0)
		base := first*stride*4 + x0*4
		row := c.Row(r)
		for x := x0; x < x1; x++ {
			cr, cg, cb, ca := row[(x-offX)/scale].RGBA()
			i := base + (x-x0)*4
			dst[i] = cr
			dst[i+1] = cg
			dst[i+2] = cb
			dst[i+3] = ca
		}
		span := dst[base : base+(x1-x0)*4]
		for yy := first + 1; yy < y+scale && yy < height; yy++ {
			o := yy*stride*4 + x0*4
			copy(dst[o:o+len(span)], span)
		}
	}
}
