package compose

import (
	"bytes"
	"testing"

	"rico-32/internal/canvas"
	"rico-32/internal/palette"
)

func TestSinglePixelBlock(t *testing.T) {
	for _, scale := range []int{1, 2, 3, 4} {
		c := canvas.New(4, 4, palette.Blank)
		c.Put(1, 2, palette.Red)

		const offX, offY = 5, 3
		f := NewFrame(32, 32)
		f.Draw(c, scale, offX, offY)

		rr, rg, rb, ra := palette.Red.RGBA()
		for y := 0; y < f.Height; y++ {
			for x := 0; x < f.Width; x++ {
				r, g, b, a := f.At(x, y)
				inBlock := x >= offX+2*scale && x < offX+3*scale && y >= offY+1*scale && y < offY+2*scale
				if inBlock {
					if r != rr || g != rg || b != rb || a != ra {
						t.Fatalf("scale %d: (%d,%d) = %d,%d,%d,%d, want red", scale, x, y, r, g, b, a)
					}
				} else if a != 0 {
					t.Fatalf("scale %d: (%d,%d) touched outside the red block", scale, x, y)
				}
			}
		}
	}
}

func TestDisjointRegions(t *testing.T) {
	top := canvas.New(4, 2, palette.Gray)
	bottom := canvas.New(4, 4, palette.Blue)
	f := NewFrame(8, 12)
	f.Draw(top, 2, 0, 0)
	f.Draw(bottom, 2, 0, 4)

	gr, _, _, _ := palette.Gray.RGBA()
	_, _, bb, _ := palette.Blue.RGBA()
	for y := 0; y < 12; y++ {
		r, _, b, a := f.At(3, y)
		if a != 255 {
			t.Fatalf("row %d not covered", y)
		}
		if y < 4 && r != gr {
			t.Errorf("row %d: expected gray", y)
		}
		if y >= 4 && b != bb {
			t.Errorf("row %d: expected blue", y)
		}
	}
}

func TestClipping(t *testing.T) {
	c := canvas.New(4, 4, palette.White)
	f := NewFrame(4, 4)
	f.Draw(c, 2, -2, -2)
	f.Draw(c, 2, 3, 3)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if _, _, _, a := f.At(x, y); a != 255 {
				t.Errorf("(%d,%d) not painted", x, y)
			}
		}
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	c := canvas.New(16, 16, palette.Blank)
	for i := 0; i < 16; i++ {
		c.Put(i, (i*7)%16, palette.All[1+i%16])
	}
	serial := NewFrame(64, 64)
	parallel := NewFrame(64, 64)
	serial.Draw(c, 4, 0, 0)
	ComposeParallel(parallel.Pix, parallel.Width, c, 4, 0, 0, 5)
	if !bytes.Equal(serial.Pix, parallel.Pix) {
		t.Error("parallel composite differs from serial")
	}
}

func BenchmarkComposeScreen(b *testing.B) {
	c := canvas.New(128, 256, palette.Black)
	f := NewFrame(512, 1024)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		f.Draw(c, 4, 0, 0)
	}
}
