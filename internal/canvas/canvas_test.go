package canvas

import (
	"errors"
	"testing"

	"rico-32/internal/palette"
)

func TestSetPixelThenRead(t *testing.T) {
	c := New(8, 4, palette.Black)
	for r := 0; r < c.Height(); r++ {
		for col := 0; col < c.Width(); col++ {
			for _, k := range palette.All[1:] {
				c.SetPixel(r, col, k)
				got, err := c.At(r, col)
				if err != nil {
					t.Fatalf("At(%d,%d): %v", r, col, err)
				}
				if got != k {
					t.Fatalf("At(%d,%d) = %v, want %v", r, col, got, k)
				}
			}
		}
	}
}

func TestBlankNeverOverwrites(t *testing.T) {
	c := New(4, 4, palette.Blank)
	c.SetPixel(1, 2, palette.Red)
	for _, prior := range []palette.Color{palette.Red, palette.Blank} {
		c.Put(1, 2, prior)
		c.SetPixel(1, 2, palette.Blank)
		if got := c.Get(1, 2); got != prior {
			t.Errorf("Blank write changed %v to %v", prior, got)
		}
	}
}

func TestOutOfBounds(t *testing.T) {
	c := New(4, 3, palette.Black)
	before := c.Clone()
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 4}, {100, 100}} {
		c.SetPixel(p[0], p[1], palette.Red)
		if _, err := c.At(p[0], p[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("At(%d,%d): expected ErrOutOfBounds, got %v", p[0], p[1], err)
		}
	}
	if !c.Equal(before) {
		t.Error("out-of-bounds write modified the canvas")
	}
}

func TestFillRect(t *testing.T) {
	c := New(6, 6, palette.Black)
	c.FillRect(1, 2, 3, 2, palette.Red)
	for r := 0; r < 6; r++ {
		for col := 0; col < 6; col++ {
			want := palette.Black
			if col >= 1 && col < 4 && r >= 2 && r < 4 {
				want = palette.Red
			}
			if got := c.Get(r, col); got != want {
				t.Errorf("(%d,%d) = %v, want %v", r, col, got, want)
			}
		}
	}
}

func TestRectOutline(t *testing.T) {
	c := New(8, 8, palette.Black)
	c.Rect(1, 1, 3, 3, palette.White)
	tests := []struct {
		r, c int
		want palette.Color
	}{
		{1, 1, palette.White},
		{1, 4, palette.White},
		{4, 1, palette.White},
		{4, 4, palette.White},
		{2, 2, palette.Black},
		{3, 3, palette.Black},
		{5, 5, palette.Black},
	}
	for _, tt := range tests {
		if got := c.Get(tt.r, tt.c); got != tt.want {
			t.Errorf("(%d,%d) = %v, want %v", tt.r, tt.c, got, tt.want)
		}
	}
}

func TestCircle(t *testing.T) {
	c := New(9, 9, palette.Black)
	c.Circle(4, 4, 2, palette.Green)
	if c.Get(4, 4) != palette.Green || c.Get(4, 6) != palette.Green || c.Get(2, 4) != palette.Green {
		t.Error("expected centre and axis extremes painted")
	}
	if c.Get(2, 2) != palette.Black {
		t.Error("corner (2,2) lies outside r=2 but was painted")
	}
}

func TestBlitTransparency(t *testing.T) {
	dst := New(4, 4, palette.Black)
	src := New(2, 2, palette.Blank)
	src.Put(0, 0, palette.Red)
	src.Put(1, 1, palette.Blue)
	dst.Blit(1, 1, src)

	if dst.Get(1, 1) != palette.Red || dst.Get(2, 2) != palette.Blue {
		t.Error("opaque source cells not copied")
	}
	if dst.Get(1, 2) != palette.Black || dst.Get(2, 1) != palette.Black {
		t.Error("blank source cells overwrote destination")
	}
}

func TestClear(t *testing.T) {
	c := New(3, 3, palette.Red)
	c.Clear(palette.Blank)
	if c.Get(1, 1) != palette.Red {
		t.Error("Clear(Blank) modified the canvas")
	}
	c.Clear(palette.Teal)
	for r := 0; r < 3; r++ {
		for col := 0; col < 3; col++ {
			if c.Get(r, col) != palette.Teal {
				t.Fatalf("(%d,%d) not cleared", r, col)
			}
		}
	}
}

func TestTextFallbackGlyph(t *testing.T) {
	for _, f := range []*Font{Large, Mid, Mini} {
		space := f.Glyph(' ')
		for _, code := range []rune{0, 31, 127, 'é'} {
			got := f.Glyph(code)
			if len(got) != len(space) {
				t.Fatalf("glyph %q has %d rows, want %d", code, len(got), len(space))
			}
			for i := range got {
				if got[i] != space[i] {
					t.Errorf("glyph %q does not fall back to space", code)
				}
			}
		}
	}
}

func TestTextPaintsWithinCells(t *testing.T) {
	tests := []struct {
		name string
		font *Font
	}{
		{"large", Large},
		{"mid", Mid},
		{"mini", Mini},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(64, 16, palette.Blank)
			c.Text(tt.font, 0, 0, palette.White, "AB")
			painted := 0
			for r := 0; r < c.Height(); r++ {
				for col := 0; col < c.Width(); col++ {
					if c.Get(r, col) == palette.Blank {
						continue
					}
					painted++
					if r >= tt.font.Height || col >= tt.font.TextWidth("AB") {
						t.Errorf("pixel (%d,%d) outside text box", r, col)
					}
				}
			}
			if painted == 0 {
				t.Error("no pixels painted")
			}
		})
	}
}

func TestTextSpaceIsEmpty(t *testing.T) {
	c := New(16, 16, palette.Blank)
	c.PrintMid(0, 0, palette.White, "   ")
	c.Print(0, 0, palette.White, " ")
	if !c.Equal(New(16, 16, palette.Blank)) {
		t.Error("spaces painted pixels")
	}
}

func TestCropAndFlip(t *testing.T) {
	c := New(3, 2, palette.Blank)
	c.Put(0, 0, palette.Red)
	c.Put(1, 2, palette.Blue)

	crop := c.Crop(1, 0, 3, 2)
	if crop.Width() != 3 || crop.Get(1, 1) != palette.Blue || crop.Get(0, 2) != palette.Blank {
		t.Errorf("unexpected crop %v", crop.Bytes())
	}

	h := c.Clone()
	h.FlipH()
	if h.Get(0, 2) != palette.Red || h.Get(1, 0) != palette.Blue {
		t.Errorf("FlipH: %v", h.Bytes())
	}
	v := c.Clone()
	v.FlipV()
	if v.Get(1, 0) != palette.Red || v.Get(0, 2) != palette.Blue {
		t.Errorf("FlipV: %v", v.Bytes())
	}
	v.FlipV()
	if !v.Equal(c) {
		t.Error("double flip is not the identity")
	}
}
