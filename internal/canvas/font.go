package canvas

import (
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"rico-32/internal/palette"
)

// firstGlyph is the code point stored at glyph index 0 (space).
const firstGlyph = 32

// Font is a fixed-cell bitmap font. Each glyph is one byte per row; bit
// Width-1 is the leftmost column.
type Font struct {
	Width   int
	Height  int
	Advance int
	glyphs  [][]uint8
}

// Glyph returns the row masks for a code point. Code points without a
// glyph fall back to the space glyph.
func (f *Font) Glyph(code rune) []uint8 {
	idx := int(code) - firstGlyph
	if idx < 0 || idx >= len(f.glyphs) {
		idx = 0
	}
	return f.glyphs[idx]
}

// TextWidth returns the number of columns msg occupies.
func (f *Font) TextWidth(msg string) int {
	return len(msg) * f.Advance
}

var (
	// Large is the 6x13 terminal font, advance 7.
	Large = faceFont(basicfont.Face7x13)

	// Mid is the 3x5 font in a 4x6 cell used by the console chrome.
	Mid = &Font{Width: 3, Height: 5, Advance: 4, glyphs: tinyGlyphs}

	// Mini packs the 3x5 glyphs with no letter spacing.
	Mini = &Font{Width: 3, Height: 5, Advance: 3, glyphs: tinyGlyphs}
)

// Text renders msg byte by byte with its top-left corner at (x, y).
func (c *Canvas) Text(f *Font, x, y int, color palette.Color, msg string) {
	for i := 0; i < len(msg); i++ {
		rows := f.Glyph(rune(msg[i]))
		ox := x + i*f.Advance
		for dy, row := range rows {
			for dx := 0; dx < f.Width; dx++ {
				if (row>>(f.Width-1-dx))&1 == 1 {
					c.SetPixel(y+dy, ox+dx, color)
				}
			}
		}
	}
}

// Print renders msg in the large font.
func (c *Canvas) Print(x, y int, color palette.Color, msg string) {
	c.Text(Large, x, y, color, msg)
}

// PrintMid renders msg in the 4x6 font.
func (c *Canvas) PrintMid(x, y int, color palette.Color, msg string) {
	c.Text(Mid, x, y, color, msg)
}

// PrintMini renders msg in the packed 3x5 font.
func (c *Canvas) PrintMini(x, y int, color palette.Color, msg string) {
	c.Text(Mini, x, y, color, msg)
}

// faceFont rasterizes the printable ASCII range of a basicfont face into row masks.
func faceFont(face *basicfont.Face) *Font {
	f := &Font{Width: face.Width, Height: face.Ascent + face.Descent, Advance: face.Advance}
	for code := firstGlyph; code < 127; code++ {
		rows := make([]uint8, f.Height)
		dr, mask, mp, _, ok := face.Glyph(fixed.P(0, face.Ascent), rune(code))
		if ok {
			for y := dr.Min.Y; y < dr.Max.Y; y++ {
				for x := dr.Min.X; x < dr.Max.X; x++ {
					if y < 0 || y >= f.Height || x < 0 || x >= f.Width {
						continue
					}
					_, _, _, a := mask.At(mp.X+x-dr.Min.X, mp.Y+y-dr.Min.Y).RGBA()
					if a >= 0x8000 {
						rows[y] |= 1 << (f.Width - 1 - x)
					}
				}
			}
		}
		f.glyphs = append(f.glyphs, rows)
	}
	return f
}

// tinyGlyphs covers ' ' through '~'. Bit 2 is the left column.
var tinyGlyphs = [][]uint8{
	{0, 0, 0, 0, 0}, // ' '
	{2, 2, 2, 0, 2}, // !
	{5, 5, 0, 0, 0}, // "
	{5, 7, 5, 7, 5}, // #
	{3, 6, 2, 3, 6}, // $
	{5, 1, 2, 4, 5}, // %
	{2, 5, 2, 5, 3}, // &
	{2, 2, 0, 0, 0}, // '
	{1, 2, 2, 2, 1}, // (
	{4, 2, 2, 2, 4}, // )
	{0, 5, 2, 5, 0}, // *
	{0, 2, 7, 2, 0}, // +
	{0, 0, 0, 2, 4}, // ,
	{0, 0, 7, 0, 0}, // -
	{0, 0, 0, 0, 2}, // .
	{1, 1, 2, 4, 4}, // /
	{7, 5, 5, 5, 7}, // 0
	{2, 6, 2, 2, 7}, // 1
	{7, 1, 7, 4, 7}, // 2
	{7, 1, 3, 1, 7}, // 3
	{5, 5, 7, 1, 1}, // 4
	{7, 4, 7, 1, 7}, // 5
	{7, 4, 7, 5, 7}, // 6
	{7, 1, 1, 2, 2}, // 7
	{7, 5, 7, 5, 7}, // 8
	{7, 5, 7, 1, 7}, // 9
	{0, 2, 0, 2, 0}, // :
	{0, 2, 0, 2, 4}, // ;
	{1, 2, 4, 2, 1}, // <
	{0, 7, 0, 7, 0}, // =
	{4, 2, 1, 2, 4}, // >
	{7, 1, 3, 0, 2}, // ?
	{2, 5, 7, 4, 3}, // @
	{2, 5, 7, 5, 5}, // A
	{6, 5, 6, 5, 6}, // B
	{3, 4, 4, 4, 3}, // C
	{6, 5, 5, 5, 6}, // D
	{7, 4, 6, 4, 7}, // E
	{7, 4, 6, 4, 4}, // F
	{3, 4, 5, 5, 3}, // G
	{5, 5, 7, 5, 5}, // H
	{7, 2, 2, 2, 7}, // I
	{1, 1, 1, 5, 2}, // J
	{5, 5, 6, 5, 5}, // K
	{4, 4, 4, 4, 7}, // L
	{5, 7, 7, 5, 5}, // M
	{6, 5, 5, 5, 5}, // N
	{2, 5, 5, 5, 2}, // O
	{6, 5, 6, 4, 4}, // P
	{2, 5, 5, 6, 3}, // Q
	{6, 5, 6, 5, 5}, // R
	{3, 4, 2, 1, 6}, // S
	{7, 2, 2, 2, 2}, // T
	{5, 5, 5, 5, 7}, // U
	{5, 5, 5, 5, 2}, // V
	{5, 5, 7, 7, 5}, // W
	{5, 5, 2, 5, 5}, // X
	{5, 5, 2, 2, 2}, // Y
	{7, 1, 2, 4, 7}, // Z
	{6, 4, 4, 4, 6}, // [
	{4, 4, 2, 1, 1}, // backslash
	{3, 1, 1, 1, 3}, // ]
	{2, 5, 0, 0, 0}, // ^
	{0, 0, 0, 0, 7}, // _
	{4, 2, 0, 0, 0}, // `
	{0, 3, 5, 5, 3}, // a
	{4, 6, 5, 5, 6}, // b
	{0, 3, 4, 4, 3}, // c
	{1, 3, 5, 5, 3}, // d
	{0, 3, 5, 6, 3}, // e
	{1, 2, 7, 2, 2}, // f
	{0, 3, 5, 3, 6}, // g
	{4, 6, 5, 5, 5}, // h
	{2, 0, 2, 2, 2}, // i
	{1, 0, 1, 5, 2}, // j
	{4, 5, 6, 5, 5}, // k
	{6, 2, 2, 2, 7}, // l
	{0, 7, 7, 5, 5}, // m
	{0, 6, 5, 5, 5}, // n
	{0, 2, 5, 5, 2}, // o
	{0, 6, 5, 6, 4}, // p
	{0, 3, 5, 3, 1}, // q
	{0, 3, 4, 4, 4}, // r
	{0, 3, 6, 1, 6}, // s
	{2, 7, 2, 2, 1}, // t
	{0, 5, 5, 5, 3}, // u
	{0, 5, 5, 5, 2}, // v
	{0, 5, 5, 7, 7}, // w
	{0, 5, 2, 2, 5}, // x
	{0, 5, 3, 1, 6}, // y
	{0, 7, 3, 6, 7}, // z
	{3, 2, 6, 2, 3}, // {
	{2, 2, 2, 2, 2}, // |
	{6, 2, 3, 2, 6}, // }
	{0, 3, 6, 0, 0}, // ~
}
