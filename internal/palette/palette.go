package palette

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidName is returned when a color name does not match any palette entry.
var ErrInvalidName = errors.New("invalid color name")

// Color is an index into the fixed console palette.
// The zero value is Blank, the transparent sentinel.
type Color uint8

const (
	Blank Color = iota
	Black
	White
	Gray
	Silver
	Red
	Maroon
	Orange
	Yellow
	Gold
	Green
	Olive
	Brown
	Blue
	Teal
	Purple
	Pink
)

// Count is the number of palette entries including Blank.
const Count = 17

// MaxIndex is the largest valid palette index.
const MaxIndex = Count - 1

// All lists every palette entry in index order.
var All = [Count]Color{
	Blank, Black, White, Gray, Silver, Red, Maroon, Orange, Yellow,
	Gold, Green, Olive, Brown, Blue, Teal, Purple, Pink,
}

var rgba = [Count][4]uint8{
	{0, 0, 0, 0},
	{0, 0, 0, 255},
	{255, 255, 255, 255},
	{128, 128, 128, 255},
	{192, 192, 192, 255},
	{200, 40, 40, 255},
	{128, 0, 0, 255},
	{255, 140, 0, 255},
	{240, 230, 80, 255},
	{255, 215, 0, 255},
	{0, 180, 0, 255},
	{128, 128, 0, 255},
	{139, 69, 19, 255},
	{65, 105, 225, 255},
	{0, 128, 128, 255},
	{138, 43, 226, 255},
	{255, 105, 180, 255},
}

var names = [Count]string{
	"BLANK", "BLACK", "WHITE", "GRAY", "SILVER", "RED", "MAROON", "ORANGE", "YELLOW",
	"GOLD", "GREEN", "OLIVE", "BROWN", "BLUE", "TEAL", "PURPLE", "PINK",
}

// Valid reports whether c is a palette entry.
func (c Color) Valid() bool {
	return c <= MaxIndex
}

// RGBA returns the color's fixed RGBA quadruple. Blank is fully transparent.
func (c Color) RGBA() (r, g, b, a uint8) {
	if !c.Valid() {
		return 0, 0, 0, 0
	}
	q := rgba[c]
	return q[0], q[1], q[2], q[3]
}

// Opaque reports whether c paints anything.
func (c Color) Opaque() bool {
	return c != Blank && c.Valid()
}

// String returns the canonical uppercase name.
func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
	return names[c]
}

// Parse resolves a color name, ignoring case.
func Parse(name string) (Color, error) {
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return Color(i), nil
		}
	}
	return Blank, fmt.Errorf("%w: %q", ErrInvalidName, name)
}

// FromIndex converts a stored byte to a palette color.
func FromIndex(b byte) (Color, bool) {
	if b > MaxIndex {
		return Blank, false
	}
	return Color(b), true
}

// Nearest returns the opaque palette entry closest to the given RGBA value.
// Pixels with alpha below half are Blank.
func Nearest(r, g, b, a uint8) Color {
	if a < 0x80 {
		return Blank
	}
	best := Black
	bestDist := -1
	for i := 1; i < Count; i++ {
		q := rgba[i]
		dr := int(r) - int(q[0])
		dg := int(g) - int(q[1])
		db := int(b) - int(q[2])
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best = Color(i)
			bestDist = d
		}
	}
	return best
}
