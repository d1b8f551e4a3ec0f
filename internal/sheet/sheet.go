package sheet

import (
	"fmt"

	"rico-32/internal/canvas"
	"rico-32/internal/palette"
)

const (
	// SpriteSize is the edge length of a console sprite in pixels.
	SpriteSize = 32
	// InitialSprites is the size of a freshly created sheet.
	InitialSprites = 60
	// BatchSize is how many sprites Grow adds from the editor.
	BatchSize = 6
)

// Sheet is an ordered list of equally sized square sprites. Sprites are
// identified by index; the sheet only ever grows.
type Sheet struct {
	Size    int
	Sprites []*canvas.Canvas
}

// New creates a sheet of count blank size x size sprites.
func New(size, count int) *Sheet {
	s := &Sheet{Size: size}
	s.Grow(count)
	return s
}

// Len returns the number of sprites.
func (s *Sheet) Len() int {
	return len(s.Sprites)
}

// Grow appends n blank sprites.
func (s *Sheet) Grow(n int) {
	for i := 0; i < n; i++ {
		s.Sprites = append(s.Sprites, canvas.New(s.Size, s.Size, palette.Blank))
	}
}

// Sprite returns the sprite at idx or canvas.ErrOutOfBounds.
func (s *Sheet) Sprite(idx int) (*canvas.Canvas, error) {
	if idx < 0 || idx >= len(s.Sprites) {
		return nil, fmt.Errorf("sprite %d of %d: %w", idx, len(s.Sprites), canvas.ErrOutOfBounds)
	}
	return s.Sprites[idx], nil
}

// Clone returns a deep copy.
func (s *Sheet) Clone() *Sheet {
	out := &Sheet{Size: s.Size, Sprites: make([]*canvas.Canvas, len(s.Sprites))}
	for i, sp := range s.Sprites {
		out.Sprites[i] = sp.Clone()
	}
	return out
}

// Equal reports whether both sheets hold the same sprites.
func (s *Sheet) Equal(o *Sheet) bool {
	if s.Size != o.Size || len(s.Sprites) != len(o.Sprites) {
		return false
	}
	for i := range s.Sprites {
		if !s.Sprites[i].Equal(o.Sprites[i]) {
			return false
		}
	}
	return true
}
