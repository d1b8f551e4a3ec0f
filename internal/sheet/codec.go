package sheet

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"rico-32/internal/canvas"
	"rico-32/internal/palette"
)

// SPRT file layout, little-endian throughout:
//
//	u32 magic "SPRT"
//	u16 version
//	u16 sprite count
//	count * size * size palette index bytes, row-major, no padding
const (
	Magic      uint32 = 0x54525053
	Version    uint16 = 1
	HeaderSize        = 8
)

// ErrInvalidData reports a corrupt or foreign sheet file.
var ErrInvalidData = errors.New("invalid sheet data")

type header struct {
	Magic   uint32
	Version uint16
	Count   uint16
}

func (h header) validate() error {
	if h.Magic != Magic {
		return fmt.Errorf("%w: bad magic %#08x", ErrInvalidData, h.Magic)
	}
	if h.Version != Version {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidData, h.Version)
	}
	return nil
}

func parseHeader(b []byte) header {
	return header{
		Magic:   binary.LittleEndian.Uint32(b[0:4]),
		Version: binary.LittleEndian.Uint16(b[4:6]),
		Count:   binary.LittleEndian.Uint16(b[6:8]),
	}
}

// Encode writes the whole sheet. The header is always derived from the
// in-memory sprite count.
func Encode(w io.Writer, s *Sheet) error {
	if len(s.Sprites) > math.MaxUint16 {
		return fmt.Errorf("encode sheet: %d sprites exceeds format limit %d", len(s.Sprites), math.MaxUint16)
	}
	bw := bufio.NewWriter(w)
	var hdr [HeaderSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], Magic)
	binary.LittleEndian.PutUint16(hdr[4:6], Version)
	binary.LittleEndian.PutUint16(hdr[6:8], uint16(len(s.Sprites)))
	if _, err := bw.Write(hdr[:]); err != nil {
		return fmt.Errorf("encode sheet header: %w", err)
	}
	for i, sp := range s.Sprites {
		if sp.Width() != s.Size || sp.Height() != s.Size {
			return fmt.Errorf("encode sprite %d: size %dx%d, sheet expects %d", i, sp.Width(), sp.Height(), s.Size)
		}
		if _, err := bw.Write(sp.Bytes()); err != nil {
			return fmt.Errorf("encode sprite %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// Decode reads a whole sheet of size x size sprites.
func Decode(r io.Reader, size int) (*Sheet, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrInvalidData, err)
	}
	h := parseHeader(hdr[:])
	if err := h.validate(); err != nil {
		return nil, err
	}

	s := &Sheet{Size: size, Sprites: make([]*canvas.Canvas, 0, h.Count)}
	buf := make([]byte, size*size)
	for i := 0; i < int(h.Count); i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("%w: sprite %d truncated: %v", ErrInvalidData, i, err)
		}
		sp, err := decodeSprite(buf, size)
		if err != nil {
			return nil, fmt.Errorf("sprite %d: %w", i, err)
		}
		s.Sprites = append(s.Sprites, sp)
	}
	return s, nil
}

// ReadSprite fetches one sprite without loading the rest of the file: it
// reads the header, bounds-checks idx, then reads exactly size*size bytes at
// HeaderSize + idx*size*size.
func ReadSprite(r io.ReaderAt, size, idx int) (*canvas.Canvas, error) {
	var hdr [HeaderSize]byte
	if _, err := r.ReadAt(hdr[:], 0); err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrInvalidData, err)
	}
	h := parseHeader(hdr[:])
	if err := h.validate(); err != nil {
		return nil, err
	}
	if idx < 0 || idx >= int(h.Count) {
		return nil, fmt.Errorf("sprite index %d of %d: %w", idx, h.Count, canvas.ErrOutOfBounds)
	}

	n := size * size
	buf := make([]byte, n)
	off := int64(HeaderSize) + int64(idx)*int64(n)
	if _, err := r.ReadAt(buf, off); err != nil {
		return nil, fmt.Errorf("%w: sprite %d truncated: %v", ErrInvalidData, idx, err)
	}
	return decodeSprite(buf, size)
}

func decodeSprite(buf []byte, size int) (*canvas.Canvas, error) {
	sp := canvas.New(size, size, palette.Blank)
	for i, b := range buf {
		c, ok := palette.FromIndex(b)
		if !ok {
			return nil, fmt.Errorf("%w: pixel byte %d at offset %d", ErrInvalidData, b, i)
		}
		sp.Put(i/size, i%size, c)
	}
	return sp, nil
}
