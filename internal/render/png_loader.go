package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	"rico-32/internal/canvas"
	"rico-32/internal/palette"
	"rico-32/internal/sheet"
)

// LoadSpritePNG reads a PNG file and returns it as one size x size sprite.
func LoadSpritePNG(path string, size int) (*canvas.Canvas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	c, err := ImportPNG(f, size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ImportPNG decodes a PNG and maps it onto the palette. Images of any
// other size are resampled to size x size with nearest-neighbour scaling.
// Pixels with alpha below half, and pure magenta, become Blank.
func ImportPNG(r io.Reader, size int) (*canvas.Canvas, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	b := img.Bounds()
	if b.Dx() != size || b.Dy() != size {
		dst := image.NewNRGBA(image.Rect(0, 0, size, size))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		img = dst
	}
	return quantize(img, img.Bounds().Min, size, size), nil
}

// ImportSheetPNG decodes a PNG laid out as a grid of size x size sprites, read
// row-major. Both image dimensions must be multiples of size.
func ImportSheetPNG(r io.Reader, size int) (*sheet.Sheet, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	b := img.Bounds()
	if size <= 0 || b.Dx()%size != 0 || b.Dy()%size != 0 || b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%dx%d image is not a grid of %dx%d sprites", b.Dx(), b.Dy(), size, size)
	}

	cols, rows := b.Dx()/size, b.Dy()/size
	s := &sheet.Sheet{Size: size}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			origin := image.Pt(b.Min.X+col*size, b.Min.Y+row*size)
			s.Sprites = append(s.Sprites, quantize(img, origin, size, size))
		}
	}
	return s, nil
}

// magenta is the conventional transparent key in sprite art.
var magenta = color.NRGBA{R: 0xFF, B: 0xFF, A: 0xFF}

func quantize(img image.Image, origin image.Point, w, h int) *canvas.Canvas {
	c := canvas.New(w, h, palette.Blank)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := color.NRGBAModel.Convert(img.At(origin.X+x, origin.Y+y)).(color.NRGBA)
			if n == magenta {
				continue
			}
			c.Put(y, x, palette.Nearest(n.R, n.G, n.B, n.A))
		}
	}
	return c
}

// SheetImage lays the sheet out as a grid cols sprites wide, each pixel
// scaled to a scale x scale block. Blank pixels are transparent.
func SheetImage(s *sheet.Sheet, cols, scale int) image.Image {
	if cols <= 0 {
		cols = 1
	}
	if scale <= 0 {
		scale = 1
	}
	rows := (s.Len() + cols - 1) / cols
	src := image.NewNRGBA(image.Rect(0, 0, cols*s.Size, max(rows, 1)*s.Size))
	for i, sp := range s.Sprites {
		ox, oy := (i%cols)*s.Size, (i/cols)*s.Size
		for y := 0; y < s.Size; y++ {
			for x, c := range sp.Row(y) {
				r, g, b, a := c.RGBA()
				src.SetNRGBA(ox+x, oy+y, color.NRGBA{R: r, G: g, B: b, A: a})
			}
		}
	}
	if scale == 1 {
		return src
	}

	sb := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, sb.Dx()*scale, sb.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, sb, draw.Src, nil)
	return dst
}

// ExportPNG writes the sheet as a PNG grid. See SheetImage.
func ExportPNG(w io.Writer, s *sheet.Sheet, cols, scale int) error {
	if err := png.Encode(w, SheetImage(s, cols, scale)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

