package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"rico-32/internal/palette"
	"rico-32/internal/sheet"
)

func sampleSheet(n int) *sheet.Sheet {
	s := sheet.New(4, n)
	for i, sp := range s.Sprites {
		sp.Put(0, 0, palette.All[1+i%(palette.Count-1)])
		sp.Put(3, i%4, palette.Pink)
	}
	return s
}

func TestSheetPNGRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		cols  int
		wantN int
	}{
		{"full grid", 4, 2, 4},
		{"single row", 3, 3, 3},
		{"partial last row", 3, 2, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sampleSheet(tt.n)
			var buf bytes.Buffer
			if err := ExportPNG(&buf, s, tt.cols, 1); err != nil {
				t.Fatal(err)
			}
			got, err := ImportSheetPNG(&buf, 4)
			if err != nil {
				t.Fatal(err)
			}
			if got.Len() != tt.wantN {
				t.Fatalf("decoded %d sprites, want %d", got.Len(), tt.wantN)
			}
			for i, sp := range s.Sprites {
				if !sp.Equal(got.Sprites[i]) {
					t.Errorf("sprite %d differs after round trip", i)
				}
			}
		})
	}
}

func TestSheetImageScale(t *testing.T) {
	s := sampleSheet(2)
	img := SheetImage(s, 2, 3)
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 12 {
		t.Fatalf("bounds = %v", b)
	}
	want := color.NRGBAModel.Convert(img.At(0, 0))
	for _, p := range []image.Point{{1, 1}, {2, 2}, {0, 2}} {
		if got := color.NRGBAModel.Convert(img.At(p.X, p.Y)); got != want {
			t.Errorf("pixel %v = %v, want %v", p, got, want)
		}
	}
	if _, _, _, a := img.At(3, 0).RGBA(); a != 0 {
		t.Error("blank pixel is not transparent")
	}
}

func TestImportPNGResamples(t *testing.T) {
	s := sampleSheet(1)
	var buf bytes.Buffer
	if err := ExportPNG(&buf, s, 1, 2); err != nil {
		t.Fatal(err)
	}
	got, err := ImportPNG(&buf, 4)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(s.Sprites[0]) {
		t.Error("downscaled sprite differs from the source sprite")
	}
}

func TestImportPNGQuantizes(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 250, G: 250, B: 245, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, A: 0x10})
	img.SetNRGBA(2, 0, color.NRGBA{R: 255, B: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	got, err := ImportSheetPNG(&buf, 1)
	if err != nil {
		t.Fatal(err)
	}
	if c := got.Sprites[0].Get(0, 0); c != palette.White {
		t.Errorf("near-white mapped to %v", c)
	}
	if c := got.Sprites[1].Get(0, 0); c != palette.Blank {
		t.Errorf("translucent pixel mapped to %v", c)
	}
	if c := got.Sprites[2].Get(0, 0); c != palette.Blank {
		t.Errorf("magenta key mapped to %v", c)
	}
}

func TestImportSheetPNGRejectsRaggedImage(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 5, 4))); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportSheetPNG(&buf, 4); err == nil {
		t.Error("expected error for a 5x4 image")
	}
}
