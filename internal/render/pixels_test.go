package render

import (
	"image/color"
	"testing"
)

func TestFillPaletteRGBA(t *testing.T) {
	palette := []color.RGBA{
		{R: 1, G: 2, B: 3, A: 4},
		{R: 10, G: 20, B: 30, A: 40},
	}
	cells := []uint8{0, 1, 200}
	buf := make([]byte, 4*len(cells))
	fillPaletteRGBA(buf, cells, palette)

	want := []byte{1, 2, 3, 4, 10, 20, 30, 40, 10, 20, 30, 40}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d (values past the palette use its last entry)", i, buf[i], want[i])
		}
	}
}

func TestFillPaletteRGBAEmptyPaletteClears(t *testing.T) {
	buf := []byte{9, 9, 9, 9, 9, 9, 9, 9}
	fillPaletteRGBA(buf, []uint8{3, 4}, nil)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %d, want 0", i, b)
		}
	}
}

func TestGrayPalette(t *testing.T) {
	p := grayPalette()
	if len(p) != 256 {
		t.Fatalf("len = %d, want 256", len(p))
	}
	if p[0] != (color.RGBA{A: 255}) || p[255] != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("unexpected ends %v %v", p[0], p[255])
	}
}
