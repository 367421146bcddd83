package surface

import (
	"errors"
	"image/color"
	"testing"
)

func tgaHeader(kind byte, w, h int, bpp byte, topDown bool) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = kind
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	if topDown {
		hdr[17] = 0x20
	}
	return hdr
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// 2x2 BGR, bottom-up: first row in the file is the bottom row.
	data := tgaHeader(tgaUncompressed, 2, 2, 24, false)
	data = append(data,
		0, 0, 255, 0, 255, 0, // bottom: red, green
		255, 0, 0, 255, 255, 255, // top: blue, white
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatal(err)
	}
	want := map[[2]int]color.RGBA{
		{0, 1}: {255, 0, 0, 255},
		{1, 1}: {0, 255, 0, 255},
		{0, 0}: {0, 0, 255, 255},
		{1, 0}: {255, 255, 255, 255},
	}
	for p, c := range want {
		if got := img.RGBAAt(p[0], p[1]); got != c {
			t.Errorf("pixel %v = %v, want %v", p, got, c)
		}
	}
}

func TestDecodeTGARLE(t *testing.T) {
	data := tgaHeader(tgaRLE, 3, 1, 32, true)
	data = append(data,
		0x81, 10, 20, 30, 128, // run of 2
		0x00, 1, 2, 3, 4, // one raw pixel
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatal(err)
	}
	for x, want := range []color.RGBA{{30, 20, 10, 128}, {30, 20, 10, 128}, {3, 2, 1, 4}} {
		if got := img.RGBAAt(x, 0); got != want {
			t.Errorf("pixel %d = %v, want %v", x, got, want)
		}
	}
}

func TestDecodeTGARejects(t *testing.T) {
	tests := map[string][]byte{
		"short":     {0, 0, 2},
		"colourmap": append([]byte{0, 1}, make([]byte, 16)...),
		"type":      tgaHeader(3, 1, 1, 24, false),
		"depth":     tgaHeader(tgaUncompressed, 1, 1, 16, false),
		"truncated": tgaHeader(tgaUncompressed, 4, 4, 24, false),
	}
	for name, data := range tests {
		if _, err := DecodeTGA(data); !errors.Is(err, ErrNotTGA) {
			t.Errorf("%s: err = %v, want ErrNotTGA", name, err)
		}
	}
}

func TestDecodeFallsBackToTGA(t *testing.T) {
	data := append(tgaHeader(tgaUncompressed, 1, 1, 24, false), 0, 0, 255)
	img, err := Decode(data, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(2, 2); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("resized pixel = %v", got)
	}
}
