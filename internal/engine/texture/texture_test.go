package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

// TGA image types and descriptor bits used by the fixtures.
const (
	tgaTrueColor    = 2
	tgaGray         = 3
	tgaTrueColorRLE = 10
	tgaTopDown      = 0x20
)

func tgaHeader(kind byte, w, h int, bpp, descriptor byte) []byte {
	header := make([]byte, 18)
	header[2] = kind
	header[12] = byte(w)
	header[14] = byte(h)
	header[16] = bpp
	header[17] = descriptor
	return header
}

// makeTGA builds an uncompressed 24-bit bottom-up TGA.
func makeTGA(w, h int, pixels []color.RGBA) []byte {
	data := tgaHeader(tgaTrueColor, w, h, 24, 0)
	for _, p := range pixels {
		data = append(data, p.B, p.G, p.R)
	}
	return data
}

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	img.SetRGBA(1, 1, color.RGBA{255, 255, 255, 255})
	return img
}

func TestDecodeTGA_BottomUp(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	// Bottom row first in file order.
	img, err := Decode(makeTGA(1, 2, []color.RGBA{red, blue}), "wood.tga")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := img.RGBAAt(0, 1); got != red {
		t.Errorf("bottom pixel: got %v, want red", got)
	}
	if got := img.RGBAAt(0, 0); got != blue {
		t.Errorf("top pixel: got %v, want blue", got)
	}
}

func TestDecodeTGA_RLE(t *testing.T) {
	data := tgaHeader(tgaTrueColorRLE, 3, 1, 24, tgaTopDown)
	// A run of two green pixels, then one raw red pixel.
	data = append(data, 0x81, 0, 255, 0, 0x00, 0, 0, 255)

	img, err := Decode(data, "rug.tga")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	green := color.RGBA{0, 255, 0, 255}
	for x, want := range []color.RGBA{green, green, {255, 0, 0, 255}} {
		if got := img.RGBAAt(x, 0); got != want {
			t.Errorf("pixel %d: got %v, want %v", x, got, want)
		}
	}
}

func TestDecodeTGA_Gray(t *testing.T) {
	data := append(tgaHeader(tgaGray, 2, 1, 8, tgaTopDown), 10, 200)

	img, err := Decode(data, "mask.tga")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{10, 10, 10, 255}) {
		t.Errorf("left pixel: got %v", got)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{200, 200, 200, 255}) {
		t.Errorf("right pixel: got %v", got)
	}
}

func TestDecodeTGA_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{1, 2, 3}},
		{"missing pixels", makeTGA(2, 2, []color.RGBA{{}, {}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.data, "bad.tga"); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestDecodeSniffsContainer(t *testing.T) {
	var pngBuf, bmpBuf bytes.Buffer
	if err := png.Encode(&pngBuf, testImage()); err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(&bmpBuf, testImage()); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data []byte
		file string
	}{
		// Names are deliberately wrong; the bytes decide.
		{"png", pngBuf.Bytes(), "fur.jpg"},
		{"bmp", bmpBuf.Bytes(), "fur.png"},
		{"tga by extension", makeTGA(2, 2, []color.RGBA{
			{0, 0, 255, 255}, {255, 255, 255, 255},
			{255, 0, 0, 255}, {0, 255, 0, 255},
		}), "fur.TGA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Decode(tt.data, tt.file)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if got := img.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
				t.Errorf("top-left: got %v, want red", got)
			}
			if got := img.RGBAAt(1, 1); got != (color.RGBA{255, 255, 255, 255}) {
				t.Errorf("bottom-right: got %v, want white", got)
			}
		})
	}
}

func TestDecodeUnsupported(t *testing.T) {
	_, err := Decode([]byte("definitely not an image"), "notes.txt")
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}
