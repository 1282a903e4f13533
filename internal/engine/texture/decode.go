// Package texture decodes the image files OBJ materials reference and
// prepares them for upload.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
)

// ErrUnsupported is returned for containers Decode does not handle.
var ErrUnsupported = errors.New("unsupported texture format")

// Image is a decoded texture with the path it was read from.
type Image struct {
	Name string
	RGBA *image.RGBA
}

// Decode decodes texture data. The container is sniffed from the bytes;
// TGA has no magic number and is recognised by the name's extension.
func Decode(data []byte, name string) (*image.RGBA, error) {
	var img image.Image
	var err error

	kind, _ := filetype.Match(data)
	switch kind.Extension {
	case "png":
		img, err = png.Decode(bytes.NewReader(data))
	case "jpg":
		img, err = jpeg.Decode(bytes.NewReader(data))
	case "bmp":
		img, err = bmp.Decode(bytes.NewReader(data))
	default:
		if strings.EqualFold(filepath.Ext(name), ".tga") {
			img, err = tga.Decode(bytes.NewReader(data))
		} else {
			return nil, fmt.Errorf("%s: %w (%s)", name, ErrUnsupported, describe(kind.MIME.Value))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return ImageToRGBA(img), nil
}

func describe(mime string) string {
	if mime == "" {
		return "unknown"
	}
	return mime
}

// ImageToRGBA converts any image.Image to *image.RGBA.
func ImageToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba
}
