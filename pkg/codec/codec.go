// Package codec reads and writes grayscale images as PNG or TIFF.
package codec

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

type Format string

const (
	PNG  Format = "png"
	TIFF Format = "tiff"
)

// ParseFormat accepts a format name or a file extension, with or without the
// leading dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return PNG, nil
	case "tif", "tiff":
		return TIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Ext is the file extension, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

func FormatOf(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Write encodes img to path in the format named by its extension. The image
// is written to a temporary file and renamed into place, so a failed write
// never leaves a partial file at path.
func Write(path string, img image.Image) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, img, f); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Read decodes the image at path as 16-bit grayscale. Color images are
// converted.
func Read(path string) (*image.Gray16, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var img image.Image
	switch format {
	case PNG:
		img, err = png.Decode(f)
	case TIFF:
		img, err = tiff.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	if g, ok := img.(*image.Gray16); ok {
		return g, nil
	}

	g := image.NewGray16(img.Bounds())
	draw.Draw(g, g.Bounds(), img, img.Bounds().Min, draw.Src)
	return g, nil
}

// Preview scales img down (or up) to side x side pixels.
func Preview(img image.Image, side int) *image.Gray16 {
	dst := image.NewGray16(image.Rect(0, 0, side, side))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
