// Package plane maps between pixel cells of a square image and rectangles of
// the complex plane.
//
// Rows run along the real axis and columns along the imaginary axis, so the
// conjugate of a point lands in the mirrored column.
package plane

import (
	"errors"
	"fmt"
	"math"
)

var ErrEmptyWindow = errors.New("window has no area")

// Bounds is the half-open rectangle [ULo, UHi) x [VLo, VHi). U is the real
// part and V the imaginary part.
type Bounds struct {
	ULo, UHi float64
	VLo, VHi float64
}

// Point draws the point at fractions (fu, fv) of the way across b. Fractions
// in [0, 1) give points inside b.
func (b Bounds) Point(fu, fv float64) complex128 {
	return complex(b.ULo+(b.UHi-b.ULo)*fu, b.VLo+(b.VHi-b.VLo)*fv)
}

func (b Bounds) Contains(z complex128) bool {
	return real(z) >= b.ULo && real(z) < b.UHi && imag(z) >= b.VLo && imag(z) < b.VHi
}

// A Window is the region of the plane covered by a Size x Size image.
type Window struct {
	Bounds
	Size int
}

// Default is [-2, 2) x [-2, 2), which contains the whole set.
func Default(size int) Window {
	return Window{
		Bounds: Bounds{ULo: -2, UHi: 2, VLo: -2, VHi: 2},
		Size:   size,
	}
}

func (w Window) Validate() error {
	if w.Size <= 0 {
		return fmt.Errorf("%w: size %d", ErrEmptyWindow, w.Size)
	}
	if !(w.ULo < w.UHi) || !(w.VLo < w.VHi) {
		return fmt.Errorf("%w: %+v", ErrEmptyWindow, w.Bounds)
	}
	return nil
}

// Symmetric reports whether the imaginary range is centered on the real axis,
// the condition for folding mirrored columns together.
func (w Window) Symmetric() bool {
	return w.VLo == -w.VHi
}

// Cell returns the rectangle of the plane drawn into pixel (row, col).
func (w Window) Cell(row, col int) Bounds {
	du := (w.UHi - w.ULo) / float64(w.Size)
	dv := (w.VHi - w.VLo) / float64(w.Size)

	return Bounds{
		ULo: w.ULo + du*float64(row),
		UHi: w.ULo + du*float64(row+1),
		VLo: w.VLo + dv*float64(col),
		VHi: w.VLo + dv*float64(col+1),
	}
}

// Pixel is the inverse of Cell. ok is false when z falls outside the window.
func (w Window) Pixel(z complex128) (row, col int, ok bool) {
	size := float64(w.Size)

	u := math.Floor(size * (real(z) - w.ULo) / (w.UHi - w.ULo))
	v := math.Floor(size * (imag(z) - w.VLo) / (w.VHi - w.VLo))

	// Comparing the floats also rejects NaN before the int conversion.
	if !(u >= 0 && u < size && v >= 0 && v < size) {
		return 0, 0, false
	}

	return int(u), int(v), true
}

// MirrorCol is the column holding the conjugates of col in a symmetric window.
func (w Window) MirrorCol(col int) int {
	return w.Size - 1 - col
}
