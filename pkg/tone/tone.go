// Package tone maps accumulated densities to fixed-depth grayscale samples.
package tone

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/willbeason/buddhabrot/pkg/histogram"
)

// Max16 is the largest 16-bit sample.
const Max16 = math.MaxUint16

// MaxForBits is the largest sample representable in bits bits.
func MaxForBits(bits int) (uint16, error) {
	if bits < 1 || bits > 16 {
		return 0, fmt.Errorf("bit depth must be in [1, 16], got %d", bits)
	}
	return uint16(int(1)<<bits - 1), nil
}

// Curve maps x in [lo, hi] to round(maxValue * sqrt((x-lo)/(hi-lo))). The
// square root compresses the huge dynamic range of path densities. When
// hi == lo every value maps to 0.
func Curve(x, lo, hi float64, maxValue uint16) uint16 {
	span := hi - lo
	if !(span > 0) || math.IsInf(span, 0) {
		return 0
	}

	f := (x - lo) / span
	switch {
	case !(f > 0):
		return 0
	case f >= 1:
		return maxValue
	}

	return uint16(math.Round(float64(maxValue) * math.Sqrt(f)))
}

// Normalize tone-maps h into a grayscale image. Pixel (row, col) of the
// histogram becomes image point (x=col, y=row).
func Normalize(h *histogram.Histogram, maxValue uint16) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, h.Size, h.Size))
	lo, hi := h.MinMax()

	for row := 0; row < h.Size; row++ {
		for col := 0; col < h.Size; col++ {
			img.SetGray16(col, row, color.Gray16{Y: Curve(h.At(row, col), lo, hi, maxValue)})
		}
	}

	return img
}
