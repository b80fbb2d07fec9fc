// Package palette recolors grayscale density images.
//
// CubeHelix is D. A. Green's palette whose perceived brightness rises
// monotonically, so density ordering survives the recoloring.
package palette

import (
	"image"
	"image/color"
	"math"
)

// Helix parameters of the default CubeHelix palette.
type Helix struct {
	Start     float64
	Rotations float64
	Hue       float64
	Gamma     float64
}

var DefaultHelix = Helix{Start: 0.5, Rotations: -1.5, Hue: 1, Gamma: 1}

// Palette returns n colors from black to white along the helix.
func (h Helix) Palette(n int) color.Palette {
	p := make(color.Palette, n)
	for i := range p {
		lambda := 0.0
		if n > 1 {
			lambda = float64(i) / float64(n-1)
		}

		phi := 2 * math.Pi * (h.Start/3 + h.Rotations*lambda)
		lg := math.Pow(lambda, h.Gamma)
		alpha := h.Hue * lg * (1 - lg) / 2

		cphi, sphi := math.Cos(phi), math.Sin(phi)

		p[i] = color.RGBA{
			R: channel(lg + alpha*(-0.14861*cphi+1.78277*sphi)),
			G: channel(lg + alpha*(-0.29227*cphi-0.90649*sphi)),
			B: channel(lg + alpha*(1.97294*cphi)),
			A: 0xff,
		}
	}
	return p
}

// channel converts an intensity in [0, 1] to 8 bits. The helix overshoots the
// unit cube slightly near the ends.
func channel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, v*255)))
}

// Brighten lifts dark values with a softplus shoulder: 0 stays 0, and the
// curve saturates towards 1 with steepness k/m.
func Brighten(x, m, k float64) float64 {
	x0 := -math.Log(math.Expm1(k / m))
	return 1 - (m/k)*math.Log1p(math.Exp(-k*x-x0))
}

// Sigmoid is a logistic curve centered on 0.5 with slope amount.
func Sigmoid(x, amount float64) float64 {
	return 1 / (1 + math.Exp(-(x-0.5)*amount))
}

// Intensity is the palette position of a 16-bit sample: brightened, passed
// through the contrast sigmoid, then square-rooted.
func Intensity(y uint16, amount float64) float64 {
	x := float64(y) / (1 << 16)
	return math.Sqrt(Sigmoid(Brighten(x, 2, 15), amount))
}

// Apply recolors src with a 256-entry CubeHelix palette. amount sets the
// contrast of the sigmoid.
func Apply(src *image.Gray16, amount float64) *image.Paletted {
	pal := DefaultHelix.Palette(256)
	b := src.Bounds()
	dst := image.NewPaletted(b, pal)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			idx := 255 * Intensity(src.Gray16At(x, y).Y, amount)
			// NaN fails the comparison and lands on 0.
			if !(idx > 0) {
				idx = 0
			}
			dst.SetColorIndex(x, y, uint8(math.Min(255, idx)))
		}
	}
	return dst
}
