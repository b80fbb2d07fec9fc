// Package histogram holds the per-pixel density accumulators of a render.
package histogram

import (
	"errors"
	"fmt"
	"math"
)

var ErrSizeMismatch = errors.New("histogram sizes differ")

// A Histogram is a dense Size x Size grid of non-negative accumulators,
// stored row-major. A Histogram is not safe for concurrent writes; each
// worker owns its own.
type Histogram struct {
	Size   int
	Values []float64
}

func New(size int) *Histogram {
	return &Histogram{
		Size:   size,
		Values: make([]float64, size*size),
	}
}

// Add deposits weight w into pixel (row, col). Non-positive and NaN weights
// are ignored so values never decrease.
func (h *Histogram) Add(row, col int, w float64) {
	if !(w > 0) {
		return
	}
	h.Values[row*h.Size+col] += w
}

func (h *Histogram) At(row, col int) float64 {
	return h.Values[row*h.Size+col]
}

// Total is the sum of every accumulator.
func (h *Histogram) Total() float64 {
	total := 0.0
	for _, v := range h.Values {
		total += v
	}
	return total
}

// MinMax returns the smallest and largest accumulator.
func (h *Histogram) MinMax() (lo, hi float64) {
	if len(h.Values) == 0 {
		return 0, 0
	}

	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range h.Values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// Sum adds hs element-wise into a new Histogram. With mirror set, each pixel
// also receives the value of the mirrored column (Size-1-col) of every input,
// folding the conjugate half of the plane onto itself.
//
// The result does not depend on the order of hs.
func Sum(mirror bool, hs ...*Histogram) (*Histogram, error) {
	if len(hs) == 0 {
		return nil, errors.New("no histograms to sum")
	}

	size := hs[0].Size
	for i, h := range hs {
		if h.Size != size {
			return nil, fmt.Errorf("%w: histogram %d is %d, want %d", ErrSizeMismatch, i, h.Size, size)
		}
	}

	out := New(size)
	for _, h := range hs {
		for i, v := range h.Values {
			out.Values[i] += v
		}
	}

	if !mirror {
		return out, nil
	}

	folded := New(size)
	for row := 0; row < size; row++ {
		base := row * size
		for col := 0; col < size; col++ {
			folded.Values[base+col] = out.Values[base+col] + out.Values[base+size-1-col]
		}
	}

	return folded, nil
}
