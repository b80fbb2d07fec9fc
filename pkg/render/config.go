package render

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/willbeason/buddhabrot/pkg/plane"
	"github.com/willbeason/buddhabrot/pkg/trajectory"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config describes one render.
type Config struct {
	// Size is the side length of the square image in pixels.
	Size int
	// Iterations caps the length of every orbit.
	Iterations int
	// Workers is the number of parallel workers, each owning a row stripe.
	Workers int
	// MaxSamples is the ceiling on trials per pixel cell.
	MaxSamples int

	// EscapeRadius2 is the squared escape radius. Zero means
	// trajectory.DefaultEscapeRadius2.
	EscapeRadius2 float64

	// Window is the region of the plane rendered. A zero Window means
	// plane.Default(Size).
	Window plane.Window

	// Mirror folds each pixel together with its conjugate column.
	Mirror bool

	// Seed returns the random seed for a worker. Nil means a fresh seed from
	// the clock and the system entropy source.
	Seed func(worker int) int64
}

// withDefaults fills in the zero-valued optional fields.
func (c Config) withDefaults() Config {
	if c.EscapeRadius2 == 0 {
		c.EscapeRadius2 = trajectory.DefaultEscapeRadius2
	}
	if c.Window == (plane.Window{}) {
		c.Window = plane.Default(c.Size)
	}
	if c.Seed == nil {
		c.Seed = EntropySeed
	}
	return c
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	c = c.withDefaults()

	var errs []error
	positive := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, name, v))
		}
	}
	positive("size", c.Size)
	positive("iterations", c.Iterations)
	positive("workers", c.Workers)
	positive("max samples", c.MaxSamples)

	if !(c.EscapeRadius2 > 0) || math.IsInf(c.EscapeRadius2, 1) {
		errs = append(errs, fmt.Errorf("%w: escape radius squared must be positive and finite, got %v", ErrInvalidConfig, c.EscapeRadius2))
	}

	if c.Size > 0 {
		if err := c.Window.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
		} else if c.Window.Size != c.Size {
			errs = append(errs, fmt.Errorf("%w: window is %d pixels, image is %d", ErrInvalidConfig, c.Window.Size, c.Size))
		}
		if c.Mirror && !c.Window.Symmetric() {
			errs = append(errs, fmt.Errorf("%w: mirroring needs a window symmetric about the real axis", ErrInvalidConfig))
		}
	}

	return errors.Join(errs...)
}

// EntropySeed mixes the wall clock, the worker index and system entropy so
// that every worker of every run draws an independent stream.
func EntropySeed(worker int) int64 {
	var b [8]byte
	// crypto/rand.Read never returns an error on supported platforms.
	_, _ = rand.Read(b[:])

	return time.Now().UnixNano() + int64(worker) + int64(binary.LittleEndian.Uint64(b[:]))
}
