// Package trajectory runs escape-time orbits of the quadratic recurrence.
package trajectory

import "github.com/willbeason/buddhabrot/pkg/transforms"

// DefaultEscapeRadius2 is the squared escape radius. It is larger than the
// conventional 4 so escaping orbits are cut off a little later, keeping more
// of their tail inside the rendered window.
const DefaultEscapeRadius2 = 8.0

// Result is the outcome of one orbit.
//
// Time is the zero-based step at which the orbit first left the escape
// radius and is only meaningful when Escaped is true. Path holds the points
// visited before that step, which is what gets drawn.
type Result struct {
	Escaped bool
	Time    int
	Path    []complex128
}

// An Iterator runs the recurrence from z = 0 for at most Iterations steps.
type Iterator struct {
	Iterations    int
	EscapeRadius2 float64
	Recurrence    transforms.Mandelbrot
}

// New returns an Iterator for the classic set with the default radius.
func New(iterations int) Iterator {
	return Iterator{
		Iterations:    iterations,
		EscapeRadius2: DefaultEscapeRadius2,
	}
}

// Run iterates from seed c. The orbit is written into buf, which must hold at
// least it.Iterations points; the returned Path aliases buf.
func (it Iterator) Run(c complex128, buf []complex128) Result {
	buf = buf[:it.Iterations]

	z := complex(0, 0)
	for i := range buf {
		z = it.Recurrence.Next(z, c)
		buf[i] = z

		if transforms.Norm2(z) > it.EscapeRadius2 {
			return Result{Escaped: true, Time: i, Path: buf[:i]}
		}
	}

	return Result{}
}
