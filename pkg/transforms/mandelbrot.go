package transforms

// Mandelbrot is the quadratic recurrence z <- z^2 + c.
//
// C is a constant offset added on every step. It is zero for the classic
// set; a non-zero C perturbs the whole family of orbits.
type Mandelbrot struct {
	C complex128
}

func (m Mandelbrot) Next(z complex128, c complex128) complex128 {
	return z*z + c + m.C
}

// Norm2 is the squared magnitude of z. Comparing against a squared radius
// avoids a square root per step.
func Norm2(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}
