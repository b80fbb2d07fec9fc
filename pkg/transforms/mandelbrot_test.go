package transforms

import "testing"

func TestMandelbrot_Next(t *testing.T) {
	tcs := []struct {
		name string
		m    Mandelbrot
		z, c complex128
		want complex128
	}{
		{name: "origin", z: 0, c: 0, want: 0},
		{name: "first step is c", z: 0, c: complex(-0.5, 0.25), want: complex(-0.5, 0.25)},
		{name: "i squared", z: complex(0, 1), c: 0, want: -1},
		{name: "offset", m: Mandelbrot{C: 1}, z: 2, c: 1, want: 6},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.m.Next(tc.z, tc.c)
			if got != tc.want {
				t.Errorf("Next(%v, %v) = %v, want %v", tc.z, tc.c, got, tc.want)
			}
		})
	}
}

func TestNorm2(t *testing.T) {
	if got := Norm2(complex(3, 4)); got != 25 {
		t.Errorf("Norm2(3+4i) = %v, want 25", got)
	}
	if got := Norm2(complex(-2, 0)); got != 4 {
		t.Errorf("Norm2(-2) = %v, want 4", got)
	}
}
