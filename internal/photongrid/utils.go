package photongrid

import (
	"math"
	"math/cmplx"
)

type Real = float64

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// power returns |a|^2 without the sqrt of cmplx.Abs.
func power(a complex128) Real {
	re, im := real(a), imag(a)
	return re*re + im*im
}

// phasor returns exp(i*phi).
func phasor(phi Real) complex128 {
	if phi == 0 {
		return 1
	}
	return cmplx.Rect(1, phi)
}
