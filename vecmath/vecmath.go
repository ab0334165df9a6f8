// Package vecmath provides the float32 vector primitives used by the
// geometric loss math. On amd64 with AVX2 the binary-op and reduction
// primitives are swapped for SIMD implementations at init time; everywhere
// else the scalar fallbacks run.
package vecmath

import "math"

// Dot returns the dot product of a and b. Slices must have equal length.
var Dot func(a, b []float32) float32 = dotScalar

// Dist returns the Euclidean distance between a and b.
var Dist func(a, b []float32) float32 = distScalar

// AddInto stores a + b elementwise into dst.
var AddInto func(dst, a, b []float32) = addIntoScalar

// SubInto stores a - b elementwise into dst.
var SubInto func(dst, a, b []float32) = subIntoScalar

// Norm returns the Euclidean norm of a.
func Norm(a []float32) float32 {
	return float32(math.Sqrt(float64(Dot(a, a))))
}

// Axpy adds alpha*x to y in place.
func Axpy(alpha float32, x, y []float32) {
	for i := range y {
		y[i] += alpha * x[i]
	}
}

func dotScalar(a, b []float32) float32 {
	var s float32
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func distScalar(a, b []float32) float32 {
	var s float32
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return float32(math.Sqrt(float64(s)))
}

func addIntoScalar(dst, a, b []float32) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func subIntoScalar(dst, a, b []float32) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}
