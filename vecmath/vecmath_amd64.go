//go:build !noasm && amd64

package vecmath

import "github.com/klauspost/cpuid/v2"
import "github.com/viterin/vek/vek32"

func init() {
	// vek's acceleration kicks in from AVX2 upward
	if cpuid.CPU.Supports(cpuid.AVX2) {
		Dot = vek32.Dot
		Dist = vek32.Distance
		AddInto = func(dst, a, b []float32) { vek32.Add_Into(dst, a, b) }
		SubInto = func(dst, a, b []float32) { vek32.Sub_Into(dst, a, b) }
	}
}
