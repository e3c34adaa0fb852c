package drizzle

import "math"

// LanczosTable tabulates the Lanczos kernel of the given order,
//
//	L(x) = sinc(x) sinc(x/order),  |x| < order,
//
// at the n points x = i*step, i = 0, ..., n-1. Entries beyond the kernel
// support are zero.
func LanczosTable(order, n int, step float64) []float32 {
	if n <= 0 {
		return nil
	}
	lut := make([]float32, n)
	lut[0] = 1

	forder := float64(order)
	for i := 1; i < n; i++ {
		x := math.Pi * float64(i) * step
		if x < math.Pi*forder {
			lut[i] = float32(math.Sin(x) / x * math.Sin(x/forder) / (x / forder))
		}
	}
	return lut
}
