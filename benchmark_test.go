package drizzle

import (
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
	"testing"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/drizzle/testcases"
)

// BenchmarkKernels drizzles a rotated 200x200 image with every kernel.
func BenchmarkKernels(b *testing.B) {
	const size = 200
	rng := rand.New(rand.NewPCG(1, 1))
	src := randomGrid(rng, size, size, 0, 1)
	m := Affine(matrix.Matrix{1, 0, 0, 1, -size / 2, -size / 2}.RotateDeg(10).Translate(160, 160))

	for _, k := range allKernels {
		b.Run(k.String(), func(b *testing.B) {
			d := NewDrizzler()
			d.Kernel = k
			acc := NewAccumulator(320, 320, true)

			b.ReportAllocs()
			for b.Loop() {
				if _, err := d.Add(acc, src, nil, m); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkSquareFootprint compares the two ways of computing square
// kernel overlaps, for increasing magnification.
func BenchmarkSquareFootprint(b *testing.B) {
	rng := rand.New(rand.NewPCG(2, 2))
	src := randomGrid(rng, 40, 40, 0, 1)

	for _, mag := range []float64{1, 2, 4, 8} {
		m := Affine(matrix.Scale(mag, mag).RotateDeg(20).Translate(30*mag, 10*mag))
		outSize := int(60 * mag)
		for _, strategy := range []struct {
			name      string
			threshold int
		}{
			{"cells", 1 << 30},
			{"scanline", 1},
		} {
			b.Run(fmt.Sprintf("%gx/%s", mag, strategy.name), func(b *testing.B) {
				d := NewDrizzler()
				d.Scale = 1 / mag
				d.footprintThreshold = strategy.threshold
				acc := NewAccumulator(outSize, outSize, false)

				for b.Loop() {
					if _, err := d.Add(acc, src, nil, m); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

// BenchmarkWorkers measures band parallelism on a large image.
func BenchmarkWorkers(b *testing.B) {
	const size = 500
	rng := rand.New(rand.NewPCG(3, 3))
	src := randomGrid(rng, size, size, 0, 1)
	m := Affine(matrix.Identity.Translate(0.3, 0.6))

	for _, workers := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			d := NewDrizzler()
			d.Workers = workers
			acc := NewAccumulator(size+1, size+1, false)

			for b.Loop() {
				if _, err := d.Add(acc, src, nil, m); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkAll measures steady-state performance by reusing a single
// Drizzler and accumulator per test case.
func BenchmarkAll(b *testing.B) {
	var cases []testcases.TestCase
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		cases = append(cases, testcases.All[category]...)
	}

	srcs := make([]*Grid, len(cases))
	accs := make([]*Accumulator, len(cases))
	for i, tc := range cases {
		srcs[i] = sourceGrid(tc)
		accs[i] = NewAccumulator(tc.OutWidth, tc.OutHeight, false)
	}

	d := NewDrizzler()
	b.ResetTimer()
	for b.Loop() {
		for i, tc := range cases {
			d.Scale = tc.Scale
			d.PixFrac = tc.PixFrac
			if _, err := d.Add(accs[i], srcs[i], nil, Affine(tc.Map)); err != nil {
				b.Fatal(err)
			}
		}
	}
}
