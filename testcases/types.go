package testcases

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// TestCase defines a single drizzling scenario.
//
// Map takes source pixel centres to destination coordinates, where
// destination cell (i, j) is centred at (i, j). All cases are chosen so
// that every projected source pixel lies well inside the destination.
type TestCase struct {
	Name      string        // lowercase a-z, 0-9 and _ only
	Width     int           // source width in pixels
	Height    int           // source height in pixels
	OutWidth  int           // destination width in cells
	OutHeight int           // destination height in cells
	Map       matrix.Matrix // source to destination mapping
	Scale     float64       // destination pixel size in source pixels
	PixFrac   float64       // pixel fraction
}

// Sample returns the value of source pixel (x, y). The pattern is fixed,
// so that results can be compared between runs.
func (tc TestCase) Sample(x, y int) float32 {
	return 1 + float32((7*x+13*y)%10)/10
}

// Apply maps a source point to destination coordinates.
func (tc TestCase) Apply(p vec.Vec2) vec.Vec2 {
	m := tc.Map
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Footprint returns the outline of source pixel (x, y), shrunk by the
// pixel fraction and mapped to destination coordinates.
func (tc TestCase) Footprint(x, y int) path.Path {
	dh := tc.PixFrac / 2
	fx, fy := float64(x), float64(y)
	corners := [4]vec.Vec2{
		tc.Apply(pt(fx-dh, fy+dh)),
		tc.Apply(pt(fx+dh, fy+dh)),
		tc.Apply(pt(fx+dh, fy-dh)),
		tc.Apply(pt(fx-dh, fy-dh)),
	}
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if !yield(path.CmdMoveTo, corners[:1]) {
			return
		}
		for k := 1; k < 4; k++ {
			if !yield(path.CmdLineTo, corners[k:k+1]) {
				return
			}
		}
		yield(path.CmdClose, nil)
	}
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// centred returns the translation which moves the centre of a source
// image of size w×h to the origin.
func centred(w, h int) matrix.Matrix {
	return matrix.Matrix{1, 0, 0, 1, -float64(w-1) / 2, -float64(h-1) / 2}
}
