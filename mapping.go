package drizzle

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Mapping is the forward geometric transformation from source pixel
// coordinates to destination coordinates.
//
// Both coordinate systems place the centre of pixel (i, j) at (i, j).
type Mapping interface {
	// MapPixel returns the destination position of the centre of source
	// pixel (x, y).
	MapPixel(x, y int) vec.Vec2

	// MapPoint returns the destination position of an arbitrary point
	// in source coordinates.
	MapPoint(p vec.Vec2) vec.Vec2
}

// Affine is a Mapping given by an affine transformation matrix, using the
// same convention as the rest of seehuhn.de/go/geom:
//
//	x' = M[0]*x + M[2]*y + M[4]
//	y' = M[1]*x + M[3]*y + M[5]
type Affine matrix.Matrix

// MapPixel implements the [Mapping] interface.
func (a Affine) MapPixel(x, y int) vec.Vec2 {
	return a.MapPoint(vec.Vec2{X: float64(x), Y: float64(y)})
}

// MapPoint implements the [Mapping] interface.
func (a Affine) MapPoint(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: a[0]*p.X + a[2]*p.Y + a[4],
		Y: a[1]*p.X + a[3]*p.Y + a[5],
	}
}

// MapFunc adapts an ordinary function to the Mapping interface.
type MapFunc func(p vec.Vec2) vec.Vec2

// MapPixel implements the [Mapping] interface.
func (f MapFunc) MapPixel(x, y int) vec.Vec2 {
	return f(vec.Vec2{X: float64(x), Y: float64(y)})
}

// MapPoint implements the [Mapping] interface.
func (f MapFunc) MapPoint(p vec.Vec2) vec.Vec2 {
	return f(p)
}

// Pixmap is a Mapping stored as a table of destination positions, one per
// source pixel. Positions between pixel centres are found by bilinear
// interpolation; outside the table the outermost cells are extrapolated.
type Pixmap struct {
	// Pos[y*Width+x] is the destination position of source pixel (x, y).
	Pos    []vec.Vec2
	Width  int
	Height int
}

// NewPixmap tabulates m over a source image of the given size.
func NewPixmap(m Mapping, width, height int) *Pixmap {
	p := &Pixmap{
		Pos:    make([]vec.Vec2, width*height),
		Width:  width,
		Height: height,
	}
	for y := range height {
		for x := range width {
			p.Pos[y*width+x] = m.MapPixel(x, y)
		}
	}
	return p
}

// MapPixel implements the [Mapping] interface.
func (p *Pixmap) MapPixel(x, y int) vec.Vec2 {
	return p.Pos[y*p.Width+x]
}

// MapPoint implements the [Mapping] interface.
func (p *Pixmap) MapPoint(q vec.Vec2) vec.Vec2 {
	i0 := interpCell(q.X, p.Width)
	j0 := interpCell(q.Y, p.Height)
	i1 := min(i0+1, p.Width-1)
	j1 := min(j0+1, p.Height-1)
	fx := q.X - float64(i0)
	fy := q.Y - float64(j0)

	p00 := p.Pos[j0*p.Width+i0]
	p10 := p.Pos[j0*p.Width+i1]
	p01 := p.Pos[j1*p.Width+i0]
	p11 := p.Pos[j1*p.Width+i1]

	lo := p00.Add(p10.Sub(p00).Mul(fx))
	hi := p01.Add(p11.Sub(p01).Mul(fx))
	return lo.Add(hi.Sub(lo).Mul(fy))
}

// interpCell returns the lower grid index used to interpolate at t, for a
// table of n entries. Points outside the table use the outermost interval.
func interpCell(t float64, n int) int {
	if n < 2 {
		return 0
	}
	i := int(math.Floor(t))
	return max(0, min(i, n-2))
}
