package drizzle

import (
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

func TestAffine(t *testing.T) {
	m := Affine(matrix.Scale(2, 3).Translate(1, -1))
	got := m.MapPixel(4, 5)
	want := vec.Vec2{X: 9, Y: 14}
	if got != want {
		t.Errorf("MapPixel(4, 5) = %v, want %v", got, want)
	}
	if got := m.MapPoint(vec.Vec2{X: 0.5, Y: -0.5}); got != (vec.Vec2{X: 2, Y: -2.5}) {
		t.Errorf("MapPoint = %v", got)
	}
}

func TestMapFunc(t *testing.T) {
	f := MapFunc(func(p vec.Vec2) vec.Vec2 {
		return vec.Vec2{X: p.Y, Y: -p.X}
	})
	if got := f.MapPixel(2, 7); got != (vec.Vec2{X: 7, Y: -2}) {
		t.Errorf("MapPixel(2, 7) = %v", got)
	}
}

// TestPixmapAffine checks that a tabulated affine mapping is reproduced
// exactly, both between and outside the tabulated pixel centres.
func TestPixmapAffine(t *testing.T) {
	m := Affine(matrix.Matrix{1, 0, 0.3, 1, 0, 0}.RotateDeg(20).Translate(7, 3))
	p := NewPixmap(m, 5, 4)

	for y := range 4 {
		for x := range 5 {
			if got, want := p.MapPixel(x, y), m.MapPixel(x, y); got != want {
				t.Errorf("MapPixel(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}

	points := []vec.Vec2{
		{X: 0.5, Y: 0.5},
		{X: 2.25, Y: 1.75},
		{X: 3.5, Y: 2.5},
		{X: -0.5, Y: -0.5},
		{X: 4.5, Y: 3.5},
		{X: 10, Y: -3},
	}
	for _, q := range points {
		got := p.MapPoint(q)
		want := m.MapPoint(q)
		if got.Sub(want).Length() > 1e-9 {
			t.Errorf("MapPoint(%v) = %v, want %v", q, got, want)
		}
	}
}

func TestPixmapSingleColumn(t *testing.T) {
	m := Affine(matrix.Identity.Translate(2, 2))
	p := NewPixmap(m, 1, 3)
	got := p.MapPoint(vec.Vec2{X: 0, Y: 1.5})
	want := vec.Vec2{X: 2, Y: 3.5}
	if got.Sub(want).Length() > 1e-12 {
		t.Errorf("got %v, want %v", got, want)
	}
}
