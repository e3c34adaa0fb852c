package drizzle

import (
	"image"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

const (
	// prescreenSamples is the maximum number of positions sampled along
	// a source row by the prescreen.
	prescreenSamples = 21

	// prescreenMargin is the number of destination cells by which the
	// writable area is extended when checking for overlap.
	prescreenMargin = 5
)

// rowOverlap estimates which part of source row j maps into the writable
// destination area, extended by margin cells on each side.
//
// The row is sampled at up to prescreenSamples positions, always
// including the last column. Two neighbouring samples are flagged if the
// bounding box of their images meets the extended area. The function
// returns the fraction of flagged samples together with the first and
// last flagged column. If frac is 0, the row can be skipped.
func (p *pass) rowOverlap(j, margin int) (frac float64, x1, x2 int) {
	width := p.data.Width
	if width <= 0 {
		return 0, 0, 0
	}

	step := 1
	if width >= prescreenSamples {
		step = width / (prescreenSamples / 2)
	}

	var cols [prescreenSamples + 1]int
	np := 0
	for i := 0; i < width; i += step {
		cols[np] = i
		np++
	}
	// The last column is always sampled, even if the loop reached it.
	// This also gives a single-column row one segment to test.
	cols[np] = width - 1
	np++

	var pts [prescreenSamples + 1]vec.Vec2
	for k := range np {
		pts[k] = p.m.MapPixel(cols[k], j)
	}

	area := rect.Rect{
		LLx: float64(p.x0 - margin),
		LLy: float64(p.y0 - margin),
		URx: float64(p.x1 + margin),
		URy: float64(p.y1 + margin),
	}

	var flagged [prescreenSamples + 1]bool
	for k := 0; k < np-1; k++ {
		a, b := pts[k], pts[k+1]
		if max(a.X, b.X) >= area.LLx && min(a.X, b.X) < area.URx &&
			max(a.Y, b.Y) >= area.LLy && min(a.Y, b.Y) < area.URy {
			flagged[k] = true
			flagged[k+1] = true
		}
	}

	hit := 0
	x1, x2 = -1, -1
	for k := range np {
		if !flagged[k] {
			continue
		}
		if x1 < 0 {
			x1 = cols[k]
		}
		x2 = cols[k]
		hit++
	}
	if hit == 0 {
		return 0, 0, 0
	}
	return float64(hit) / float64(np), x1, x2
}

// CheckOverlap reports whether a source image of the given size, mapped
// by m, can overlap the destination cells in dst. Only the image of the
// source border is examined, so the result is reliable for mappings which
// do not fold the image over itself.
//
// The result can be used to set [Drizzler.NoOverlap] when drizzling many
// images onto a small destination tile.
func CheckOverlap(m Mapping, width, height int, dst image.Rectangle) bool {
	if width <= 0 || height <= 0 || dst.Empty() {
		return false
	}

	bbox := rect.Rect{
		LLx: math.Inf(1), LLy: math.Inf(1),
		URx: math.Inf(-1), URy: math.Inf(-1),
	}
	extend := func(x, y float64) {
		q := m.MapPoint(vec.Vec2{X: x, Y: y})
		bbox.LLx = min(bbox.LLx, q.X)
		bbox.LLy = min(bbox.LLy, q.Y)
		bbox.URx = max(bbox.URx, q.X)
		bbox.URy = max(bbox.URy, q.Y)
	}

	// Walk the outer edges of the source pixels.
	left, right := -0.5, float64(width)-0.5
	bottom, top := -0.5, float64(height)-0.5
	for i := 0; i <= width; i++ {
		x := float64(i) - 0.5
		extend(x, bottom)
		extend(x, top)
	}
	for j := 0; j <= height; j++ {
		y := float64(j) - 0.5
		extend(left, y)
		extend(right, y)
	}

	// destination cell (x, y) covers [x-0.5, x+0.5]×[y-0.5, y+0.5]
	return bbox.URx > float64(dst.Min.X)-0.5 && bbox.LLx < float64(dst.Max.X)-0.5 &&
		bbox.URy > float64(dst.Min.Y)-0.5 && bbox.LLy < float64(dst.Max.Y)-0.5
}
