package drizzle

import "seehuhn.de/go/geom/vec"

// segmentArea returns the signed area between the segment (x1,y1)-(x2,y2)
// and the x-axis, restricted to the unit square [0,1]×[0,1].
//
// Segments running left to right give a positive area, segments running
// right to left a negative one. Summing over the edges of a clockwise
// polygon (with y pointing up) therefore yields the area of the polygon
// inside the unit square.
func segmentArea(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	if dx == 0 {
		return 0 // vertical segments enclose nothing
	}
	dy := y2 - y1

	negdx := dx < 0
	xlo, xhi := x1, x2
	if negdx {
		xlo, xhi = x2, x1
	}

	// bounds ignoring y for now
	if xlo >= 1 || xhi <= 0 {
		return 0
	}
	xlo = max(xlo, 0)
	xhi = min(xhi, 1)

	m := dy / dx
	c := y1 - m*x1
	ylo := m*xlo + c
	yhi := m*xhi + c

	if ylo <= 0 && yhi <= 0 {
		return 0 // entirely below the axis
	}

	// Exclude the part of the segment below the axis.
	if ylo < 0 {
		ylo = 0
		xlo = -c / m
	}
	if yhi < 0 {
		yhi = 0
		xhi = -c / m
	}

	var area float64
	switch {
	case ylo >= 1 && yhi >= 1:
		// above the square: full-height rectangle
		area = xhi - xlo
	case ylo <= 1 && yhi <= 1:
		// inside the square: trapezoid
		area = 0.5 * (xhi - xlo) * (yhi + ylo)
	case ylo <= 1:
		// leaves through the top edge
		xtop := (1 - c) / m
		area = 0.5*(xtop-xlo)*(1+ylo) + xhi - xtop
	default:
		// enters through the top edge
		xtop := (1 - c) / m
		area = 0.5*(xhi-xtop)*(1+yhi) + xtop - xlo
	}

	if negdx {
		return -area
	}
	return area
}

// quadOverlapArea returns the area common to the clockwise quadrilateral q
// and the unit cell centred at c.
func quadOverlapArea(c vec.Vec2, q *[4]vec.Vec2) float64 {
	// Shift to coordinates relative to the unit square at the origin.
	origin := c.Sub(vec.Vec2{X: 0.5, Y: 0.5})

	var rel [4]vec.Vec2
	for k := range 4 {
		rel[k] = q[k].Sub(origin)
	}

	var sum float64
	for k := range 4 {
		l := (k + 1) & 3
		sum += segmentArea(rel[k].X, rel[k].Y, rel[l].X, rel[l].Y)
	}
	return sum
}

// rectOverlapArea returns the area common to the axis-aligned rectangle
// [xMin,xMax]×[yMin,yMax] and the unit cell centred at (i, j).
// The caller must ensure xMin <= xMax and yMin <= yMax.
func rectOverlapArea(i, j int, xMin, xMax, yMin, yMax float64) float64 {
	dx := min(xMax, float64(i)+0.5) - max(xMin, float64(i)-0.5)
	dy := min(yMax, float64(j)+0.5) - max(yMin, float64(j)-0.5)
	if dx > 0 && dy > 0 {
		return dx * dy
	}
	return 0
}
