package drizzle

import (
	"image"
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"
)

// edge is one side of a footprint polygon in scanline coordinates,
// where destination cell (x, y) covers [x, x+1)×[y, y+1).
type edge struct {
	x0, y0 float64 // start point
	x1, y1 float64 // end point
	dxdy   float64 // (x1-x0)/(y1-y0), precomputed for x-intercept calculation
}

// horizontalEdgeThreshold is the minimum vertical extent for an edge to
// contribute to coverage.
const horizontalEdgeThreshold = 1e-10

// footprint computes the exact area of a polygon inside each cell of a
// block of destination cells, one scanline at a time.
//
// For large footprints this is much cheaper than clipping the polygon
// against every cell separately, since the work per row is proportional
// to the number of edges plus the row width.
//
// Buffers grow as needed and are reused between calls. A footprint is not
// safe for concurrent use.
type footprint struct {
	edges []edge
	cover []float64 // signed vertical extent of edges per cell; reused as output
	area  []float64 // area right of the edges within each cell
}

// Coverage accumulation model:
//
// For each cell of a scanline, two values are tracked:
//   cover: signed vertical extent of edges crossing this cell column
//   area:  cover weighted by the fraction of the cell right of the crossing
//
// The area of the polygon inside cell i is then
//   |sum(cover[k], k < i) + area[i]|
// which is exact for straight edges.

// quad calls emit for every row of the block of cells which the
// quadrilateral q touches. Cells are centred on integer coordinates, i.e.
// cell (x, y) covers [x-0.5,x+0.5]×[y-0.5,y+0.5]. coverage[k] is the
// overlap area with cell (xMin+k, y); leading and trailing zeros are
// trimmed. The slice is only valid during the callback.
func (f *footprint) quad(q *[4]vec.Vec2, block image.Rectangle, emit func(y, xMin int, coverage []float64)) {
	if block.Empty() {
		return
	}
	xMin, xMax := block.Min.X, block.Max.X

	half := vec.Vec2{X: 0.5, Y: 0.5}
	f.edges = f.edges[:0]
	for k := range 4 {
		l := (k + 1) & 3
		f.addEdge(q[k].Add(half), q[l].Add(half))
	}
	if len(f.edges) == 0 {
		return // degenerate polygon
	}

	width := xMax - xMin
	f.cover = slices.Grow(f.cover[:0], width)[:width]
	f.area = slices.Grow(f.area[:0], width)[:width]

	for y := block.Min.Y; y < block.Max.Y; y++ {
		clear(f.cover)
		clear(f.area)

		touched := false
		for i := range f.edges {
			if f.accumulateEdge(&f.edges[i], y, xMin, xMax) {
				touched = true
			}
		}
		if !touched {
			continue
		}

		integrateScanline(f.cover, f.area)
		if trimmed, offset := trimZeros(f.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

// addEdge appends the edge p0-p1, skipping horizontal edges.
func (f *footprint) addEdge(p0, p1 vec.Vec2) {
	dy := p1.Y - p0.Y
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}
	f.edges = append(f.edges, edge{
		x0: p0.X, y0: p0.Y,
		x1: p1.X, y1: p1.Y,
		dxdy: (p1.X - p0.X) / dy,
	})
}

// accumulateEdge adds the part of e within scanline [y, y+1) to the cover
// and area buffers, which are indexed by x - xMin. Contributions left of
// xMin are folded into the first cell. It reports whether the edge
// intersects the scanline.
func (f *footprint) accumulateEdge(e *edge, y, xMin, xMax int) bool {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return false
	}

	// +1 for downward edges, -1 for upward
	sign := 1.0
	if e.y1 < e.y0 {
		sign = -1
	}

	xLeft := e.x0 + e.dxdy*(yTop-e.y0)
	xRight := e.x0 + e.dxdy*(yBot-e.y0)
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
	}
	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	if pixRight < xMin {
		c := sign * (yBot - yTop)
		f.cover[0] += c
		f.area[0] += c
		return true
	}
	if pixLeft >= xMax {
		return true
	}

	if pixLeft == pixRight {
		f.accumulateInColumn(e, yTop, yBot, sign, pixLeft, xMin, xMax)
		return true
	}

	// The edge spans several columns: split it at the column boundaries.
	dydx := 1 / e.dxdy
	for pix := pixLeft; pix <= pixRight; pix++ {
		yAtLeft := e.y0 + dydx*(float64(pix)-e.x0)
		yAtRight := e.y0 + dydx*(float64(pix+1)-e.x0)

		segYMin := max(min(yAtLeft, yAtRight), yTop)
		segYMax := min(max(yAtLeft, yAtRight), yBot)
		if segYMax <= segYMin {
			continue
		}
		f.accumulateInColumn(e, segYMin, segYMax, sign, pix, xMin, xMax)
	}
	return true
}

// accumulateInColumn handles the part of e between yTop and yBot, which
// lies within the single cell column pix.
func (f *footprint) accumulateInColumn(e *edge, yTop, yBot, sign float64, pix, xMin, xMax int) {
	c := sign * (yBot - yTop)

	if pix < xMin {
		f.cover[0] += c
		f.area[0] += c
		return
	}
	if pix >= xMax {
		return
	}

	yMid := (yTop + yBot) / 2
	xFrac := e.x0 + e.dxdy*(yMid-e.y0) - float64(pix)

	idx := pix - xMin
	f.cover[idx] += c
	f.area[idx] += c * (1 - xFrac)
}

// integrateScanline converts accumulated cover/area values into overlap
// areas, using the nonzero winding rule. The cover slice is overwritten
// with the result.
func integrateScanline(cover, area []float64) {
	var accum float64
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]
		cover[i] = min(math.Abs(raw), 1)
	}
}

// trimZeros returns the non-zero part of coverage and its offset, or
// nil if all values are zero.
func trimZeros(coverage []float64) (trimmed []float64, offset int) {
	n := len(coverage)
	lo := 0
	for lo < n && coverage[lo] == 0 {
		lo++
	}
	if lo == n {
		return nil, 0
	}
	hi := n - 1
	for hi > lo && coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}
