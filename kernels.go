package drizzle

import (
	"image"
	"math"

	"seehuhn.de/go/geom/vec"
)

// pass holds everything needed to drizzle one source image. It is set up
// by [Drizzler.Add] and lives only for the duration of that call.
type pass struct {
	acc     *Accumulator
	data    *Grid
	weights *Grid // may be nil
	m       Mapping
	kernel  Kernel

	// destination cells [x0,x1)×[y0,y1) may be written
	x0, x1, y0, y1 int

	bit         contextBit
	pixFrac     float64
	weightScale float64
	scale2      float64 // squared scale
	ac          float64 // area correction, 1/pixFrac²
	pfo, pfo2   float64 // kernel half-width on the destination grid

	// Gaussian
	efac, es float64

	// Lanczos
	lut []float32
	sdp float64 // table entries per destination pixel

	fp          footprint
	fpThreshold int
}

// value returns the source sample (i, j), corrected for the change of
// pixel area.
func (p *pass) value(i, j int) float32 {
	return p.data.Pix[j*p.data.Width+i] * float32(p.scale2)
}

// weight returns the weight of source pixel (i, j).
func (p *pass) weight(i, j int) float64 {
	if p.weights == nil {
		return 1
	}
	return float64(p.weights.Pix[j*p.weights.Width+i]) * p.weightScale
}

// box returns the range of destination cells whose centres are within
// half of q, clipped to the writable cells. The range is empty if lo > hi.
func (p *pass) box(q vec.Vec2, half float64) (iLo, iHi, jLo, jHi int) {
	iLo = max(round(q.X-half), p.x0)
	iHi = min(round(q.X+half), p.x1-1)
	jLo = max(round(q.Y-half), p.y0)
	jHi = min(round(q.Y+half), p.y1-1)
	return
}

// round rounds half away from zero.
func round(x float64) int {
	return int(math.Round(x))
}

// row drizzles source pixels i1, ..., i2 of row j and returns the number
// of pixels which did not reach any destination cell.
func (p *pass) row(j, i1, i2 int) int {
	switch p.kernel {
	case Square:
		return p.squareRow(j, i1, i2)
	case Gaussian:
		return p.gaussianRow(j, i1, i2)
	case Point:
		return p.pointRow(j, i1, i2)
	case Tophat:
		return p.tophatRow(j, i1, i2)
	case Turbo:
		return p.turboRow(j, i1, i2)
	case Lanczos2, Lanczos3:
		return p.lanczosRow(j, i1, i2)
	default:
		panic("unreachable")
	}
}

func (p *pass) pointRow(j, i1, i2 int) int {
	miss := 0
	for i := i1; i <= i2; i++ {
		q := p.m.MapPixel(i, j)
		ii := round(q.X)
		jj := round(q.Y)
		if ii < p.x0 || ii >= p.x1 || jj < p.y0 || jj >= p.y1 {
			miss++
			continue
		}
		p.acc.add(ii, jj, p.value(i, j), float32(p.weight(i, j)), p.bit)
	}
	return miss
}

// tophatRow adds each pixel with its full weight to every cell whose
// centre lies within pfo of the mapped pixel centre.
func (p *pass) tophatRow(j, i1, i2 int) int {
	miss := 0
	for i := i1; i <= i2; i++ {
		q := p.m.MapPixel(i, j)
		iLo, iHi, jLo, jHi := p.box(q, p.pfo)
		d := p.value(i, j)
		dow := float32(p.weight(i, j))

		hit := 0
		for jj := jLo; jj <= jHi; jj++ {
			dy := q.Y - float64(jj)
			for ii := iLo; ii <= iHi; ii++ {
				dx := q.X - float64(ii)
				if dx*dx+dy*dy > p.pfo2 {
					continue
				}
				hit++
				p.acc.add(ii, jj, d, dow, p.bit)
			}
		}
		if hit == 0 {
			miss++
		}
	}
	return miss
}

func (p *pass) gaussianRow(j, i1, i2 int) int {
	miss := 0
	for i := i1; i <= i2; i++ {
		q := p.m.MapPixel(i, j)
		iLo, iHi, jLo, jHi := p.box(q, p.pfo)
		d := p.value(i, j)
		w := p.weight(i, j)

		hit := 0
		for jj := jLo; jj <= jHi; jj++ {
			dy := q.Y - float64(jj)
			for ii := iLo; ii <= iHi; ii++ {
				dx := q.X - float64(ii)
				dover := p.es * math.Exp(-(dx*dx+dy*dy)*p.efac)
				hit++
				p.acc.add(ii, jj, d, float32(dover*w), p.bit)
			}
		}
		if hit == 0 {
			miss++
		}
	}
	return miss
}

// lanczosRow weights cells by the product of the tabulated kernel at the
// horizontal and vertical distance from the mapped pixel centre.
// Distances beyond the table get weight zero. The kernel has negative
// lobes, so individual weights may be negative.
func (p *pass) lanczosRow(j, i1, i2 int) int {
	miss := 0
	for i := i1; i <= i2; i++ {
		q := p.m.MapPixel(i, j)
		iLo, iHi, jLo, jHi := p.box(q, p.pfo)
		d := p.value(i, j)
		w := p.weight(i, j)

		hit := 0
		for jj := jLo; jj <= jHi; jj++ {
			ly := p.lanczos(q.Y - float64(jj))
			for ii := iLo; ii <= iHi; ii++ {
				dover := float64(p.lanczos(q.X-float64(ii)) * ly)
				hit++
				p.acc.add(ii, jj, d, float32(dover*w), p.bit)
			}
		}
		if hit == 0 {
			miss++
		}
	}
	return miss
}

// lanczos looks up the kernel value at destination distance t.
func (p *pass) lanczos(t float64) float32 {
	k := round(math.Abs(t) * p.sdp)
	if k >= len(p.lut) {
		return 0
	}
	return p.lut[k]
}

// turboRow approximates the projected pixel by an axis-aligned square of
// side 2*pfo around the mapped centre.
func (p *pass) turboRow(j, i1, i2 int) int {
	miss := 0
	for i := i1; i <= i2; i++ {
		q := p.m.MapPixel(i, j)
		xMin, xMax := q.X-p.pfo, q.X+p.pfo
		yMin, yMax := q.Y-p.pfo, q.Y+p.pfo
		iLo, iHi, jLo, jHi := p.box(q, p.pfo)
		d := p.value(i, j)
		w := p.weight(i, j)

		hit := 0
		for jj := jLo; jj <= jHi; jj++ {
			for ii := iLo; ii <= iHi; ii++ {
				dover := rectOverlapArea(ii, jj, xMin, xMax, yMin, yMax)
				if dover <= 0 {
					continue
				}
				dover *= p.scale2 * p.ac
				hit++
				p.acc.add(ii, jj, d, float32(dover*w), p.bit)
			}
		}
		if hit == 0 {
			miss++
		}
	}
	return miss
}

// squareRow projects the corners of each shrunken source pixel and
// distributes the pixel over the exact overlap of the resulting
// quadrilateral with the destination cells.
//
// Small footprints are clipped against each cell separately. For
// footprints covering at least fpThreshold cells, the scanline coverage
// computation is used instead.
func (p *pass) squareRow(j, i1, i2 int) int {
	dh := 0.5 * p.pixFrac
	yTop := float64(j) + dh
	yBot := float64(j) - dh

	miss := 0
	var q [4]vec.Vec2
	for i := i1; i <= i2; i++ {
		xl := float64(i) - dh
		xr := float64(i) + dh
		corners := [4]vec.Vec2{
			{X: xl, Y: yTop},
			{X: xr, Y: yTop},
			{X: xr, Y: yBot},
			{X: xl, Y: yBot},
		}
		for k, c := range corners {
			q[k] = p.m.MapPoint(c)
		}

		// signed area of the projected quadrilateral
		jaco := 0.5 * ((q[1].X-q[3].X)*(q[0].Y-q[2].Y) - (q[0].X-q[2].X)*(q[1].Y-q[3].Y))
		if jaco < 0 {
			jaco = -jaco
			q[1], q[3] = q[3], q[1]
		}
		if jaco == 0 {
			miss++
			continue
		}

		lo, hi := quadBounds(&q)
		iLo := max(round(lo.X), p.x0)
		iHi := min(round(hi.X), p.x1-1)
		jLo := max(round(lo.Y), p.y0)
		jHi := min(round(hi.Y), p.y1-1)
		if iLo > iHi || jLo > jHi {
			miss++
			continue
		}

		d := p.value(i, j)
		w := p.weight(i, j)

		hit := 0
		if (iHi-iLo+1)*(jHi-jLo+1) >= p.fpThreshold {
			block := image.Rect(iLo, jLo, iHi+1, jHi+1)
			p.fp.quad(&q, block, func(jj, iStart int, coverage []float64) {
				for k, dover := range coverage {
					if dover <= 0 {
						continue
					}
					hit++
					p.acc.add(iStart+k, jj, d, float32(dover/jaco*w), p.bit)
				}
			})
		} else {
			for jj := jLo; jj <= jHi; jj++ {
				for ii := iLo; ii <= iHi; ii++ {
					c := vec.Vec2{X: float64(ii), Y: float64(jj)}
					dover := quadOverlapArea(c, &q)
					if dover <= 0 {
						continue
					}
					hit++
					p.acc.add(ii, jj, d, float32(dover/jaco*w), p.bit)
				}
			}
		}
		if hit == 0 {
			miss++
		}
	}
	return miss
}

// quadBounds returns the corners of the axis-aligned bounding box of q.
func quadBounds(q *[4]vec.Vec2) (lo, hi vec.Vec2) {
	lo, hi = q[0], q[0]
	for _, c := range q[1:] {
		lo.X = min(lo.X, c.X)
		lo.Y = min(lo.Y, c.Y)
		hi.X = max(hi.X, c.X)
		hi.Y = max(hi.Y, c.Y)
	}
	return lo, hi
}
