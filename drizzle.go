// Package drizzle implements flux-conserving resampling ("drizzling") of
// sampled images onto a destination grid.
//
// Each source pixel is shrunk by a pixel fraction, mapped onto the
// destination grid, and its value is distributed over the destination
// cells it touches, using one of several kernels. Many dithered source
// images can be combined by adding them one after another to the same
// [Accumulator].
package drizzle

//go:generate go run ./testcases/export

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"
	"sync"
)

const (
	// sincTableSize and sincTableStep describe the lookup table used by
	// the windowed-sinc kernels.
	sincTableSize = 512
	sincTableStep = 0.01

	// defaultFootprintThreshold is the number of destination cells above
	// which the square kernel switches to scanline coverage.
	defaultFootprintThreshold = 16
)

// Drizzler holds the parameters for drizzling source images onto an
// [Accumulator]. The zero value is not usable; use [NewDrizzler] to get a
// Drizzler with default settings and adjust the fields as needed.
//
// A Drizzler can be reused for any number of images, but it is not safe
// for concurrent use.
type Drizzler struct {
	// Kernel selects how source pixels are spread over destination cells.
	Kernel Kernel

	// PixFrac is the factor by which source pixels are shrunk before
	// being mapped. Must be non-zero.
	PixFrac float64

	// Scale is the size of a destination pixel in units of source
	// pixels, e.g. 0.5 when the destination grid is twice as fine.
	// Must be non-zero.
	Scale float64

	// Units gives the units of the source samples. Counts are converted
	// to rates by dividing the source grid in place by ExposureTime.
	Units        Units
	ExposureTime float64

	// ID identifies the source image in the context grid. IDs start at 1.
	ID int

	// WeightScale multiplies all values of the weight grid.
	WeightScale float64

	// Bounds restricts drizzling to a subset of the destination cells.
	// The empty rectangle selects the whole accumulator.
	Bounds image.Rectangle

	// NoOverlap can be set if it is known that the source image does not
	// overlap the destination (see [CheckOverlap]). The image is then
	// counted as missed without looking at it.
	NoOverlap bool

	// SincTable builds the lookup table for the windowed-sinc kernels.
	// If nil, [LanczosTable] is used.
	SincTable func(order, n int, step float64) []float32

	// Workers is the number of goroutines used for a single image.
	// Values below 2 process all rows on the calling goroutine.
	Workers int

	footprintThreshold int
}

// NewDrizzler returns a Drizzler using the square kernel, pixel fraction
// and scale 1, rate units and contributor ID 1.
func NewDrizzler() *Drizzler {
	return &Drizzler{
		Kernel:       Square,
		PixFrac:      1,
		Scale:        1,
		Units:        Rate,
		ExposureTime: 1,
		ID:           1,
		WeightScale:  1,
	}
}

// Stats summarises a call to [Drizzler.Add].
type Stats struct {
	// Missed is the number of source pixels which did not contribute to
	// any destination cell.
	Missed int

	// Skipped is the number of source rows which were not examined
	// because they do not overlap the destination.
	Skipped int
}

// Add drizzles the source image data onto acc, using the mapping m from
// source pixel coordinates to destination coordinates. If weights is
// non-nil, it must have the same size as data and gives a weight for every
// source pixel. A [*Pixmap] mapping must have the same size as data, too.
//
// If d.Units is Counts, data is divided by the exposure time in place.
//
// Errors wrap one of the Err* values of this package. If an error is
// returned, acc is unchanged.
func (d *Drizzler) Add(acc *Accumulator, data, weights *Grid, m Mapping) (Stats, error) {
	if data == nil {
		return Stats{}, fmt.Errorf("%w: missing source grid", ErrShape)
	}
	if d.NoOverlap {
		return Stats{
			Missed:  data.Width * data.Height,
			Skipped: data.Height,
		}, nil
	}

	p, err := d.newPass(acc, data, weights, m)
	if err != nil {
		return Stats{}, err
	}
	defer p.release()

	if !p.kernel.valid() {
		return Stats{}, fmt.Errorf("%w %d", ErrInvalidKernel, int(p.kernel))
	}

	if d.Units != Rate {
		if d.ExposureTime == 0 {
			return Stats{}, ErrInvalidExposureTime
		}
		data.scale(float32(1 / d.ExposureTime))
	}

	logger := Logger()
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		logger.Debug("drizzling",
			"kernel", p.kernel,
			"width", data.Width,
			"height", data.Height,
			"bounds", image.Rect(p.x0, p.y0, p.x1, p.y1),
			"id", d.ID)
	}

	if acc.Context != nil {
		acc.Context.grow(p.bit.word + 1)
	}

	var stats Stats
	if d.Workers > 1 && data.Height > 1 {
		stats = p.runBands(d.Workers)
	} else {
		stats = p.run(0, data.Height)
	}

	logger.Debug("drizzled", "missed", stats.Missed, "skipped", stats.Skipped)
	return stats, nil
}

// newPass validates the parameters and derives the per-call constants.
func (d *Drizzler) newPass(acc *Accumulator, data, weights *Grid, m Mapping) (*pass, error) {
	if d.PixFrac == 0 {
		return nil, ErrInvalidPixFrac
	}
	if d.Scale == 0 {
		return nil, ErrInvalidScale
	}
	if d.ID < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidID, d.ID)
	}
	if err := acc.check(); err != nil {
		return nil, err
	}
	if weights != nil && !weights.sameSize(data) {
		return nil, fmt.Errorf("%w: weights are %dx%d, data is %dx%d", ErrShape,
			weights.Width, weights.Height, data.Width, data.Height)
	}

	if pm, ok := m.(*Pixmap); ok {
		if pm.Width != data.Width || pm.Height != data.Height || len(pm.Pos) != pm.Width*pm.Height {
			return nil, fmt.Errorf("%w: pixmap is %dx%d, data is %dx%d", ErrShape,
				pm.Width, pm.Height, data.Width, data.Height)
		}
	}

	full := image.Rect(0, 0, acc.Width(), acc.Height())
	bounds := d.Bounds
	if bounds.Empty() {
		bounds = full
	} else if !bounds.In(full) {
		return nil, fmt.Errorf("%w: %v not in %v", ErrInvalidBounds, bounds, full)
	}

	p := &pass{
		acc:         acc,
		data:        data,
		weights:     weights,
		m:           m,
		kernel:      d.Kernel,
		x0:          bounds.Min.X,
		x1:          bounds.Max.X,
		y0:          bounds.Min.Y,
		y1:          bounds.Max.Y,
		bit:         newContextBit(d.ID),
		pixFrac:     d.PixFrac,
		weightScale: d.WeightScale,
		scale2:      d.Scale * d.Scale,
		ac:          1 / (d.PixFrac * d.PixFrac),
		pfo:         d.PixFrac / d.Scale / 2,
		fpThreshold: d.footprintThreshold,
	}
	if p.fpThreshold <= 0 {
		p.fpThreshold = defaultFootprintThreshold
	}

	switch d.Kernel {
	case Gaussian:
		const fwhm = 2.3548 // FWHM of the unit normal distribution
		const nsig = 2.5
		p.efac = fwhm * fwhm * p.scale2 * p.ac / 2
		p.es = p.efac / math.Pi
		// never less than 1.2 destination pixels, to avoid holes
		p.pfo = max(nsig*d.PixFrac/fwhm/d.Scale, 1.2/d.Scale)
	case Lanczos2, Lanczos3:
		build := d.SincTable
		if build == nil {
			build = LanczosTable
		}
		order := d.Kernel.order()
		p.lut = build(order, sincTableSize, sincTableStep)
		if len(p.lut) != sincTableSize {
			return nil, fmt.Errorf("%w: cannot build %s table", ErrOutOfMemory, d.Kernel)
		}
		p.pfo = float64(order) * d.PixFrac / d.Scale
		p.sdp = d.Scale / sincTableStep / d.PixFrac
	}
	p.pfo2 = p.pfo * p.pfo

	return p, nil
}

// release drops the kernel lookup table.
func (p *pass) release() {
	p.lut = nil
}

// run drizzles source rows j0, ..., j1-1.
func (p *pass) run(j0, j1 int) Stats {
	var stats Stats
	width := p.data.Width
	for j := j0; j < j1; j++ {
		frac, x1, x2 := p.rowOverlap(j, prescreenMargin)
		if frac == 0 {
			stats.Skipped++
			stats.Missed += width
			continue
		}
		stats.Missed += width - (x2 - x1 + 1)
		stats.Missed += p.row(j, x1, x2)
	}
	return stats
}

// runBands splits the source rows into contiguous bands, drizzles each
// band into a private accumulator on its own goroutine, and merges the
// results into p.acc once all bands are done.
//
// For non-negative weights the result equals sequential processing up to
// rounding. Where negative weights cancel within a band, the weighted sum
// of that band is lost.
func (p *pass) runBands(workers int) Stats {
	height := p.data.Height
	workers = min(workers, height)
	bandSize := (height + workers - 1) / workers

	type band struct {
		acc   *Accumulator
		stats Stats
	}
	bands := make([]band, 0, workers)
	for j0 := 0; j0 < height; j0 += bandSize {
		bands = append(bands, band{acc: p.acc.newPartial()})
	}

	var wg sync.WaitGroup
	for k := range bands {
		j0 := k * bandSize
		j1 := min(j0+bandSize, height)
		wg.Add(1)
		go func(b *band) {
			defer wg.Done()
			q := *p
			q.acc = b.acc
			q.fp = footprint{}
			b.stats = q.run(j0, j1)
		}(&bands[k])
	}
	wg.Wait()

	var stats Stats
	for _, b := range bands {
		p.acc.merge(b.acc)
		stats.Missed += b.stats.Missed
		stats.Skipped += b.stats.Skipped
	}
	return stats
}
