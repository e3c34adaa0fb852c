package drizzle

import "fmt"

// Accumulator holds the combined result of drizzling one or more source
// images onto a destination grid.
//
// Data holds the weighted mean of all contributions to each cell and
// Weight the total weight contributed so far. Context, if non-nil, records
// which contributors touched each cell. An Accumulator can be reused
// across many calls to [Drizzler.Add], one per source image.
//
// All updates go through a single merge rule (see mergeContribution),
// which is associative and commutative up to rounding. This is what makes
// it valid to combine images one after another, or to drizzle into
// separate partial accumulators and combine them with [Accumulator.Merge].
type Accumulator struct {
	Data    *Grid
	Weight  *Grid
	Context *ContextGrid

	// touched, if non-nil, marks the cells which received any
	// contribution, including contributions of weight zero.
	touched []bool
}

// NewAccumulator allocates an empty accumulator. If withContext is true,
// contributor context is recorded as well.
func NewAccumulator(width, height int, withContext bool) *Accumulator {
	a := &Accumulator{
		Data:   NewGrid(width, height),
		Weight: NewGrid(width, height),
	}
	if withContext {
		a.Context = NewContextGrid(width, height)
	}
	return a
}

// Width returns the width of the destination grid.
func (a *Accumulator) Width() int { return a.Data.Width }

// Height returns the height of the destination grid.
func (a *Accumulator) Height() int { return a.Data.Height }

// check verifies that all grids of the accumulator have matching shapes.
func (a *Accumulator) check() error {
	if a == nil || a.Data == nil || a.Weight == nil {
		return fmt.Errorf("%w: accumulator has no data or weight grid", ErrShape)
	}
	if !a.Data.sameSize(a.Weight) {
		return fmt.Errorf("%w: data is %dx%d, weight is %dx%d", ErrShape,
			a.Data.Width, a.Data.Height, a.Weight.Width, a.Weight.Height)
	}
	if c := a.Context; c != nil && (c.Width != a.Data.Width || c.Height != a.Data.Height) {
		return fmt.Errorf("%w: context is %dx%d, data is %dx%d", ErrShape,
			c.Width, c.Height, a.Data.Width, a.Data.Height)
	}
	return nil
}

// newPartial returns an empty accumulator of the same shape as a,
// with a context grid if a has one. The partial records which cells it
// touched, so that merging it into a has the same effect as making all its
// contributions to a directly.
func (a *Accumulator) newPartial() *Accumulator {
	p := NewAccumulator(a.Width(), a.Height(), a.Context != nil)
	p.touched = make([]bool, len(p.Weight.Pix))
	if a.Context != nil {
		p.Context.grow(len(a.Context.Planes))
	}
	return p
}

// add merges the value d with weight dow into cell (x, y) and records the
// contributor bit if the weight is positive.
func (a *Accumulator) add(x, y int, d, dow float32, bit contextBit) {
	idx := y*a.Data.Width + x

	if a.Context != nil && dow > 0 {
		a.Context.setBit(x, y, bit)
	}
	if a.touched != nil {
		a.touched[idx] = true
	}

	v, w := mergeContribution(float64(a.Data.Pix[idx]), float64(a.Weight.Pix[idx]), float64(d), float64(dow))
	a.Data.Pix[idx] = float32(v)
	a.Weight.Pix[idx] = float32(w)
}

// Merge folds the contributions collected in b into a, as if every
// contribution made to b had been made to a directly. Cells of b with zero
// total weight are ignored. Context bits are combined.
func (a *Accumulator) Merge(b *Accumulator) error {
	if err := a.check(); err != nil {
		return err
	}
	if err := b.check(); err != nil {
		return err
	}
	if !a.Data.sameSize(b.Data) {
		return fmt.Errorf("%w: cannot merge %dx%d into %dx%d", ErrShape,
			b.Width(), b.Height(), a.Width(), a.Height())
	}
	a.merge(b)
	return nil
}

// merge implements Merge for accumulators of matching shape. If b records
// touched cells, every touched cell is merged, even if its total weight is
// zero.
func (a *Accumulator) merge(b *Accumulator) {
	for idx, bw := range b.Weight.Pix {
		if b.touched != nil {
			if !b.touched[idx] {
				continue
			}
		} else if bw == 0 {
			continue
		}
		v, w := mergeContribution(float64(a.Data.Pix[idx]), float64(a.Weight.Pix[idx]),
			float64(b.Data.Pix[idx]), float64(bw))
		a.Data.Pix[idx] = float32(v)
		a.Weight.Pix[idx] = float32(w)
		if a.touched != nil {
			a.touched[idx] = true
		}
	}

	if b.Context != nil {
		if a.Context == nil {
			a.Context = NewContextGrid(a.Width(), a.Height())
		}
		a.Context.or(b.Context)
	}
}

// mergeContribution combines a cell holding value with total weight
// weight and a new contribution newValue with weight added. It returns the
// updated value and weight.
//
// A cell without prior weight takes the new value as is. Otherwise the
// result is the weighted mean, unless the combined weight is zero, in which
// case the value is kept.
func mergeContribution(value, weight, newValue, added float64) (float64, float64) {
	total := weight + added
	if weight == 0 {
		value = newValue
	} else if total != 0 {
		value = (value*weight + added*newValue) / total
	}
	return value, total
}
