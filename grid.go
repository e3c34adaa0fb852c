package drizzle

// Grid is a rectangular array of samples, stored in row-major order.
// The sample at (x, y) is Pix[y*Width+x].
type Grid struct {
	Pix    []float32
	Width  int
	Height int
}

// NewGrid allocates a zero-filled grid.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Pix:    make([]float32, width*height),
		Width:  width,
		Height: height,
	}
}

// At returns the sample at (x, y).
func (g *Grid) At(x, y int) float32 {
	return g.Pix[y*g.Width+x]
}

// Set stores v at (x, y).
func (g *Grid) Set(x, y int, v float32) {
	g.Pix[y*g.Width+x] = v
}

// Fill sets every sample to v.
func (g *Grid) Fill(v float32) {
	for i := range g.Pix {
		g.Pix[i] = v
	}
}

// Sum returns the sum of all samples, accumulated in float64.
func (g *Grid) Sum() float64 {
	var s float64
	for _, v := range g.Pix {
		s += float64(v)
	}
	return s
}

func (g *Grid) sameSize(o *Grid) bool {
	return g.Width == o.Width && g.Height == o.Height
}

// scale multiplies every sample by f, in place.
func (g *Grid) scale(f float32) {
	for i := range g.Pix {
		g.Pix[i] *= f
	}
}

// contextBit locates the context bit of one contributor.
type contextBit struct {
	word int    // index of the 32-bit plane
	mask uint32 // single bit within the plane
}

// newContextBit returns the context bit for the 1-based contributor id.
func newContextBit(id int) contextBit {
	return contextBit{
		word: (id - 1) / 32,
		mask: 1 << uint((id-1)%32),
	}
}

// ContextGrid records, for every destination cell, which contributors
// have added positive weight to it. Contributor id (starting at 1) is bit
// (id-1)%32 of plane (id-1)/32. Planes are added as higher ids are used.
type ContextGrid struct {
	Planes [][]uint32
	Width  int
	Height int
}

// NewContextGrid returns an empty context grid. No planes are allocated
// until the first contribution is recorded.
func NewContextGrid(width, height int) *ContextGrid {
	return &ContextGrid{
		Width:  width,
		Height: height,
	}
}

// Has reports whether contributor id has been recorded at (x, y).
func (c *ContextGrid) Has(x, y, id int) bool {
	if id < 1 {
		return false
	}
	b := newContextBit(id)
	if b.word >= len(c.Planes) {
		return false
	}
	return c.Planes[b.word][y*c.Width+x]&b.mask != 0
}

// Contributors returns the ids recorded at (x, y), in increasing order.
func (c *ContextGrid) Contributors(x, y int) []int {
	var ids []int
	idx := y*c.Width + x
	for word, plane := range c.Planes {
		v := plane[idx]
		for bit := 0; v != 0; bit++ {
			if v&1 != 0 {
				ids = append(ids, word*32+bit+1)
			}
			v >>= 1
		}
	}
	return ids
}

// grow makes sure that at least n planes exist.
func (c *ContextGrid) grow(n int) {
	for len(c.Planes) < n {
		c.Planes = append(c.Planes, make([]uint32, c.Width*c.Height))
	}
}

// setBit ORs b into the cell (x, y). The plane must exist.
func (c *ContextGrid) setBit(x, y int, b contextBit) {
	c.Planes[b.word][y*c.Width+x] |= b.mask
}

// or merges all bits of o into c.
func (c *ContextGrid) or(o *ContextGrid) {
	c.grow(len(o.Planes))
	for word, plane := range o.Planes {
		dst := c.Planes[word]
		for i, v := range plane {
			dst[i] |= v
		}
	}
}
