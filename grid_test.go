package drizzle

import (
	"slices"
	"testing"
)

func TestGrid(t *testing.T) {
	g := NewGrid(3, 2)
	g.Fill(0.5)
	g.Set(2, 1, 4)
	if got := g.At(2, 1); got != 4 {
		t.Errorf("At(2, 1) = %g, want 4", got)
	}
	if got := g.Pix[5]; got != 4 {
		t.Errorf("Pix[5] = %g, want 4", got)
	}
	if got := g.Sum(); got != 6.5 {
		t.Errorf("Sum() = %g, want 6.5", got)
	}
	g.scale(2)
	if got := g.Sum(); got != 13 {
		t.Errorf("Sum() after scale = %g, want 13", got)
	}
}

func TestContextBit(t *testing.T) {
	cases := []struct {
		id   int
		word int
		mask uint32
	}{
		{1, 0, 1},
		{2, 0, 2},
		{32, 0, 1 << 31},
		{33, 1, 1},
		{70, 2, 1 << 5},
	}
	for _, c := range cases {
		b := newContextBit(c.id)
		if b.word != c.word || b.mask != c.mask {
			t.Errorf("id %d: got (%d, %#x), want (%d, %#x)",
				c.id, b.word, b.mask, c.word, c.mask)
		}
	}
}

func TestContextGrid(t *testing.T) {
	c := NewContextGrid(4, 4)
	if c.Has(1, 1, 1) {
		t.Error("empty grid has contributor")
	}

	for _, id := range []int{3, 1, 33} {
		b := newContextBit(id)
		c.grow(b.word + 1)
		c.setBit(1, 2, b)
	}
	c.setBit(0, 0, newContextBit(2))

	if len(c.Planes) != 2 {
		t.Errorf("got %d planes, want 2", len(c.Planes))
	}
	if got := c.Contributors(1, 2); !slices.Equal(got, []int{1, 3, 33}) {
		t.Errorf("Contributors(1, 2) = %v", got)
	}
	if got := c.Contributors(0, 0); !slices.Equal(got, []int{2}) {
		t.Errorf("Contributors(0, 0) = %v", got)
	}
	if c.Has(1, 2, 2) || !c.Has(1, 2, 33) || c.Has(1, 2, 65) || c.Has(1, 2, 0) {
		t.Error("wrong result from Has")
	}

	o := NewContextGrid(4, 4)
	o.grow(3)
	o.setBit(3, 3, newContextBit(70))
	c.or(o)
	if len(c.Planes) != 3 || !c.Has(3, 3, 70) || !c.Has(1, 2, 33) {
		t.Error("or lost or missed bits")
	}
}
