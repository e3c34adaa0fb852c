package drizzle

import (
	"fmt"
	"strings"
)

// Kernel selects how the flux of a source pixel is distributed over the
// destination grid.
type Kernel int

// The available kernels. Only Square conserves flux exactly; Turbo
// approximates it with axis-aligned boxes. The remaining kernels trade
// conservation for speed or smoothness.
const (
	// Square projects the four corners of the shrunken source pixel and
	// uses the exact overlap of the resulting quadrilateral with each
	// destination cell.
	Square Kernel = iota

	// Gaussian spreads flux with a radially symmetric Gaussian whose FWHM
	// equals the shrunken pixel size.
	Gaussian

	// Point adds each source pixel to the single nearest destination cell.
	Point

	// Tophat adds each source pixel with equal weight to all cells within
	// half the shrunken pixel size of its centre.
	Tophat

	// Turbo approximates the projected pixel by an axis-aligned square.
	Turbo

	// Lanczos2 and Lanczos3 use a separable windowed-sinc kernel of order
	// 2 or 3.
	Lanczos2
	Lanczos3

	numKernels
)

var kernelNames = [numKernels]string{
	Square:   "square",
	Gaussian: "gaussian",
	Point:    "point",
	Tophat:   "tophat",
	Turbo:    "turbo",
	Lanczos2: "lanczos2",
	Lanczos3: "lanczos3",
}

func (k Kernel) valid() bool {
	return k >= 0 && k < numKernels
}

// String returns the conventional name of the kernel, e.g. "square".
func (k Kernel) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kernel(%d)", int(k))
	}
	return kernelNames[k]
}

// ParseKernel returns the kernel with the given name. Case is ignored.
func ParseKernel(name string) (Kernel, error) {
	for k, n := range kernelNames {
		if strings.EqualFold(name, n) {
			return Kernel(k), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrInvalidKernel, name)
}

// MarshalText implements [encoding.TextMarshaler].
func (k Kernel) MarshalText() ([]byte, error) {
	if !k.valid() {
		return nil, fmt.Errorf("%w %d", ErrInvalidKernel, int(k))
	}
	return []byte(kernelNames[k]), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *Kernel) UnmarshalText(text []byte) error {
	v, err := ParseKernel(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// order returns the order of a windowed-sinc kernel, or 0.
func (k Kernel) order() int {
	switch k {
	case Lanczos2:
		return 2
	case Lanczos3:
		return 3
	default:
		return 0
	}
}

// Units describes how source sample values are expressed.
type Units int

const (
	// Rate means values are count rates (per unit exposure time).
	Rate Units = iota

	// Counts means values are total counts. They are divided by the
	// exposure time before drizzling.
	Counts
)

var unitNames = [...]string{
	Rate:   "cps",
	Counts: "counts",
}

// String returns "cps" or "counts".
func (u Units) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return fmt.Sprintf("Units(%d)", int(u))
	}
	return unitNames[u]
}

// ParseUnits returns the units with the given name, "cps" or "counts".
func ParseUnits(name string) (Units, error) {
	for u, n := range unitNames {
		if strings.EqualFold(name, n) {
			return Units(u), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrInvalidUnits, name)
}

// MarshalText implements [encoding.TextMarshaler].
func (u Units) MarshalText() ([]byte, error) {
	if u < 0 || int(u) >= len(unitNames) {
		return nil, fmt.Errorf("%w %d", ErrInvalidUnits, int(u))
	}
	return []byte(unitNames[u]), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *Units) UnmarshalText(text []byte) error {
	v, err := ParseUnits(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}
