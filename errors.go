package drizzle

import "errors"

// Errors returned by [Drizzler.Add]. The returned errors wrap one of these
// values and can be tested with [errors.Is].
var (
	// ErrInvalidKernel indicates an unknown kernel identifier.
	ErrInvalidKernel = errors.New("drizzle: invalid kernel type")

	// ErrInvalidExposureTime indicates that counts had to be converted to
	// rates, but the exposure time was zero.
	ErrInvalidExposureTime = errors.New("drizzle: invalid exposure time")

	// ErrOutOfMemory indicates that the kernel lookup table could not be
	// set up.
	ErrOutOfMemory = errors.New("drizzle: out of memory")

	// ErrInvalidUnits indicates an unknown name or value for the units of
	// the source samples.
	ErrInvalidUnits = errors.New("drizzle: invalid units")

	// ErrInvalidPixFrac indicates a pixel fraction of zero.
	ErrInvalidPixFrac = errors.New("drizzle: pixel fraction must be non-zero")

	// ErrInvalidScale indicates a scale of zero.
	ErrInvalidScale = errors.New("drizzle: scale must be non-zero")

	// ErrInvalidID indicates a contributor id below 1.
	ErrInvalidID = errors.New("drizzle: contributor id must be at least 1")

	// ErrInvalidBounds indicates output bounds which are not contained in
	// the accumulator.
	ErrInvalidBounds = errors.New("drizzle: output bounds outside of accumulator")

	// ErrShape indicates that grids or mappings which must agree in size
	// do not.
	ErrShape = errors.New("drizzle: grid shapes do not match")
)
