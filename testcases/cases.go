package testcases

import "seehuhn.de/go/geom/matrix"

var identityCases = []TestCase{
	{
		Name:      "unit",
		Width:     16,
		Height:    16,
		OutWidth:  16,
		OutHeight: 16,
		Map:       matrix.Identity,
		Scale:     1,
		PixFrac:   1,
	},
	{
		Name:      "pixfrac_half",
		Width:     16,
		Height:    16,
		OutWidth:  16,
		OutHeight: 16,
		Map:       matrix.Identity,
		Scale:     1,
		PixFrac:   0.5,
	},
	{
		Name:      "single_pixel",
		Width:     1,
		Height:    1,
		OutWidth:  3,
		OutHeight: 3,
		Map:       matrix.Identity.Translate(1, 1),
		Scale:     1,
		PixFrac:   1,
	},
}

var shiftCases = []TestCase{
	{
		Name:      "subpixel",
		Width:     16,
		Height:    16,
		OutWidth:  24,
		OutHeight: 24,
		Map:       matrix.Identity.Translate(4.3, 3.7),
		Scale:     1,
		PixFrac:   1,
	},
	{
		Name:      "half_pixel",
		Width:     16,
		Height:    16,
		OutWidth:  24,
		OutHeight: 24,
		Map:       matrix.Identity.Translate(4.5, 2.5),
		Scale:     1,
		PixFrac:   1,
	},
	{
		Name:      "wide_row",
		Width:     50,
		Height:    4,
		OutWidth:  60,
		OutHeight: 10,
		Map:       matrix.Identity.Translate(5.25, 2.75),
		Scale:     1,
		PixFrac:   0.8,
	},
}

var scaleCases = []TestCase{
	{
		Name:      "up2",
		Width:     12,
		Height:    12,
		OutWidth:  32,
		OutHeight: 32,
		Map:       matrix.Scale(2, 2).Translate(4, 4),
		Scale:     0.5,
		PixFrac:   1,
	},
	{
		Name:      "down2",
		Width:     16,
		Height:    16,
		OutWidth:  14,
		OutHeight: 14,
		Map:       matrix.Scale(0.5, 0.5).Translate(3, 3),
		Scale:     2,
		PixFrac:   1,
	},
	{
		Name:      "up3_pixfrac",
		Width:     8,
		Height:    8,
		OutWidth:  32,
		OutHeight: 32,
		Map:       matrix.Scale(3, 3).Translate(4.5, 4.5),
		Scale:     1.0 / 3,
		PixFrac:   0.7,
	},
}

var rotateCases = []TestCase{
	{
		Name:      "deg5",
		Width:     12,
		Height:    12,
		OutWidth:  24,
		OutHeight: 24,
		Map:       centred(12, 12).RotateDeg(5).Translate(12, 12),
		Scale:     1,
		PixFrac:   1,
	},
	{
		Name:      "deg30",
		Width:     12,
		Height:    12,
		OutWidth:  24,
		OutHeight: 24,
		Map:       centred(12, 12).RotateDeg(30).Translate(12, 12),
		Scale:     1,
		PixFrac:   1,
	},
	{
		Name:      "deg45_pixfrac",
		Width:     12,
		Height:    12,
		OutWidth:  24,
		OutHeight: 24,
		Map:       centred(12, 12).RotateDeg(45).Translate(12, 12),
		Scale:     1,
		PixFrac:   0.6,
	},
	{
		Name:      "deg90",
		Width:     12,
		Height:    8,
		OutWidth:  20,
		OutHeight: 20,
		Map:       centred(12, 8).RotateDeg(90).Translate(10, 10),
		Scale:     1,
		PixFrac:   1,
	},
}

var shearCases = []TestCase{
	{
		Name:      "horizontal",
		Width:     12,
		Height:    12,
		OutWidth:  24,
		OutHeight: 20,
		Map:       matrix.Matrix{1, 0, 0.5, 1, 3, 3},
		Scale:     1,
		PixFrac:   1,
	},
	{
		Name:      "vertical",
		Width:     12,
		Height:    12,
		OutWidth:  20,
		OutHeight: 24,
		Map:       matrix.Matrix{1, 0.5, 0, 1, 3, 3},
		Scale:     1,
		PixFrac:   1,
	},
	{
		Name:      "shear_and_rotate",
		Width:     12,
		Height:    12,
		OutWidth:  28,
		OutHeight: 28,
		Map:       matrix.Matrix{1, 0, 0.3, 1, -5.5, -5.5}.RotateDeg(30).Translate(14, 14),
		Scale:     1,
		PixFrac:   1,
	},
}
