// Command genpdf draws the test cases as PDF files, for visual inspection.
// Each page shows the destination grid together with the projected
// footprints of all source pixels.
// Run from the module root directory.
package main

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/drizzle/testcases"
)

const outDir = "testdata/footprints"

// cellSize is the size of one destination cell, in PDF points.
const cellSize = 20

func main() {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			pdfPath := filepath.Join(outDir, name+".pdf")
			if err := generatePDF(tc, pdfPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func generatePDF(tc testcases.TestCase, pdfPath string) error {
	paper := &pdf.Rectangle{
		URx: float64(tc.OutWidth * cellSize),
		URy: float64(tc.OutHeight * cellSize),
	}

	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// Destination cell (i, j) covers [i-0.5, i+0.5]×[j-0.5, j+0.5].
	page.Transform(matrix.Matrix{cellSize, 0, 0, cellSize, cellSize / 2, cellSize / 2})

	// grid
	page.SetStrokeColor(color.DeviceGray(0.8))
	page.SetLineWidth(0.02)
	for i := 0; i <= tc.OutWidth; i++ {
		x := float64(i) - 0.5
		page.MoveTo(x, -0.5)
		page.LineTo(x, float64(tc.OutHeight)-0.5)
	}
	for j := 0; j <= tc.OutHeight; j++ {
		y := float64(j) - 0.5
		page.MoveTo(-0.5, y)
		page.LineTo(float64(tc.OutWidth)-0.5, y)
	}
	page.Stroke()

	// footprints, shaded by sample value
	for y := range tc.Height {
		for x := range tc.Width {
			v := float64(tc.Sample(x, y)) - 1
			page.SetFillColor(color.DeviceGray(0.9 - 0.5*v))
			drawPath(page, tc.Footprint(x, y))
			page.Fill()
		}
	}

	page.SetStrokeColor(color.DeviceGray(0))
	page.SetLineWidth(0.03)
	for y := range tc.Height {
		for x := range tc.Width {
			drawPath(page, tc.Footprint(x, y))
		}
	}
	page.Stroke()

	return page.Close()
}

// pathBuilder is the part of the page API needed to construct paths.
type pathBuilder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
}

func drawPath(page pathBuilder, p path.Path) {
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			page.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdClose:
			page.ClosePath()
		}
	}
}
