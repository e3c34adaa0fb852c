// Command export writes the test case definitions, together with summary
// results for every kernel, to JSON. The data and weight grids obtained
// with the square kernel are written as 16-bit TIFF images.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/image/tiff"

	"seehuhn.de/go/drizzle"
	"seehuhn.de/go/drizzle/testcases"
)

const outDir = "testdata"

var kernels = []drizzle.Kernel{
	drizzle.Square,
	drizzle.Gaussian,
	drizzle.Point,
	drizzle.Tophat,
	drizzle.Turbo,
	drizzle.Lanczos2,
	drizzle.Lanczos3,
}

func main() {
	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	imgDir := filepath.Join(outDir, "drizzled")
	if err := os.MkdirAll(imgDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			jtc, err := export(name, tc, imgDir)
			if err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			out.TestCases = append(out.TestCases, jtc)
		}
	}

	f, err := os.Create(filepath.Join(outDir, "testcases.json"))
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonTestCase struct {
	Name      string       `json:"name"`
	Width     int          `json:"width"`
	Height    int          `json:"height"`
	OutWidth  int          `json:"out_width"`
	OutHeight int          `json:"out_height"`
	Map       [6]float64   `json:"map"`
	Scale     float64      `json:"scale"`
	PixFrac   float64      `json:"pixfrac"`
	Results   []jsonResult `json:"results"`
}

type jsonResult struct {
	Kernel    drizzle.Kernel `json:"kernel"`
	Missed    int            `json:"missed"`
	Skipped   int            `json:"skipped"`
	WeightSum float64        `json:"weight_sum"`
	DataSum   float64        `json:"data_sum"`
}

func export(name string, tc testcases.TestCase, imgDir string) (jsonTestCase, error) {
	jtc := jsonTestCase{
		Name:      name,
		Width:     tc.Width,
		Height:    tc.Height,
		OutWidth:  tc.OutWidth,
		OutHeight: tc.OutHeight,
		Map:       [6]float64(tc.Map),
		Scale:     tc.Scale,
		PixFrac:   tc.PixFrac,
	}

	for _, k := range kernels {
		acc, stats, err := run(tc, k)
		if err != nil {
			return jtc, err
		}

		var dataSum float64
		for i, w := range acc.Weight.Pix {
			dataSum += float64(acc.Data.Pix[i] * w)
		}
		jtc.Results = append(jtc.Results, jsonResult{
			Kernel:    k,
			Missed:    stats.Missed,
			Skipped:   stats.Skipped,
			WeightSum: acc.Weight.Sum(),
			DataSum:   dataSum,
		})

		if k != drizzle.Square {
			continue
		}
		err = writeTIFF(filepath.Join(imgDir, name+"_data.tif"), acc.Data)
		if err != nil {
			return jtc, err
		}
		err = writeTIFF(filepath.Join(imgDir, name+"_weight.tif"), acc.Weight)
		if err != nil {
			return jtc, err
		}
	}
	return jtc, nil
}

// run drizzles the sample image of tc with kernel k.
func run(tc testcases.TestCase, k drizzle.Kernel) (*drizzle.Accumulator, drizzle.Stats, error) {
	data := drizzle.NewGrid(tc.Width, tc.Height)
	for y := range tc.Height {
		for x := range tc.Width {
			data.Set(x, y, tc.Sample(x, y))
		}
	}

	d := drizzle.NewDrizzler()
	d.Kernel = k
	d.Scale = tc.Scale
	d.PixFrac = tc.PixFrac

	acc := drizzle.NewAccumulator(tc.OutWidth, tc.OutHeight, false)
	stats, err := d.Add(acc, data, nil, drizzle.Affine(tc.Map))
	return acc, stats, err
}

// writeTIFF stores g as a 16-bit grayscale image, scaled so that the
// largest sample becomes white. Negative samples are shown as black.
func writeTIFF(fname string, g *drizzle.Grid) (err error) {
	var hi float32
	for _, v := range g.Pix {
		hi = max(hi, v)
	}

	img := image.NewGray16(image.Rect(0, 0, g.Width, g.Height))
	if hi > 0 {
		for y := range g.Height {
			for x := range g.Width {
				v := max(g.At(x, y), 0) / hi
				img.SetGray16(x, y, color.Gray16{Y: uint16(v*65535 + 0.5)})
			}
		}
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return tiff.Encode(f, img, nil)
}
