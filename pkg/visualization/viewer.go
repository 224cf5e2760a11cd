// Package visualization renders grids and distance fields as grayscale PNG
// images, and provides a snapshotter that persists the intermediate image
// after every pipeline stage.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"spatialmorph/pkg/grid"
)

// RenderGrid converts an integer grid to a grayscale image, scaling values
// linearly between the grid minimum and maximum. Signed grids, such as layer
// transforms, render with their zero crossing between black and white; a
// constant grid renders black.
func RenderGrid(g *grid.Grid) image.Image {
	data := g.Data()
	img := image.NewGray16(image.Rect(0, 0, g.Cols(), g.Rows()))
	if len(data) == 0 {
		return img
	}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if minVal == maxVal {
		return img
	}
	span := maxVal - minVal
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			value := uint16((g.At(r, c) - minVal) * 65535 / span)
			img.SetGray16(c, r, color.Gray16{Y: value})
		}
	}
	return img
}

// RenderDense converts a float matrix to a grayscale image, scaling linearly
// between the matrix minimum and maximum. Signed distance fields therefore
// render with their zero crossing at mid-gray.
func RenderDense(m *mat.Dense) image.Image {
	rows, cols := m.Dims()
	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := m.At(r, c)
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}

	img := image.NewGray16(image.Rect(0, 0, cols, rows))
	span := maxVal - minVal
	if span == 0 {
		return img
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			value := uint16(math.Max(0, math.Min(65535, (m.At(r, c)-minVal)/span*65535)))
			img.SetGray16(c, r, color.Gray16{Y: value})
		}
	}
	return img
}

// SaveGridPNG renders a grid and writes it to filename as PNG.
func SaveGridPNG(g *grid.Grid, filename string) error {
	return savePNG(RenderGrid(g), filename)
}

// SaveDensePNG renders a float matrix and writes it to filename as PNG.
func SaveDensePNG(m *mat.Dense, filename string) error {
	return savePNG(RenderDense(m), filename)
}

func savePNG(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// Snapshotter writes numbered stage images into a directory, so a pipeline
// run leaves a browsable record of every intermediate state.
type Snapshotter struct {
	dir string
	seq int
}

// NewSnapshotter creates the output directory and returns a snapshotter
// writing into it.
func NewSnapshotter(dir string) (*Snapshotter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}
	return &Snapshotter{dir: dir}, nil
}

// Snapshot writes the image as NN_stage.png, numbering snapshots in the order
// they arrive. Write errors are swallowed: snapshots are diagnostics and must
// not abort the run.
func (s *Snapshotter) Snapshot(stage string, image *grid.Grid) {
	filename := filepath.Join(s.dir, fmt.Sprintf("%02d_%s.png", s.seq, stage))
	s.seq++
	_ = SaveGridPNG(image, filename)
}
