// Package grid provides the shared raster types used by the morphology and
// feature packages: a 2D integer image, a boolean structuring element and a
// boolean tissue mask. Value 0 is background; nonzero values are either a
// binary foreground marker (1) or a region label.
package grid

import (
	"errors"
	"fmt"
)

// Error kinds reported by the raster operations. Call sites wrap these with
// context via fmt.Errorf("...: %w", err).
var (
	// ErrShapeMismatch indicates two rasters that must share a shape do not.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidElement indicates a structuring element with zero extent or an
	// inconsistent backing buffer.
	ErrInvalidElement = errors.New("invalid structuring element")

	// ErrUnsupportedPlatform indicates an unknown platform tag was requested
	// for a coordinate remapping.
	ErrUnsupportedPlatform = errors.New("unsupported platform tag")
)

// Grid is a 2D integer raster stored in a flat row-major buffer.
// The shape is fixed for the lifetime of the grid.
type Grid struct {
	data []int
	rows int
	cols int
}

// New creates a zero-filled grid with the given shape.
func New(rows, cols int) *Grid {
	if rows < 0 || cols < 0 {
		rows, cols = 0, 0
	}
	return &Grid{
		data: make([]int, rows*cols),
		rows: rows,
		cols: cols,
	}
}

// FromRows builds a grid from row slices. All rows must have equal length.
func FromRows(rows [][]int) (*Grid, error) {
	if len(rows) == 0 {
		return New(0, 0), nil
	}
	cols := len(rows[0])
	g := New(len(rows), cols)
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", r, len(row), cols, ErrShapeMismatch)
		}
		copy(g.data[r*cols:(r+1)*cols], row)
	}
	return g, nil
}

// MustFromRows is FromRows for literals known to be rectangular.
// It panics on ragged input.
func MustFromRows(rows [][]int) *Grid {
	g, err := FromRows(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// At returns the value at (r, c).
func (g *Grid) At(r, c int) int { return g.data[r*g.cols+c] }

// Set stores v at (r, c).
func (g *Grid) Set(r, c, v int) { g.data[r*g.cols+c] = v }

// Data exposes the flat row-major backing buffer.
func (g *Grid) Data() []int { return g.data }

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	out := New(g.rows, g.cols)
	copy(out.data, g.data)
	return out
}

// SameShape reports whether g and other have identical dimensions.
func (g *Grid) SameShape(other *Grid) bool {
	return g.rows == other.rows && g.cols == other.cols
}

// Equal reports pointwise equality of two grids of the same shape.
// Grids of different shapes are never equal.
func (g *Grid) Equal(other *Grid) bool {
	if !g.SameShape(other) {
		return false
	}
	for i, v := range g.data {
		if v != other.data[i] {
			return false
		}
	}
	return true
}

// Any reports whether the grid has any nonzero pixel.
func (g *Grid) Any() bool {
	for _, v := range g.data {
		if v != 0 {
			return true
		}
	}
	return false
}

// Zero resets every pixel to background.
func (g *Grid) Zero() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// Binarize returns a copy with every nonzero pixel set to 1.
func (g *Grid) Binarize() *Grid {
	out := New(g.rows, g.cols)
	for i, v := range g.data {
		if v != 0 {
			out.data[i] = 1
		}
	}
	return out
}

// BinarizeIndex returns a copy with pixels whose value is in index set to 1 and
// everything else set to 0. A nil index selects all nonzero values.
func (g *Grid) BinarizeIndex(index []int) *Grid {
	if index == nil {
		return g.Binarize()
	}
	member := make(map[int]bool, len(index))
	for _, v := range index {
		member[v] = true
	}
	out := New(g.rows, g.cols)
	for i, v := range g.data {
		if v != 0 && member[v] {
			out.data[i] = 1
		}
	}
	return out
}

// Complement returns the binary complement: 1 where g is zero, 0 elsewhere.
func (g *Grid) Complement() *Grid {
	out := New(g.rows, g.cols)
	for i, v := range g.data {
		if v == 0 {
			out.data[i] = 1
		}
	}
	return out
}

// Labels returns the ascending set of unique nonzero values.
func (g *Grid) Labels() []int {
	seen := map[int]bool{}
	var labels []int
	for _, v := range g.data {
		if v != 0 && !seen[v] {
			seen[v] = true
			labels = append(labels, v)
		}
	}
	sortInts(labels)
	return labels
}

func sortInts(a []int) {
	// Insertion sort; label sets are small.
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j] < a[j-1]; j-- {
			a[j], a[j-1] = a[j-1], a[j]
		}
	}
}

// Point is a pixel coordinate (row, column).
type Point struct {
	R int
	C int
}

// ForegroundPoints returns the coordinates of all nonzero pixels in raster order.
func (g *Grid) ForegroundPoints() []Point {
	var pts []Point
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.data[r*g.cols+c] != 0 {
				pts = append(pts, Point{R: r, C: c})
			}
		}
	}
	return pts
}
