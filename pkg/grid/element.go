package grid

import "fmt"

// Element is a boolean structuring element defining pixel adjacency for
// erosion, dilation, reconstruction and labeling. The anchor is the central
// cell, so both extents must be odd.
type Element struct {
	data []bool
	rows int
	cols int
}

// NewElement builds an element from row slices of booleans.
func NewElement(rows [][]bool) (*Element, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("empty element: %w", ErrInvalidElement)
	}
	cols := len(rows[0])
	if len(rows)%2 == 0 || cols%2 == 0 {
		return nil, fmt.Errorf("element extents must be odd, got %dx%d: %w", len(rows), cols, ErrInvalidElement)
	}
	e := &Element{
		data: make([]bool, len(rows)*cols),
		rows: len(rows),
		cols: cols,
	}
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("ragged element row %d: %w", r, ErrInvalidElement)
		}
		copy(e.data[r*cols:(r+1)*cols], row)
	}
	return e, nil
}

// Cross returns the 3x3 4-connected element. This is the default connectivity
// everywhere an operation accepts a nil element.
func Cross() *Element {
	e, _ := NewElement([][]bool{
		{false, true, false},
		{true, true, true},
		{false, true, false},
	})
	return e
}

// Full returns the 3x3 8-connected element.
func Full() *Element {
	e, _ := NewElement([][]bool{
		{true, true, true},
		{true, true, true},
		{true, true, true},
	})
	return e
}

// OrDefault resolves a nil element to the 4-connected default exactly once at
// the call boundary.
func (e *Element) OrDefault() *Element {
	if e == nil {
		return Cross()
	}
	return e
}

// Rows returns the vertical extent.
func (e *Element) Rows() int { return e.rows }

// Cols returns the horizontal extent.
func (e *Element) Cols() int { return e.cols }

// At reports whether the element covers (r, c).
func (e *Element) At(r, c int) bool { return e.data[r*e.cols+c] }

// Offsets returns the neighbor offsets selected by the element, relative to
// the central anchor. The center itself is included when the element covers it.
func (e *Element) Offsets() []Point {
	var offs []Point
	cr, cc := e.rows/2, e.cols/2
	for r := 0; r < e.rows; r++ {
		for c := 0; c < e.cols; c++ {
			if e.data[r*e.cols+c] {
				offs = append(offs, Point{R: r - cr, C: c - cc})
			}
		}
	}
	return offs
}
