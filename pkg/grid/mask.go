package grid

// Mask is a boolean region-of-validity raster with the same shape semantics as
// Grid. Pixels where the mask is false are outside the valid region.
type Mask struct {
	data []bool
	rows int
	cols int
}

// NewMask creates an all-false mask with the given shape.
func NewMask(rows, cols int) *Mask {
	return &Mask{
		data: make([]bool, rows*cols),
		rows: rows,
		cols: cols,
	}
}

// AllTrue creates a mask covering the whole shape.
func AllTrue(rows, cols int) *Mask {
	m := NewMask(rows, cols)
	for i := range m.data {
		m.data[i] = true
	}
	return m
}

// MaskFromRows builds a mask from row slices; ragged input yields nil.
func MaskFromRows(rows [][]bool) *Mask {
	if len(rows) == 0 {
		return NewMask(0, 0)
	}
	cols := len(rows[0])
	m := NewMask(len(rows), cols)
	for r, row := range rows {
		if len(row) != cols {
			return nil
		}
		copy(m.data[r*cols:(r+1)*cols], row)
	}
	return m
}

// Rows returns the number of rows.
func (m *Mask) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Mask) Cols() int { return m.cols }

// At reports whether (r, c) is inside the valid region.
func (m *Mask) At(r, c int) bool { return m.data[r*m.cols+c] }

// Set stores v at (r, c).
func (m *Mask) Set(r, c int, v bool) { m.data[r*m.cols+c] = v }

// Covers reports whether the mask shape matches the grid shape.
func (m *Mask) Covers(g *Grid) bool {
	return m.rows == g.Rows() && m.cols == g.Cols()
}
