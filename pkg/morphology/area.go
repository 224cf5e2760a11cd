package morphology

import (
	"spatialmorph/pkg/grid"
)

// AreaOpening removes connected foreground components with fewer than
// areaThreshold pixels, preserving the original values of the surviving
// components. Connectivity follows the element.
func AreaOpening(image *grid.Grid, areaThreshold int, element *grid.Element) *grid.Grid {
	element = element.OrDefault()
	labels := Label(image.Binarize(), element)
	sizes := componentSizes(labels)

	out := image.Clone()
	for i, l := range labels.Data() {
		if l != 0 && sizes[l] < areaThreshold {
			out.Data()[i] = 0
		}
	}
	return out
}

// AreaClosing fills background holes with fewer than areaThreshold pixels.
// A hole is a background component that does not touch the image border;
// filled pixels are set to 1, so the operation is meaningful for binary
// images (labeled inputs keep their labels, holes become foreground 1).
func AreaClosing(image *grid.Grid, areaThreshold int, element *grid.Element) *grid.Grid {
	element = element.OrDefault()
	holes := Label(image.Complement(), element)
	sizes := componentSizes(holes)
	border := borderComponents(holes)

	out := image.Clone()
	for i, l := range holes.Data() {
		if l != 0 && !border[l] && sizes[l] < areaThreshold {
			out.Data()[i] = 1
		}
	}
	return out
}

func componentSizes(labels *grid.Grid) map[int]int {
	sizes := map[int]int{}
	for _, l := range labels.Data() {
		if l != 0 {
			sizes[l]++
		}
	}
	return sizes
}

// borderComponents reports which labels touch the image border.
func borderComponents(labels *grid.Grid) map[int]bool {
	border := map[int]bool{}
	rows, cols := labels.Rows(), labels.Cols()
	if rows == 0 || cols == 0 {
		return border
	}
	for c := 0; c < cols; c++ {
		if l := labels.At(0, c); l != 0 {
			border[l] = true
		}
		if l := labels.At(rows-1, c); l != 0 {
			border[l] = true
		}
	}
	for r := 0; r < rows; r++ {
		if l := labels.At(r, 0); l != 0 {
			border[l] = true
		}
		if l := labels.At(r, cols-1); l != 0 {
			border[l] = true
		}
	}
	return border
}
