package morphology

import (
	"spatialmorph/pkg/grid"
)

// Label assigns each connected foreground region a unique integer >= 1 and
// leaves background at 0. Connectivity is defined by the structuring element;
// labels are issued in raster-scan discovery order, so the output is stable
// for a given input and element.
func Label(image *grid.Grid, element *grid.Element) *grid.Grid {
	element = element.OrDefault()
	rows, cols := image.Rows(), image.Cols()
	out := grid.New(rows, cols)
	offs := element.Offsets()

	queue := make([]grid.Point, 0, 64)
	next := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if image.At(r, c) == 0 || out.At(r, c) != 0 {
				continue
			}
			next++
			out.Set(r, c, next)
			queue = append(queue[:0], grid.Point{R: r, C: c})
			for len(queue) > 0 {
				p := queue[0]
				queue = queue[1:]
				for _, o := range offs {
					nr, nc := p.R+o.R, p.C+o.C
					if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
						continue
					}
					if image.At(nr, nc) != 0 && out.At(nr, nc) == 0 {
						out.Set(nr, nc, next)
						queue = append(queue, grid.Point{R: nr, C: nc})
					}
				}
			}
		}
	}
	return out
}
