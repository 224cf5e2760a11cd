// Package features derives morphological descriptors from labeled rasters:
// center points, signed distance and layer transforms, shape and size
// statistics. Inputs are never mutated; per-label results are returned as
// mappings keyed by label value.
package features

import (
	"fmt"

	"spatialmorph/pkg/grid"
	"spatialmorph/pkg/morphology"
)

// GeodesicCenters returns, for every label, the pixels whose propagation value
// is the minimum within that label. Those are the geodesic centers: the seeds
// that re-cover their component in the fewest dilation steps.
func GeodesicCenters(image *grid.Grid, element *grid.Element) map[int][]grid.Point {
	propagation := morphology.Propagation(image, element)

	minByLabel := map[int]int{}
	for _, p := range image.ForegroundPoints() {
		l := image.At(p.R, p.C)
		v := propagation.At(p.R, p.C)
		if cur, ok := minByLabel[l]; !ok || v < cur {
			minByLabel[l] = v
		}
	}

	centers := map[int][]grid.Point{}
	for _, l := range image.Labels() {
		centers[l] = nil
	}
	for _, p := range image.ForegroundPoints() {
		l := image.At(p.R, p.C)
		if propagation.At(p.R, p.C) == minByLabel[l] {
			centers[l] = append(centers[l], p)
		}
	}
	return centers
}

// UltimateCenters returns, for every label, the pixels that vanish last under
// alternating erosion and reconstruction: the discrete analogue of a medial
// axis. Each iteration erodes the working image once, reconstructs the eroded
// image by dilation against the pre-erosion image, and records every pixel the
// reconstruction failed to recover, attributed to its pre-erosion label. The
// working image then becomes the eroded one; the loop ends when it is empty.
func UltimateCenters(image *grid.Grid, element *grid.Element) (map[int][]grid.Point, error) {
	element = element.OrDefault()

	centers := map[int][]grid.Point{}
	for _, l := range image.Labels() {
		centers[l] = nil
	}

	working := image.Clone()
	for working.Any() {
		eroded := morphology.Erode(working, element)
		if eroded.Equal(working) {
			// Erosion removed nothing (e.g. foreground spanning the whole
			// frame). Whatever remains would survive forever; record it
			// as ultimate and stop.
			for _, p := range working.ForegroundPoints() {
				l := working.At(p.R, p.C)
				centers[l] = append(centers[l], p)
			}
			break
		}
		reconstructed, err := morphology.ReconstructByDilation(eroded, working, element)
		if err != nil {
			return nil, fmt.Errorf("ultimate centers: %w", err)
		}
		rows, cols := working.Rows(), working.Cols()
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if working.At(r, c) != reconstructed.At(r, c) {
					l := working.At(r, c)
					centers[l] = append(centers[l], grid.Point{R: r, C: c})
				}
			}
		}
		working = eroded
	}
	return centers, nil
}
