package features

import "spatialmorph/pkg/grid"

// Count returns the pixel area of every label. An image with no foreground
// yields an empty mapping.
func Count(image *grid.Grid) map[int]int {
	counts := map[int]int{}
	for _, v := range image.Data() {
		if v != 0 {
			counts[v]++
		}
	}
	return counts
}
