package features

import (
	"math"

	"spatialmorph/pkg/grid"
	"spatialmorph/pkg/morphology"
)

// Roundness computes 4*area / (pi * maxPropagation^2) for every label, where
// area is the label's pixel count and maxPropagation the largest propagation
// value inside it. A disk scores close to 1, elongated shapes fall toward 0.
// A single-pixel label has max propagation 0 and yields +Inf.
func Roundness(image *grid.Grid, element *grid.Element) map[int]float64 {
	propagation := morphology.Propagation(image, element)

	area := map[int]int{}
	maxProp := map[int]int{}
	for _, p := range image.ForegroundPoints() {
		l := image.At(p.R, p.C)
		area[l]++
		if v := propagation.At(p.R, p.C); v > maxProp[l] {
			maxProp[l] = v
		}
	}

	roundness := map[int]float64{}
	for l, a := range area {
		m := float64(maxProp[l])
		roundness[l] = 4 * float64(a) / (math.Pi * m * m)
	}
	return roundness
}
