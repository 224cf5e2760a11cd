package morphology

import (
	"fmt"

	"spatialmorph/pkg/grid"
)

// ReconstructByDilation iterates geodesic dilation of marker under mask until
// the result stops changing. The sequence is pointwise nondecreasing and
// bounded above by the mask, so the fixed point is reached in at most the
// diameter of the largest connected region. The invariant
// marker <= result <= mask holds throughout for a marker below the mask.
func ReconstructByDilation(marker, mask *grid.Grid, element *grid.Element) (*grid.Grid, error) {
	return reconstruct(marker, mask, element, GeodesicDilate)
}

// ReconstructByErosion is the dual: geodesic erosion iterated to its fixed
// point, with marker >= result >= mask for a marker above the mask.
func ReconstructByErosion(marker, mask *grid.Grid, element *grid.Element) (*grid.Grid, error) {
	return reconstruct(marker, mask, element, GeodesicErode)
}

type geodesicOp func(marker, mask *grid.Grid, element *grid.Element) (*grid.Grid, error)

func reconstruct(marker, mask *grid.Grid, element *grid.Element, step geodesicOp) (*grid.Grid, error) {
	if !marker.SameShape(mask) {
		return nil, fmt.Errorf("reconstruction: marker %dx%d vs mask %dx%d: %w",
			marker.Rows(), marker.Cols(), mask.Rows(), mask.Cols(), grid.ErrShapeMismatch)
	}
	element = element.OrDefault()
	current := marker.Clone()
	for {
		next, err := step(current, mask, element)
		if err != nil {
			return nil, err
		}
		if next.Equal(current) {
			return next, nil
		}
		current = next
	}
}
