package features

import (
	"fmt"

	"spatialmorph/pkg/grid"
	"spatialmorph/pkg/morphology"
)

// LayerMinimum computes the signed layer transform: the discrete analogue of
// DistanceMinimum that counts how many binary erosions a pixel survives
// instead of measuring Euclidean distance. Positive layers lie outside the
// selected foreground, negative layers inside, composed as
// layers(outside, border 0) - layers(inside, border 1).
func LayerMinimum(image *grid.Grid, index []int, tissue *grid.Mask, element *grid.Element) (*grid.Grid, error) {
	binary := image.BinarizeIndex(index)
	outside, err := layers(binary.Complement(), element, 0, tissue)
	if err != nil {
		return nil, fmt.Errorf("minimum layers: %w", err)
	}
	inside, err := layers(binary, element, 1, tissue)
	if err != nil {
		return nil, fmt.Errorf("minimum layers: %w", err)
	}
	return subtract(outside, inside), nil
}

// LayerMaximum keeps the same sign convention but swaps the border treatment,
// composed as layers(outside, border 1) - layers(inside, border 0): outside
// layers grow against real foreground only, inside layers erode from the
// image edge as well.
func LayerMaximum(image *grid.Grid, index []int, tissue *grid.Mask, element *grid.Element) (*grid.Grid, error) {
	binary := image.BinarizeIndex(index)
	outside, err := layers(binary.Complement(), element, 1, tissue)
	if err != nil {
		return nil, fmt.Errorf("maximum layers: %w", err)
	}
	inside, err := layers(binary, element, 0, tissue)
	if err != nil {
		return nil, fmt.Errorf("maximum layers: %w", err)
	}
	return subtract(outside, inside), nil
}

// layers iteratively erodes the binary image with the given border value,
// accumulating for each pixel the number of passes it stays foreground
// (counting the initial image as the first pass). Tissue-invalid pixels are
// forced to the border value before the loop and to 0 in the result.
func layers(binary *grid.Grid, element *grid.Element, borderValue int, tissue *grid.Mask) (*grid.Grid, error) {
	if tissue != nil && !tissue.Covers(binary) {
		return nil, fmt.Errorf("tissue mask %dx%d vs image %dx%d: %w",
			tissue.Rows(), tissue.Cols(), binary.Rows(), binary.Cols(), grid.ErrShapeMismatch)
	}
	element = element.OrDefault()

	image := binary.Clone()
	if tissue != nil {
		for r := 0; r < image.Rows(); r++ {
			for c := 0; c < image.Cols(); c++ {
				if !tissue.At(r, c) {
					image.Set(r, c, borderValue)
				}
			}
		}
	}

	accumulated := image.Clone()
	for image.Any() {
		eroded := morphology.BinaryErode(image, element, borderValue)
		if eroded.Equal(image) {
			// Border value 1 with no opposite-phase pixel left: nothing
			// will ever erode, so the accumulated counts are final.
			break
		}
		for i, v := range eroded.Data() {
			accumulated.Data()[i] += v
		}
		image = eroded
	}

	if tissue != nil {
		for r := 0; r < tissue.Rows(); r++ {
			for c := 0; c < tissue.Cols(); c++ {
				if !tissue.At(r, c) {
					accumulated.Set(r, c, 0)
				}
			}
		}
	}
	return accumulated, nil
}

func subtract(a, b *grid.Grid) *grid.Grid {
	out := a.Clone()
	for i, v := range b.Data() {
		out.Data()[i] -= v
	}
	return out
}
