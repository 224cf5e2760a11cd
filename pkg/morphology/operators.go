// Package morphology implements the structuring-element operations the feature
// extractors are built from: grayscale erosion and dilation, their geodesic
// (mask-clamped) forms, morphological reconstruction, the per-pixel propagation
// function, connected component labeling and area filters.
//
// All operations are pure: inputs are never mutated and every call allocates
// its output. A nil structuring element resolves to the 4-connected cross.
package morphology

import (
	"fmt"

	"spatialmorph/pkg/grid"
)

// Erode applies one grayscale erosion: each pixel becomes the minimum of its
// neighborhood under the element. Neighbors outside the image are ignored, so
// border pixels are eroded against their in-image neighborhood only.
func Erode(image *grid.Grid, element *grid.Element) *grid.Grid {
	return minMaxFilter(image, element.OrDefault(), true)
}

// Dilate applies one grayscale dilation: each pixel becomes the maximum of its
// neighborhood under the element. Neighbors outside the image are ignored.
func Dilate(image *grid.Grid, element *grid.Element) *grid.Grid {
	return minMaxFilter(image, element.OrDefault(), false)
}

// Open applies erosion followed by dilation with the same element.
func Open(image *grid.Grid, element *grid.Element) *grid.Grid {
	element = element.OrDefault()
	return Dilate(Erode(image, element), element)
}

// Close applies dilation followed by erosion with the same element.
func Close(image *grid.Grid, element *grid.Element) *grid.Grid {
	element = element.OrDefault()
	return Erode(Dilate(image, element), element)
}

func minMaxFilter(image *grid.Grid, element *grid.Element, erode bool) *grid.Grid {
	rows, cols := image.Rows(), image.Cols()
	out := grid.New(rows, cols)
	offs := element.Offsets()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			best := 0
			first := true
			for _, o := range offs {
				nr, nc := r+o.R, c+o.C
				if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
					continue
				}
				v := image.At(nr, nc)
				if first {
					best = v
					first = false
					continue
				}
				if erode {
					if v < best {
						best = v
					}
				} else if v > best {
					best = v
				}
			}
			out.Set(r, c, best)
		}
	}
	return out
}

// GeodesicErode performs one geodesic erosion step: the marker is eroded and
// then clamped from below by the mask, so marker >= result >= mask holds for a
// marker that starts above the mask.
func GeodesicErode(marker, mask *grid.Grid, element *grid.Element) (*grid.Grid, error) {
	if !marker.SameShape(mask) {
		return nil, fmt.Errorf("geodesic erosion: marker %dx%d vs mask %dx%d: %w",
			marker.Rows(), marker.Cols(), mask.Rows(), mask.Cols(), grid.ErrShapeMismatch)
	}
	eroded := Erode(marker, element)
	for i, v := range eroded.Data() {
		if m := mask.Data()[i]; m > v {
			eroded.Data()[i] = m
		}
	}
	return eroded, nil
}

// GeodesicDilate performs one geodesic dilation step: the marker is dilated
// and then clamped from above by the mask, so marker <= result <= mask holds
// for a marker that starts below the mask.
func GeodesicDilate(marker, mask *grid.Grid, element *grid.Element) (*grid.Grid, error) {
	if !marker.SameShape(mask) {
		return nil, fmt.Errorf("geodesic dilation: marker %dx%d vs mask %dx%d: %w",
			marker.Rows(), marker.Cols(), mask.Rows(), mask.Cols(), grid.ErrShapeMismatch)
	}
	dilated := Dilate(marker, element)
	for i, v := range dilated.Data() {
		if m := mask.Data()[i]; m < v {
			dilated.Data()[i] = m
		}
	}
	return dilated, nil
}

// BinaryErode applies one binary erosion with an explicit border value: a
// foreground pixel survives only if every neighbor selected by the element is
// foreground, where neighbors outside the image read as borderValue. This is
// the erosion the layer transform iterates; unlike Erode, what lies beyond the
// border is part of the contract.
func BinaryErode(image *grid.Grid, element *grid.Element, borderValue int) *grid.Grid {
	element = element.OrDefault()
	rows, cols := image.Rows(), image.Cols()
	out := grid.New(rows, cols)
	offs := element.Offsets()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if image.At(r, c) == 0 {
				continue
			}
			keep := true
			for _, o := range offs {
				nr, nc := r+o.R, c+o.C
				var v int
				if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
					v = borderValue
				} else {
					v = image.At(nr, nc)
				}
				if v == 0 {
					keep = false
					break
				}
			}
			if keep {
				out.Set(r, c, 1)
			}
		}
	}
	return out
}
