package features

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"spatialmorph/pkg/grid"
)

// Platform identifies an optional coordinate remapping applied around the
// distance transform. Only the Visium hexagonal layout exists besides none.
type Platform string

const (
	// PlatformNone runs the transform on the rectangular grid as-is.
	PlatformNone Platform = ""

	// PlatformVisium remaps the hexagonal Visium spot layout onto a taller
	// rectangular checkerboard before the transform and back after it.
	PlatformVisium Platform = "visium"
)

// Visium spot pitch on the remapped checkerboard: 50 units along the row
// axis, 50*sqrt(3) along the column axis. These replace the caller's sampling
// whenever the visium remap is active.
const visiumSpacing = 50.0

// DistanceMinimum computes the signed Euclidean distance transform: positive
// outside the selected foreground, negative inside, composed as
// distance(outside, border 0) - distance(inside, border 1). Treating the
// frame as foreground for the outside pass caps outside distances at the
// image edge, so every pixel reports its distance to the nearest boundary,
// frame included. A nil index selects all nonzero labels; d is the pixel
// spacing on both axes (ignored under the visium platform, which fixes its
// own sampling); tissue, if non-nil, restricts the valid region and zeroes
// its complement in the output.
func DistanceMinimum(image *grid.Grid, index []int, tissue *grid.Mask, d float64, platform Platform) (*mat.Dense, error) {
	binary := image.BinarizeIndex(index)
	outside, err := distanceTransform(binary.Complement(), d, 0, tissue, platform)
	if err != nil {
		return nil, fmt.Errorf("minimum distance: %w", err)
	}
	inside, err := distanceTransform(binary, d, 1, tissue, platform)
	if err != nil {
		return nil, fmt.Errorf("minimum distance: %w", err)
	}
	outside.Sub(outside, inside)
	return outside, nil
}

// DistanceMaximum keeps the same sign convention but swaps the border
// treatment, composed as distance(outside, border 1) - distance(inside,
// border 0): outside distances measure to real foreground only, while inside
// distances are capped at the image edge.
func DistanceMaximum(image *grid.Grid, index []int, tissue *grid.Mask, d float64, platform Platform) (*mat.Dense, error) {
	binary := image.BinarizeIndex(index)
	outside, err := distanceTransform(binary.Complement(), d, 1, tissue, platform)
	if err != nil {
		return nil, fmt.Errorf("maximum distance: %w", err)
	}
	inside, err := distanceTransform(binary, d, 0, tissue, platform)
	if err != nil {
		return nil, fmt.Errorf("maximum distance: %w", err)
	}
	outside.Sub(outside, inside)
	return outside, nil
}

// distanceTransform runs one directional Euclidean distance transform:
// tissue masking, optional visium remap, the alternating one-pixel border pad,
// the exact transform, and the inverse remap.
func distanceTransform(binary *grid.Grid, d float64, borderValue int, tissue *grid.Mask, platform Platform) (*mat.Dense, error) {
	if platform != PlatformNone && platform != PlatformVisium {
		return nil, fmt.Errorf("platform %q: %w", platform, grid.ErrUnsupportedPlatform)
	}
	if tissue != nil && !tissue.Covers(binary) {
		return nil, fmt.Errorf("tissue mask %dx%d vs image %dx%d: %w",
			tissue.Rows(), tissue.Cols(), binary.Rows(), binary.Cols(), grid.ErrShapeMismatch)
	}

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

	sampling := [2]float64{d, d}
	origRows := image.Rows()
	if platform == PlatformVisium {
		var err error
		image, err = visiumForward(image)
		if err != nil {
			return nil, err
		}
		sampling = [2]float64{visiumSpacing, visiumSpacing * math.Sqrt(3)}
	}

	pad := []int{borderValue}
	if platform == PlatformVisium && borderValue == 0 {
		// Continue the checkerboard across the border so padded cells do
		// not read as spurious background next to real spots.
		pad = []int{0, 1}
	}
	padded := padAlternating(image, pad)

	distances := euclideanDistanceTransform(padded, sampling)
	distances = cropBorder(distances)

	if platform == PlatformVisium {
		distances = visiumInverse(distances, origRows)
	}

	if tissue != nil {
		for r := 0; r < tissue.Rows(); r++ {
			for c := 0; c < tissue.Cols(); c++ {
				if !tissue.At(r, c) {
					distances.Set(r, c, 0)
				}
			}
		}
	}
	return distances, nil
}

// visiumForward maps the hexagonal layout into a (2*rows-cols) x cols
// rectangle. Only checkerboard cells (x+y even) correspond to real spots and
// take image[(x+y)/2, y]; every other cell is initialized to 1 so it never
// reads as background. The forward index relation (x,y) -> ((x+y)/2, y) is
// injective on the checkerboard, which is what makes the inverse exact.
func visiumForward(image *grid.Grid) (*grid.Grid, error) {
	rows, cols := image.Rows(), image.Cols()
	outRows := 2*rows - cols
	if outRows < 0 {
		return nil, fmt.Errorf("visium remap needs 2*rows >= cols, got %dx%d: %w",
			rows, cols, grid.ErrShapeMismatch)
	}
	out := grid.New(outRows, cols)
	for x := 0; x < outRows; x++ {
		for y := 0; y < cols; y++ {
			if (x+y)%2 == 0 {
				out.Set(x, y, image.At((x+y)/2, y))
			} else {
				out.Set(x, y, 1)
			}
		}
	}
	return out, nil
}

// visiumInverse maps checkerboard distances back to the original hex indices.
func visiumInverse(distances *mat.Dense, origRows int) *mat.Dense {
	rows, cols := distances.Dims()
	out := mat.NewDense(origRows, cols, nil)
	for x := 0; x < rows; x++ {
		for y := 0; y < cols; y++ {
			if (x+y)%2 == 0 {
				out.Set((x+y)/2, y, distances.At(x, y))
			}
		}
	}
	return out
}

// padAlternating pads the image by one pixel on every side. With a single pad
// value the border is constant. With a pair the two values are written to the
// opposite ends of each border vector and swapped after every vector, first
// column by column along axis 0 and then row by row along axis 1, carrying the
// swap state across axes. Both passes run over the full padded extent, so the
// pad columns consume a swap each and the axis-1 pass overwrites the corners.
// On a checkerboard input the pair continues the checkerboard pattern across
// the border.
func padAlternating(image *grid.Grid, pad []int) *grid.Grid {
	rows, cols := image.Rows(), image.Cols()
	out := grid.New(rows+2, cols+2)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out.Set(r+1, c+1, image.At(r, c))
		}
	}

	if len(pad) == 1 {
		v := pad[0]
		for c := 0; c < cols+2; c++ {
			out.Set(0, c, v)
			out.Set(rows+1, c, v)
		}
		for r := 0; r < rows+2; r++ {
			out.Set(r, 0, v)
			out.Set(r, cols+1, v)
		}
		return out
	}

	first, last := pad[0], pad[len(pad)-1]
	// Axis 0: one vector per padded column, corners included.
	for c := 0; c < cols+2; c++ {
		out.Set(0, c, first)
		out.Set(rows+1, c, last)
		first, last = 1-first, 1-last
	}
	// Axis 1: one vector per padded row, overwriting the corners.
	for r := 0; r < rows+2; r++ {
		out.Set(r, 0, first)
		out.Set(r, cols+1, last)
		first, last = 1-first, 1-last
	}
	return out
}

// cropBorder strips the one-pixel pad again.
func cropBorder(m *mat.Dense) *mat.Dense {
	rows, cols := m.Dims()
	out := mat.NewDense(rows-2, cols-2, nil)
	for r := 1; r < rows-1; r++ {
		for c := 1; c < cols-1; c++ {
			out.Set(r-1, c-1, m.At(r, c))
		}
	}
	return out
}
