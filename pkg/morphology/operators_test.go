package morphology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spatialmorph/pkg/grid"
)

func block5x5() *grid.Grid {
	return grid.MustFromRows([][]int{
		{0, 0, 0, 0, 0},
		{0, 1, 1, 1, 0},
		{0, 1, 1, 1, 0},
		{0, 1, 1, 1, 0},
		{0, 0, 0, 0, 0},
	})
}

func TestErodeBlock(t *testing.T) {
	eroded := Erode(block5x5(), nil)
	assert.True(t, eroded.Equal(grid.MustFromRows([][]int{
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	})))
}

func TestErodeIgnoresOutOfBounds(t *testing.T) {
	// A fully foreground image has no in-bounds background, so border pixels
	// see no zero neighbor and nothing erodes.
	ones := grid.MustFromRows([][]int{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	})
	assert.True(t, Erode(ones, nil).Equal(ones))
}

func TestDilateSinglePixel(t *testing.T) {
	center := grid.New(3, 3)
	center.Set(1, 1, 1)

	assert.True(t, Dilate(center, grid.Cross()).Equal(grid.MustFromRows([][]int{
		{0, 1, 0},
		{1, 1, 1},
		{0, 1, 0},
	})))
	assert.True(t, Dilate(center, grid.Full()).Equal(grid.MustFromRows([][]int{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	})))
}

func TestOpenRemovesIsolatedPixel(t *testing.T) {
	image := block5x5()
	image.Set(0, 0, 1)

	// The isolated corner pixel is gone and the block is rounded to the
	// cross-shaped dilation of its eroded core.
	assert.True(t, Open(image, grid.Cross()).Equal(grid.MustFromRows([][]int{
		{0, 0, 0, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 1, 1, 1, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 0, 0, 0},
	})))
}

func TestCloseFillsHole(t *testing.T) {
	image := block5x5()
	image.Set(2, 2, 0)

	closed := Close(image, grid.Cross())
	assert.Equal(t, 1, closed.At(2, 2))
	assert.True(t, closed.Equal(grid.MustFromRows([][]int{
		{0, 0, 1, 0, 0},
		{0, 1, 1, 1, 0},
		{1, 1, 1, 1, 1},
		{0, 1, 1, 1, 0},
		{0, 0, 1, 0, 0},
	})))
}

func TestOpenIdempotent(t *testing.T) {
	image := block5x5()
	image.Set(0, 0, 1)
	image.Set(4, 4, 3)
	image.Set(1, 2, 2)

	for _, e := range []*grid.Element{grid.Cross(), grid.Full()} {
		opened := Open(image, e)
		assert.True(t, Open(opened, e).Equal(opened))
	}
}

func TestCloseIdempotent(t *testing.T) {
	image := block5x5()
	image.Set(2, 2, 0)
	image.Set(3, 3, 2)

	for _, e := range []*grid.Element{grid.Cross(), grid.Full()} {
		closed := Close(image, e)
		assert.True(t, Close(closed, e).Equal(closed))
	}
}

func TestGeodesicDilateClampsToMask(t *testing.T) {
	mask := grid.MustFromRows([][]int{
		{0, 2, 0},
		{2, 2, 2},
		{0, 2, 0},
	})
	marker := grid.New(3, 3)
	marker.Set(1, 1, 1)

	result, err := GeodesicDilate(marker, mask, grid.Cross())
	require.NoError(t, err)
	assert.True(t, result.Equal(grid.MustFromRows([][]int{
		{0, 1, 0},
		{1, 1, 1},
		{0, 1, 0},
	})))
}

func TestGeodesicErodeClampsToMask(t *testing.T) {
	marker := grid.MustFromRows([][]int{
		{2, 2, 2},
		{2, 0, 2},
		{2, 2, 2},
	})
	mask := grid.MustFromRows([][]int{
		{0, 1, 0},
		{1, 0, 1},
		{0, 1, 0},
	})

	result, err := GeodesicErode(marker, mask, grid.Cross())
	require.NoError(t, err)
	// Erosion spreads the central zero to its cross neighbors, the mask lifts
	// those back to 1.
	assert.True(t, result.Equal(grid.MustFromRows([][]int{
		{2, 1, 2},
		{1, 0, 1},
		{2, 1, 2},
	})))
}

func TestGeodesicShapeMismatch(t *testing.T) {
	marker := grid.New(2, 2)
	mask := grid.New(3, 3)

	_, err := GeodesicDilate(marker, mask, nil)
	require.ErrorIs(t, err, grid.ErrShapeMismatch)

	_, err = GeodesicErode(marker, mask, nil)
	require.ErrorIs(t, err, grid.ErrShapeMismatch)
}

func TestBinaryErodeBorderValue(t *testing.T) {
	ones := grid.MustFromRows([][]int{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	})

	// Border reads as background: only the center survives.
	assert.True(t, BinaryErode(ones, nil, 0).Equal(grid.MustFromRows([][]int{
		{0, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	})))

	// Border reads as foreground: nothing erodes.
	assert.True(t, BinaryErode(ones, nil, 1).Equal(ones))
}
