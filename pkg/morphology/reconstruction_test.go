package morphology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spatialmorph/pkg/grid"
)

func TestReconstructByDilationRecoversMarkedComponent(t *testing.T) {
	mask := grid.MustFromRows([][]int{
		{1, 1, 0, 0, 0},
		{1, 1, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 1, 1},
		{0, 0, 0, 1, 1},
	})
	marker := grid.New(5, 5)
	marker.Set(0, 0, 1)

	result, err := ReconstructByDilation(marker, mask, nil)
	require.NoError(t, err)
	assert.True(t, result.Equal(grid.MustFromRows([][]int{
		{1, 1, 0, 0, 0},
		{1, 1, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	})))
}

func TestReconstructByDilationFixedPoint(t *testing.T) {
	mask := grid.MustFromRows([][]int{
		{1, 1, 1},
		{0, 0, 1},
		{1, 1, 1},
	})
	marker := grid.New(3, 3)
	marker.Set(0, 0, 1)

	result, err := ReconstructByDilation(marker, mask, nil)
	require.NoError(t, err)

	again, err := GeodesicDilate(result, mask, nil)
	require.NoError(t, err)
	assert.True(t, again.Equal(result))
}

func TestReconstructByErosionSpreadsMinima(t *testing.T) {
	marker := grid.MustFromRows([][]int{
		{0, 2, 2},
		{2, 2, 2},
		{2, 2, 2},
	})
	mask := grid.New(3, 3)
	mask.Set(1, 1, 1)

	result, err := ReconstructByErosion(marker, mask, nil)
	require.NoError(t, err)
	// The corner zero floods the whole marker; only the masked center stays up.
	assert.True(t, result.Equal(grid.MustFromRows([][]int{
		{0, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	})))
}

func TestReconstructShapeMismatch(t *testing.T) {
	_, err := ReconstructByDilation(grid.New(2, 2), grid.New(3, 3), nil)
	require.ErrorIs(t, err, grid.ErrShapeMismatch)

	_, err = ReconstructByErosion(grid.New(2, 2), grid.New(3, 3), nil)
	require.ErrorIs(t, err, grid.ErrShapeMismatch)
}
