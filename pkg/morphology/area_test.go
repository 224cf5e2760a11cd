package morphology

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"spatialmorph/pkg/grid"
)

func TestAreaOpeningRemovesSmallComponents(t *testing.T) {
	image := grid.MustFromRows([][]int{
		{5, 5, 0, 0},
		{5, 5, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 7},
	})

	// The single pixel falls below the threshold, the block keeps its values.
	assert.True(t, AreaOpening(image, 2, nil).Equal(grid.MustFromRows([][]int{
		{5, 5, 0, 0},
		{5, 5, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})))
}

func TestAreaOpeningKeepsComponentsAtThreshold(t *testing.T) {
	image := grid.MustFromRows([][]int{
		{1, 1},
		{0, 0},
	})
	assert.True(t, AreaOpening(image, 2, nil).Equal(image))
}

func TestAreaClosingFillsInteriorHoles(t *testing.T) {
	image := grid.MustFromRows([][]int{
		{0, 0, 0, 0, 0},
		{0, 1, 1, 1, 0},
		{0, 1, 0, 1, 0},
		{0, 1, 1, 1, 0},
		{0, 0, 0, 0, 0},
	})

	closed := AreaClosing(image, 2, nil)
	assert.Equal(t, 1, closed.At(2, 2))
	// The surrounding background touches the border and is never filled.
	assert.Equal(t, 0, closed.At(0, 0))
	assert.Equal(t, 0, closed.At(4, 4))
}

func TestAreaClosingKeepsBorderHoles(t *testing.T) {
	image := grid.MustFromRows([][]int{
		{1, 0, 1},
		{1, 1, 1},
		{1, 1, 1},
	})
	assert.True(t, AreaClosing(image, 2, nil).Equal(image))
}

func TestAreaClosingRespectsThreshold(t *testing.T) {
	image := grid.MustFromRows([][]int{
		{1, 1, 1, 1},
		{1, 0, 0, 1},
		{1, 0, 0, 1},
		{1, 1, 1, 1},
	})

	// The 4-pixel hole is not smaller than the threshold and stays open.
	assert.True(t, AreaClosing(image, 4, nil).Equal(image))
	assert.Equal(t, 1, AreaClosing(image, 5, nil).At(1, 1))
}
