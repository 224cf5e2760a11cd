package morphology

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"spatialmorph/pkg/grid"
)

func TestPropagationFullElement(t *testing.T) {
	ones := grid.MustFromRows([][]int{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	})

	// The center re-covers the block in a single 8-connected dilation, every
	// other pixel needs two.
	assert.True(t, Propagation(ones, grid.Full()).Equal(grid.MustFromRows([][]int{
		{2, 2, 2},
		{2, 1, 2},
		{2, 2, 2},
	})))
}

func TestPropagationCrossElement(t *testing.T) {
	ones := grid.MustFromRows([][]int{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	})

	assert.True(t, Propagation(ones, grid.Cross()).Equal(grid.MustFromRows([][]int{
		{4, 3, 4},
		{3, 2, 3},
		{4, 3, 4},
	})))
}

func TestPropagationIsolatedPixel(t *testing.T) {
	image := grid.New(3, 3)
	image.Set(1, 1, 1)

	// A single-pixel component is already its own fixed point, so its
	// recorded depth is 0 and the output is indistinguishable from background.
	assert.True(t, Propagation(image, nil).Equal(grid.New(3, 3)))
}

func TestPropagationComponentsAreIndependent(t *testing.T) {
	image := grid.MustFromRows([][]int{
		{1, 1, 0},
		{0, 0, 0},
		{0, 0, 1},
	})

	assert.True(t, Propagation(image, nil).Equal(grid.MustFromRows([][]int{
		{1, 1, 0},
		{0, 0, 0},
		{0, 0, 0},
	})))
}

func TestPropagationEmptyImage(t *testing.T) {
	empty := grid.New(4, 4)
	assert.True(t, Propagation(empty, nil).Equal(empty))
}
