package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRows(t *testing.T) {
	g, err := FromRows([][]int{
		{0, 1, 2},
		{3, 0, 0},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 3, g.Cols())
	assert.Equal(t, 2, g.At(0, 2))
	assert.Equal(t, 3, g.At(1, 0))
}

func TestFromRowsRagged(t *testing.T) {
	_, err := FromRows([][]int{
		{0, 1},
		{1},
	})
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestFromRowsEmpty(t *testing.T) {
	g, err := FromRows(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Rows())
	assert.False(t, g.Any())
}

func TestCloneIsIndependent(t *testing.T) {
	g := MustFromRows([][]int{{1, 2}, {3, 4}})
	clone := g.Clone()
	clone.Set(0, 0, 9)
	assert.Equal(t, 1, g.At(0, 0))
	assert.Equal(t, 9, clone.At(0, 0))
}

func TestEqual(t *testing.T) {
	a := MustFromRows([][]int{{1, 0}, {0, 2}})
	b := MustFromRows([][]int{{1, 0}, {0, 2}})
	c := MustFromRows([][]int{{1, 0}, {0, 3}})
	d := MustFromRows([][]int{{1, 0, 0}, {0, 2, 0}})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
}

func TestBinarize(t *testing.T) {
	g := MustFromRows([][]int{{0, 5}, {2, 0}})
	assert.True(t, g.Binarize().Equal(MustFromRows([][]int{{0, 1}, {1, 0}})))
}

func TestBinarizeIndex(t *testing.T) {
	g := MustFromRows([][]int{
		{0, 1, 2},
		{3, 2, 0},
	})

	all := g.BinarizeIndex(nil)
	assert.True(t, all.Equal(MustFromRows([][]int{{0, 1, 1}, {1, 1, 0}})))

	some := g.BinarizeIndex([]int{2})
	assert.True(t, some.Equal(MustFromRows([][]int{{0, 0, 1}, {0, 1, 0}})))
}

func TestComplement(t *testing.T) {
	g := MustFromRows([][]int{{0, 7}, {1, 0}})
	assert.True(t, g.Complement().Equal(MustFromRows([][]int{{1, 0}, {0, 1}})))
}

func TestLabels(t *testing.T) {
	g := MustFromRows([][]int{
		{3, 0, 1},
		{1, 3, 2},
	})
	assert.Equal(t, []int{1, 2, 3}, g.Labels())

	empty := New(2, 2)
	assert.Empty(t, empty.Labels())
}

func TestForegroundPoints(t *testing.T) {
	g := MustFromRows([][]int{
		{0, 1},
		{2, 0},
	})
	assert.Equal(t, []Point{{R: 0, C: 1}, {R: 1, C: 0}}, g.ForegroundPoints())
}
