package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskCovers(t *testing.T) {
	m := AllTrue(2, 3)
	assert.True(t, m.Covers(New(2, 3)))
	assert.False(t, m.Covers(New(3, 2)))
}

func TestMaskFromRows(t *testing.T) {
	m := MaskFromRows([][]bool{
		{true, false},
		{false, true},
	})
	assert.True(t, m.At(0, 0))
	assert.False(t, m.At(0, 1))

	assert.Nil(t, MaskFromRows([][]bool{{true}, {true, false}}))
}
