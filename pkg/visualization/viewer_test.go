package visualization

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"spatialmorph/pkg/grid"
)

func TestRenderGridScaling(t *testing.T) {
	g := grid.MustFromRows([][]int{
		{0, 2},
		{4, 0},
	})

	img := RenderGrid(g)
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
}

func TestRenderGridValues(t *testing.T) {
	g := grid.MustFromRows([][]int{
		{0, 2},
		{4, 0},
	})

	img := RenderGrid(g)
	r, _, _, _ := img.At(1, 0).RGBA() // column 1, row 0 holds value 2
	assert.Equal(t, uint32(32767), r)
	r, _, _, _ = img.At(0, 1).RGBA() // column 0, row 1 holds value 4
	assert.Equal(t, uint32(65535), r)
	r, _, _, _ = img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), r)
}

func TestRenderGridConstant(t *testing.T) {
	g := grid.MustFromRows([][]int{{3, 3}})
	img := RenderGrid(g)
	r, _, _, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), r)
}

func TestRenderGridSigned(t *testing.T) {
	g := grid.MustFromRows([][]int{{-1, 0, 1}})
	img := RenderGrid(g)

	r, _, _, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), r)
	r, _, _, _ = img.At(1, 0).RGBA()
	assert.Equal(t, uint32(32767), r)
	r, _, _, _ = img.At(2, 0).RGBA()
	assert.Equal(t, uint32(65535), r)
}

func TestRenderDenseSigned(t *testing.T) {
	m := mat.NewDense(1, 3, []float64{-1, 0, 1})
	img := RenderDense(m)

	r, _, _, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), r)
	r, _, _, _ = img.At(2, 0).RGBA()
	assert.Equal(t, uint32(65535), r)
}

func TestSaveGridPNG(t *testing.T) {
	g := grid.MustFromRows([][]int{
		{0, 1, 2},
		{3, 4, 5},
	})
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, SaveGridPNG(g, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
}

func TestSnapshotterNumbersStages(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "stages")
	s, err := NewSnapshotter(dir)
	require.NoError(t, err)

	g := grid.MustFromRows([][]int{{0, 1}})
	s.Snapshot("mux", g)
	s.Snapshot("filter", g)

	_, err = os.Stat(filepath.Join(dir, "00_mux.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "01_filter.png"))
	assert.NoError(t, err)
}
