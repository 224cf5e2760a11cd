package features

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"spatialmorph/pkg/grid"
)

// euclideanDistanceTransform computes, for every nonzero pixel, the exact
// Euclidean distance to the nearest zero pixel under the per-axis sampling
// (pixel spacing). Zero pixels map to 0. The transform is the separable
// lower-envelope-of-parabolas algorithm of Felzenszwalb and Huttenlocher run
// on squared distances, first down the columns and then across the rows, with
// a final square root.
func euclideanDistanceTransform(image *grid.Grid, sampling [2]float64) *mat.Dense {
	rows, cols := image.Rows(), image.Cols()
	sq := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if image.At(r, c) != 0 {
				sq.Set(r, c, math.Inf(1))
			}
		}
	}

	dt := newDistance1D(maxIntPair(rows, cols))

	// Axis 0: each column, spacing sampling[0].
	buf := make([]float64, rows)
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			buf[r] = sq.At(r, c)
		}
		dt.transform(buf[:rows], sampling[0])
		for r := 0; r < rows; r++ {
			sq.Set(r, c, buf[r])
		}
	}

	// Axis 1: each row, spacing sampling[1].
	if cap(buf) < cols {
		buf = make([]float64, cols)
	}
	buf = buf[:cols]
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			buf[c] = sq.At(r, c)
		}
		dt.transform(buf, sampling[1])
		for c := 0; c < cols; c++ {
			sq.Set(r, c, math.Sqrt(buf[c]))
		}
	}
	return sq
}

// distance1D holds the scratch buffers for the 1D squared distance transform.
type distance1D struct {
	v []int     // parabola sites
	z []float64 // boundaries between parabola regions
	d []float64 // output
}

func newDistance1D(n int) *distance1D {
	return &distance1D{
		v: make([]int, n),
		z: make([]float64, n+1),
		d: make([]float64, n),
	}
}

// transform replaces f with the lower envelope of parabolas
// (x - i*s)^2 + f[i], sampled at x = q*s.
func (t *distance1D) transform(f []float64, s float64) {
	n := len(f)
	if n == 0 {
		return
	}
	v, z, d := t.v[:n], t.z[:n+1], t.d[:n]

	k := 0
	v[0] = 0
	z[0] = math.Inf(-1)
	z[1] = math.Inf(1)
	for q := 1; q < n; q++ {
		if math.IsInf(f[q], 1) {
			// A parabola at +inf never contributes to the envelope.
			continue
		}
		xq := float64(q) * s
		for {
			xv := float64(v[k]) * s
			var split float64
			if math.IsInf(f[v[k]], 1) {
				split = math.Inf(-1)
			} else {
				split = (f[q] + xq*xq - f[v[k]] - xv*xv) / (2*xq - 2*xv)
			}
			if split <= z[k] {
				if k == 0 {
					// The new parabola dominates everything kept so
					// far (e.g. the site at 0 is +inf); restart the
					// envelope from it.
					v[0] = q
					z[0] = math.Inf(-1)
					z[1] = math.Inf(1)
					break
				}
				k--
				continue
			}
			k++
			v[k] = q
			z[k] = split
			z[k+1] = math.Inf(1)
			break
		}
	}

	k = 0
	for q := 0; q < n; q++ {
		x := float64(q) * s
		for z[k+1] < x {
			k++
		}
		if math.IsInf(f[v[k]], 1) {
			d[q] = math.Inf(1)
		} else {
			dx := x - float64(v[k])*s
			d[q] = dx*dx + f[v[k]]
		}
	}
	copy(f, d)
}

func maxIntPair(a, b int) int {
	if a > b {
		return a
	}
	return b
}
