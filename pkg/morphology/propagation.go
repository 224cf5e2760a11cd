package morphology

import (
	"runtime"
	"sync"

	"spatialmorph/pkg/grid"
)

// Propagation computes, for every foreground pixel, the number of geodesic
// dilation steps a marker seeded at only that pixel needs before it stops
// growing inside its connected component. The stable state of that growth is
// the reconstruction-by-dilation of the seed under the image, so the recorded
// value is the geodesic eccentricity of the pixel: geodesic centers of a
// component carry its minimum, far corners its maximum, and an isolated
// single-pixel component records 0.
//
// Each seed is grown independently against a read-only view of the image and
// owns exactly one output cell, so the seeds are fanned out across a worker
// pool without locking. This is the dominant cost center of the package:
// O(foreground pixels x component diameter x component area).
func Propagation(image *grid.Grid, element *grid.Element) *grid.Grid {
	element = element.OrDefault()
	out := grid.New(image.Rows(), image.Cols())
	points := image.ForegroundPoints()
	if len(points) == 0 {
		return out
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > len(points) {
		numWorkers = len(points)
	}
	pointsPerWorker := (len(points) + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		start := w * pointsPerWorker
		end := start + pointsPerWorker
		if end > len(points) {
			end = len(points)
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(points []grid.Point) {
			defer wg.Done()
			// Two marker buffers are reused across all seeds owned by
			// this worker; the inner loop allocates nothing.
			worker := newPropagationWorker(image, element)
			for _, p := range points {
				out.Set(p.R, p.C, worker.depth(p))
			}
		}(points[start:end])
	}
	wg.Wait()

	return out
}

// propagationWorker grows one binary seed at a time inside the mask image.
type propagationWorker struct {
	mask *grid.Grid
	offs []grid.Point
	rows int
	cols int
	cur  []int
	next []int
}

func newPropagationWorker(mask *grid.Grid, element *grid.Element) *propagationWorker {
	rows, cols := mask.Rows(), mask.Cols()
	return &propagationWorker{
		mask: mask,
		offs: element.Offsets(),
		rows: rows,
		cols: cols,
		cur:  make([]int, rows*cols),
		next: make([]int, rows*cols),
	}
}

// depth counts the geodesic dilation steps that change the seed before it
// reaches its fixed point.
func (w *propagationWorker) depth(seed grid.Point) int {
	for i := range w.cur {
		w.cur[i] = 0
	}
	w.cur[seed.R*w.cols+seed.C] = 1

	steps := 0
	for {
		if !w.dilateClamped() {
			return steps
		}
		w.cur, w.next = w.next, w.cur
		steps++
	}
}

// dilateClamped writes one geodesic dilation of cur into next and reports
// whether anything changed.
func (w *propagationWorker) dilateClamped() bool {
	mask := w.mask.Data()
	changed := false
	for r := 0; r < w.rows; r++ {
		for c := 0; c < w.cols; c++ {
			i := r*w.cols + c
			v := 0
			for _, o := range w.offs {
				nr, nc := r+o.R, c+o.C
				if nr < 0 || nr >= w.rows || nc < 0 || nc >= w.cols {
					continue
				}
				if w.cur[nr*w.cols+nc] > v {
					v = w.cur[nr*w.cols+nc]
				}
			}
			if m := mask[i]; m < v {
				v = m
			}
			w.next[i] = v
			if v != w.cur[i] {
				changed = true
			}
		}
	}
	return changed
}
