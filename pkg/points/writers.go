package points

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"spatialmorph/pkg/grid"
)

// WriteAssignments writes one row per point with the label found at its
// (floored) grid coordinates, columns cell_id,group. Points falling outside
// the grid are assigned group 0.
func WriteAssignments(path string, labels *grid.Grid, ps *PointSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"cell_id", "group"}); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	for i := range ps.G {
		r, c := int(ps.X[i]), int(ps.Y[i])
		group := 0
		if r >= 0 && r < labels.Rows() && c >= 0 && c < labels.Cols() {
			group = labels.At(r, c)
		}
		if err := w.Write([]string{ps.G[i], strconv.Itoa(group)}); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteFeature writes one row per label with its feature value, columns
// group,feature, in ascending label order.
func WriteFeature[V int | float64](path string, feature map[int]V) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	defer f.Close()

	labels := make([]int, 0, len(feature))
	for l := range feature {
		labels = append(labels, l)
	}
	sort.Ints(labels)

	w := csv.NewWriter(f)
	if err := w.Write([]string{"group", "feature"}); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	for _, l := range labels {
		if err := w.Write([]string{strconv.Itoa(l), formatValue(feature[l])}); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteCenters writes one row per center pixel, columns group,row,col, in
// ascending label order.
func WriteCenters(path string, centers map[int][]grid.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	defer f.Close()

	labels := make([]int, 0, len(centers))
	for l := range centers {
		labels = append(labels, l)
	}
	sort.Ints(labels)

	w := csv.NewWriter(f)
	if err := w.Write([]string{"group", "row", "col"}); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	for _, l := range labels {
		for _, p := range centers[l] {
			row := []string{strconv.Itoa(l), strconv.Itoa(p.R), strconv.Itoa(p.C)}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
		}
	}
	w.Flush()
	return w.Error()
}

func formatValue[V int | float64](v V) string {
	switch x := any(v).(type) {
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}
