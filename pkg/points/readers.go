package points

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// ReadTranscripts reads transcript-level detections: one row per detected
// molecule with columns feature_name, x_location, y_location.
func ReadTranscripts(path string) (*PointSet, error) {
	return readPoints(path, "feature_name", "x_location", "y_location")
}

// ReadCells reads cell centroids: one row per cell with columns cell_id,
// x_centroid, y_centroid.
func ReadCells(path string) (*PointSet, error) {
	return readPoints(path, "cell_id", "x_centroid", "y_centroid")
}

func readPoints(path, gCol, xCol, yCol string) (*PointSet, error) {
	r, err := openMaybeGzip(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer r.Close()

	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading %s header: %w", path, err)
	}
	gIdx, xIdx, yIdx := -1, -1, -1
	for i, name := range header {
		switch name {
		case gCol:
			gIdx = i
		case xCol:
			xIdx = i
		case yCol:
			yIdx = i
		}
	}
	if gIdx < 0 || xIdx < 0 || yIdx < 0 {
		return nil, fmt.Errorf("%s: missing one of columns %s, %s, %s", path, gCol, xCol, yCol)
	}

	ps := &PointSet{}
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		x, err := strconv.ParseFloat(record[xIdx], 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: bad %s: %w", path, line, xCol, err)
		}
		y, err := strconv.ParseFloat(record[yIdx], 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: bad %s: %w", path, line, yCol, err)
		}
		ps.G = append(ps.G, record[gIdx])
		ps.X = append(ps.X, x)
		ps.Y = append(ps.Y, y)
	}
	return ps, nil
}
