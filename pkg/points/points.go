// Package points reads raw spatial detections from CSV files and writes
// per-cell and per-label results back out. Files ending in .gz are
// transparently gzip-compressed, matching the platform export formats.
package points

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// PointSet holds one detection per index: an identifier (gene name or cell id)
// and its spatial coordinates. Coordinates are kept as floats until a mapper
// bins them onto a grid.
type PointSet struct {
	G []string
	X []float64
	Y []float64
}

// Len returns the number of detections.
func (p *PointSet) Len() int { return len(p.G) }

// openMaybeGzip opens path and wraps it in a gzip reader when the name says so.
func openMaybeGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening gzip stream: %w", err)
	}
	return &gzipFile{zr: zr, f: f}, nil
}

type gzipFile struct {
	zr *gzip.Reader
	f  *os.File
}

func (g *gzipFile) Read(p []byte) (int, error) { return g.zr.Read(p) }

func (g *gzipFile) Close() error {
	if err := g.zr.Close(); err != nil {
		g.f.Close()
		return err
	}
	return g.f.Close()
}
