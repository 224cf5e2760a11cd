// Package pipeline chains the processing stages that turn raw spatial
// detections into a labeled image: coordinate mapping, counting, multiplexing,
// morphological filtering, thresholding, algebraic filtering and labeling.
// Each stage selects one of a fixed set of methods, or an injected custom
// function, so the same backbone serves multiple platforms and workflows.
package pipeline

import (
	"fmt"
	"math"
	"sort"

	"spatialmorph/pkg/grid"
	"spatialmorph/pkg/morphology"
	"spatialmorph/pkg/points"
)

// Method names accepted by the stages. Stages that support a pass-through
// accept MethodNaive; the remaining names are stage-specific.
const (
	MethodNaive       = "naive"
	MethodCustom      = "custom"
	MethodVisium      = "visium"
	MethodXenium      = "xenium"
	MethodTotal       = "total"
	MethodMaximum     = "maximum"
	MethodOpening     = "opening"
	MethodClosing     = "closing"
	MethodOpenClose   = "open_close"
	MethodCloseOpen   = "close_open"
	MethodBinary      = "binary"
	MethodAreaOpening = "area_opening"
	MethodAreaClosing = "area_closing"
	MethodBlob        = "blob"
)

// Mapper transforms raw detection coordinates into grid-aligned ones.
//
// The visium method collapses the hexagonal spot arrangement onto a
// rectangular grid with x' = floor((x+y)/2). The xenium method bins
// sub-cellular coordinates with spacing Spacing. The naive method passes
// coordinates through unchanged.
type Mapper struct {
	Method  string
	Spacing float64
	Custom  func(*points.PointSet) (*points.PointSet, error)
}

// Map applies the configured coordinate transform.
func (m *Mapper) Map(ps *points.PointSet) (*points.PointSet, error) {
	switch m.Method {
	case MethodNaive:
		return ps, nil
	case MethodVisium:
		out := &points.PointSet{G: ps.G, X: make([]float64, ps.Len()), Y: ps.Y}
		for i := range ps.X {
			out.X[i] = math.Floor((ps.X[i] + ps.Y[i]) / 2)
		}
		return out, nil
	case MethodXenium:
		if m.Spacing <= 0 {
			return nil, fmt.Errorf("mapper: xenium spacing must be positive, got %v", m.Spacing)
		}
		out := &points.PointSet{G: ps.G, X: make([]float64, ps.Len()), Y: make([]float64, ps.Len())}
		for i := range ps.X {
			out.X[i] = math.Floor(ps.X[i] / m.Spacing)
			out.Y[i] = math.Floor(ps.Y[i] / m.Spacing)
		}
		return out, nil
	case MethodCustom:
		if m.Custom == nil {
			return nil, fmt.Errorf("mapper: custom method selected but no function set")
		}
		return m.Custom(ps)
	default:
		return nil, fmt.Errorf("mapper: unknown method %q", m.Method)
	}
}

// Counter aggregates detections into one count image per gene.
//
// Genes restricts counting to the listed identifiers; identifiers absent from
// the data are silently dropped. The total method counts every detection at
// its (floored) location, the naive method counts only the first detection of
// each gene and ignores the rest.
type Counter struct {
	Method string
	Genes  []string
	Custom func(*points.PointSet) (map[string]*grid.Grid, error)
}

// Count bins the point set onto a grid sized to the maximum coordinates.
func (c *Counter) Count(ps *points.PointSet) (map[string]*grid.Grid, error) {
	switch c.Method {
	case MethodNaive, MethodTotal:
		return c.count(ps, c.Method == MethodNaive)
	case MethodCustom:
		if c.Custom == nil {
			return nil, fmt.Errorf("counter: custom method selected but no function set")
		}
		return c.Custom(ps)
	default:
		return nil, fmt.Errorf("counter: unknown method %q", c.Method)
	}
}

func (c *Counter) count(ps *points.PointSet, firstOnly bool) (map[string]*grid.Grid, error) {
	if ps.Len() == 0 {
		return nil, fmt.Errorf("counter: no detections to count")
	}
	present := map[string]bool{}
	for _, g := range ps.G {
		present[g] = true
	}
	wanted := map[string]bool{}
	for _, g := range c.Genes {
		if present[g] {
			wanted[g] = true
		}
	}

	maxX, maxY := 0, 0
	for i := range ps.X {
		x, y := int(ps.X[i]), int(ps.Y[i])
		if x < 0 || y < 0 {
			return nil, fmt.Errorf("counter: negative coordinate (%d, %d) at detection %d", x, y, i)
		}
		if x > maxX {
			maxX = x
		}
		if y > maxY {
			maxY = y
		}
	}

	image := map[string]*grid.Grid{}
	for g := range wanted {
		image[g] = grid.New(maxX+1, maxY+1)
	}
	for i := range ps.G {
		g := ps.G[i]
		if !wanted[g] {
			continue
		}
		x, y := int(ps.X[i]), int(ps.Y[i])
		image[g].Set(x, y, image[g].At(x, y)+1)
		if firstOnly {
			delete(wanted, g)
		}
	}
	return image, nil
}

// Muxer collapses the per-gene count images into a single image.
//
// The naive method selects the image of the lexicographically smallest gene
// name, the maximum method takes the point-wise maximum over all images.
type Muxer struct {
	Method string
	Custom func(map[string]*grid.Grid) (*grid.Grid, error)
}

// Mux combines the per-gene images according to the configured method.
func (m *Muxer) Mux(image map[string]*grid.Grid) (*grid.Grid, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("muxer: no images to combine")
	}
	switch m.Method {
	case MethodNaive:
		names := make([]string, 0, len(image))
		for g := range image {
			names = append(names, g)
		}
		sort.Strings(names)
		return image[names[0]], nil
	case MethodMaximum:
		var out *grid.Grid
		for _, img := range image {
			if out == nil {
				out = img.Clone()
				continue
			}
			if !out.SameShape(img) {
				return nil, fmt.Errorf("muxer: %w between gene images", grid.ErrShapeMismatch)
			}
			for r := 0; r < img.Rows(); r++ {
				for c := 0; c < img.Cols(); c++ {
					if v := img.At(r, c); v > out.At(r, c) {
						out.Set(r, c, v)
					}
				}
			}
		}
		return out, nil
	case MethodCustom:
		if m.Custom == nil {
			return nil, fmt.Errorf("muxer: custom method selected but no function set")
		}
		return m.Custom(image)
	default:
		return nil, fmt.Errorf("muxer: unknown method %q", m.Method)
	}
}

// MorphologicalFilter smooths the combined image with opening, closing or a
// composition of the two. The naive method passes the image through.
type MorphologicalFilter struct {
	Method  string
	Element *grid.Element
	Custom  func(*grid.Grid) (*grid.Grid, error)
}

// Filter applies the configured morphological operation.
func (f *MorphologicalFilter) Filter(image *grid.Grid) (*grid.Grid, error) {
	switch f.Method {
	case MethodNaive:
		return image, nil
	case MethodOpening:
		return morphology.Open(image, f.Element), nil
	case MethodClosing:
		return morphology.Close(image, f.Element), nil
	case MethodOpenClose:
		return morphology.Close(morphology.Open(image, f.Element), f.Element), nil
	case MethodCloseOpen:
		return morphology.Open(morphology.Close(image, f.Element), f.Element), nil
	case MethodCustom:
		if f.Custom == nil {
			return nil, fmt.Errorf("morphological filter: custom method selected but no function set")
		}
		return f.Custom(image)
	default:
		return nil, fmt.Errorf("morphological filter: unknown method %q", f.Method)
	}
}

// Thresholder binarizes the filtered image. The binary method sets pixels with
// value >= Tau to 1 and the rest to 0; the naive method passes through.
type Thresholder struct {
	Method string
	Tau    float64
	Custom func(*grid.Grid) (*grid.Grid, error)
}

// Threshold applies the configured thresholding method.
func (t *Thresholder) Threshold(image *grid.Grid) (*grid.Grid, error) {
	switch t.Method {
	case MethodNaive:
		return image, nil
	case MethodBinary:
		out := grid.New(image.Rows(), image.Cols())
		for i, v := range image.Data() {
			if float64(v) >= t.Tau {
				out.Data()[i] = 1
			}
		}
		return out, nil
	case MethodCustom:
		if t.Custom == nil {
			return nil, fmt.Errorf("thresholder: custom method selected but no function set")
		}
		return t.Custom(image)
	default:
		return nil, fmt.Errorf("thresholder: unknown method %q", t.Method)
	}
}

// AlgebraicFilter removes connected components or fills holes by area.
// Lambda is the area threshold, Element the connectivity. The naive method
// passes through.
type AlgebraicFilter struct {
	Method  string
	Lambda  int
	Element *grid.Element
	Custom  func(*grid.Grid) (*grid.Grid, error)
}

// Filter applies the configured algebraic operation.
func (f *AlgebraicFilter) Filter(image *grid.Grid) (*grid.Grid, error) {
	switch f.Method {
	case MethodNaive:
		return image, nil
	case MethodAreaOpening:
		return morphology.AreaOpening(image, f.Lambda, f.Element), nil
	case MethodAreaClosing:
		return morphology.AreaClosing(image, f.Lambda, f.Element), nil
	case MethodCustom:
		if f.Custom == nil {
			return nil, fmt.Errorf("algebraic filter: custom method selected but no function set")
		}
		return f.Custom(image)
	default:
		return nil, fmt.Errorf("algebraic filter: unknown method %q", f.Method)
	}
}

// Labeler assigns connected component labels to the binarized image. The blob
// method labels with the configured connectivity; naive passes through.
type Labeler struct {
	Method  string
	Element *grid.Element
	Custom  func(*grid.Grid) (*grid.Grid, error)
}

// Label applies the configured labeling method.
func (l *Labeler) Label(image *grid.Grid) (*grid.Grid, error) {
	switch l.Method {
	case MethodNaive:
		return image, nil
	case MethodBlob:
		return morphology.Label(image, l.Element), nil
	case MethodCustom:
		if l.Custom == nil {
			return nil, fmt.Errorf("labeler: custom method selected but no function set")
		}
		return l.Custom(image)
	default:
		return nil, fmt.Errorf("labeler: unknown method %q", l.Method)
	}
}
