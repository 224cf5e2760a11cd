package pipeline

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"spatialmorph/pkg/grid"
	"spatialmorph/pkg/points"
)

// Backbone runs the seven processing stages in their fixed order:
// map, count, mux, morphological filter, threshold, algebraic filter, label.
// Snapshot, when set, is called with every intermediate image so callers can
// persist or inspect the state between stages.
type Backbone struct {
	Mapper              Mapper
	Counter             Counter
	Muxer               Muxer
	MorphologicalFilter MorphologicalFilter
	Thresholder         Thresholder
	AlgebraicFilter     AlgebraicFilter
	Labeler             Labeler

	Log      zerolog.Logger
	Snapshot func(stage string, image *grid.Grid)
}

// Run processes the detections through all stages and returns the labeled
// image. Stage failures abort the run with the stage name in the error.
func (b *Backbone) Run(ps *points.PointSet) (*grid.Grid, error) {
	start := time.Now()
	b.Log.Info().Int("detections", ps.Len()).Msg("starting pipeline")

	mapped, err := b.Mapper.Map(ps)
	if err != nil {
		return nil, fmt.Errorf("mapper stage: %w", err)
	}
	b.stageDone("map", start)

	t := time.Now()
	counted, err := b.Counter.Count(mapped)
	if err != nil {
		return nil, fmt.Errorf("counter stage: %w", err)
	}
	b.Log.Info().Str("stage", "count").Int("genes", len(counted)).
		Dur("elapsed", time.Since(t)).Msg("stage complete")

	t = time.Now()
	image, err := b.Muxer.Mux(counted)
	if err != nil {
		return nil, fmt.Errorf("muxer stage: %w", err)
	}
	b.snapshot("mux", image)
	b.stageDone("mux", t)

	t = time.Now()
	image, err = b.MorphologicalFilter.Filter(image)
	if err != nil {
		return nil, fmt.Errorf("morphological filter stage: %w", err)
	}
	b.snapshot("filter", image)
	b.stageDone("filter", t)

	t = time.Now()
	image, err = b.Thresholder.Threshold(image)
	if err != nil {
		return nil, fmt.Errorf("thresholder stage: %w", err)
	}
	b.snapshot("threshold", image)
	b.stageDone("threshold", t)

	t = time.Now()
	image, err = b.AlgebraicFilter.Filter(image)
	if err != nil {
		return nil, fmt.Errorf("algebraic filter stage: %w", err)
	}
	b.snapshot("algebraic", image)
	b.stageDone("algebraic", t)

	t = time.Now()
	image, err = b.Labeler.Label(image)
	if err != nil {
		return nil, fmt.Errorf("labeler stage: %w", err)
	}
	b.snapshot("label", image)
	b.stageDone("label", t)

	b.Log.Info().Int("labels", len(image.Labels())).
		Dur("elapsed", time.Since(start)).Msg("pipeline complete")
	return image, nil
}

func (b *Backbone) snapshot(stage string, image *grid.Grid) {
	if b.Snapshot != nil {
		b.Snapshot(stage, image)
	}
}

func (b *Backbone) stageDone(stage string, since time.Time) {
	b.Log.Info().Str("stage", stage).Dur("elapsed", time.Since(since)).Msg("stage complete")
}
