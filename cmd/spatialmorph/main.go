package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"spatialmorph/pkg/config"
	"spatialmorph/pkg/features"
	"spatialmorph/pkg/grid"
	"spatialmorph/pkg/points"
	"spatialmorph/pkg/visualization"
)

func main() {
	configPath := flag.String("config", "spatialmorph.yaml", "Path to the YAML configuration file")
	transcripts := flag.String("transcripts", "", "Transcript CSV file (overrides the config)")
	outputDir := flag.String("output", "", "Output directory (overrides the config)")
	writeConfig := flag.Bool("write-config", false, "Write the default configuration to the config path and exit")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	if *writeConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			log.Fatal().Err(err).Msg("failed to write default config")
		}
		log.Info().Str("path", *configPath).Msg("default config written")
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *transcripts != "" {
		cfg.Input.Transcripts = *transcripts
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if cfg.Input.Transcripts == "" {
		flag.Usage()
		os.Exit(1)
	}
	if !cfg.Output.Verbose {
		log = log.Level(zerolog.WarnLevel)
	}

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("processing failed")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	ps, err := points.ReadTranscripts(cfg.Input.Transcripts)
	if err != nil {
		return err
	}
	log.Info().Str("path", cfg.Input.Transcripts).Int("detections", ps.Len()).
		Msg("transcripts loaded")

	backbone, err := cfg.Backbone()
	if err != nil {
		return err
	}
	backbone.Log = log
	if cfg.Output.SaveIntermediaryResults {
		snapshotter, err := visualization.NewSnapshotter(filepath.Join(cfg.Output.Dir, "stages"))
		if err != nil {
			return err
		}
		backbone.Snapshot = snapshotter.Snapshot
	}

	labels, err := backbone.Run(ps)
	if err != nil {
		return err
	}

	out := func(name string) string { return filepath.Join(cfg.Output.Dir, name) }
	if err := visualization.SaveGridPNG(labels, out("labels.png")); err != nil {
		return fmt.Errorf("writing label image: %w", err)
	}
	if err := points.WriteAssignments(out("assignments.csv"), labels, ps); err != nil {
		return err
	}

	return writeFeatures(cfg, labels, log, out)
}

// writeFeatures computes and persists the feature set selected in the config.
func writeFeatures(cfg *config.Config, labels *grid.Grid, log zerolog.Logger, out func(string) string) error {
	element, err := config.Element(cfg.Features.Element)
	if err != nil {
		return err
	}
	platform, err := config.Platform(cfg.Features.Platform)
	if err != nil {
		return err
	}

	switch cfg.Features.Centers {
	case "":
	case "geodesic":
		centers := features.GeodesicCenters(labels, element)
		if err := points.WriteCenters(out("centers.csv"), centers); err != nil {
			return err
		}
		log.Info().Int("labels", len(centers)).Msg("geodesic centers written")
	case "ultimate":
		centers, err := features.UltimateCenters(labels, element)
		if err != nil {
			return err
		}
		if err := points.WriteCenters(out("centers.csv"), centers); err != nil {
			return err
		}
		log.Info().Int("labels", len(centers)).Msg("ultimate centers written")
	default:
		return fmt.Errorf("unknown centers method %q", cfg.Features.Centers)
	}

	switch cfg.Features.Distance {
	case "":
	case "minimum", "maximum":
		transform := features.DistanceMinimum
		if cfg.Features.Distance == "maximum" {
			transform = features.DistanceMaximum
		}
		distances, err := transform(labels, nil, nil, 1, platform)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("distance_%s.png", cfg.Features.Distance)
		if err := visualization.SaveDensePNG(distances, out(name)); err != nil {
			return fmt.Errorf("writing distance image: %w", err)
		}
		log.Info().Str("variant", cfg.Features.Distance).Msg("distance transform written")
	default:
		return fmt.Errorf("unknown distance variant %q", cfg.Features.Distance)
	}

	switch cfg.Features.Layer {
	case "":
	case "minimum", "maximum":
		transform := features.LayerMinimum
		if cfg.Features.Layer == "maximum" {
			transform = features.LayerMaximum
		}
		layers, err := transform(labels, nil, nil, element)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("layer_%s.png", cfg.Features.Layer)
		if err := visualization.SaveGridPNG(layers, out(name)); err != nil {
			return fmt.Errorf("writing layer image: %w", err)
		}
		log.Info().Str("variant", cfg.Features.Layer).Msg("layer transform written")
	default:
		return fmt.Errorf("unknown layer variant %q", cfg.Features.Layer)
	}

	if cfg.Features.Roundness {
		if err := points.WriteFeature(out("roundness.csv"), features.Roundness(labels, element)); err != nil {
			return err
		}
		log.Info().Msg("roundness written")
	}
	if cfg.Features.Size {
		if err := points.WriteFeature(out("size.csv"), features.Count(labels)); err != nil {
			return err
		}
		log.Info().Msg("size written")
	}
	return nil
}
