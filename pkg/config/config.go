// Package config provides configuration loading and management for spatialmorph.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"spatialmorph/pkg/features"
	"spatialmorph/pkg/grid"
	"spatialmorph/pkg/pipeline"
)

// StageConfig selects one processing method per pipeline stage together with
// its parameters. Stages ignore the parameters their method does not use.
type StageConfig struct {
	// Method is the processing method name, e.g. "naive", "visium", "binary"
	Method string `yaml:"method"`

	// Spacing is the grid spacing for the xenium mapper
	Spacing float64 `yaml:"spacing,omitempty"`

	// Genes restricts the counter to the listed gene identifiers
	Genes []string `yaml:"genes,omitempty"`

	// Element names the structuring element: "cross" (4-connected) or "full" (8-connected)
	Element string `yaml:"element,omitempty"`

	// Tau is the thresholder cutoff
	Tau float64 `yaml:"tau,omitempty"`

	// Lambda is the area threshold for algebraic filters
	Lambda int `yaml:"lambda,omitempty"`
}

// Config represents the application configuration loaded from YAML
type Config struct {
	// Input parameters
	Input struct {
		// Transcripts is the path to the transcript CSV file (.gz supported)
		Transcripts string `yaml:"transcripts"`

		// Cells is an optional path to a cell centroid CSV file
		Cells string `yaml:"cells,omitempty"`
	} `yaml:"input"`

	// Pipeline stage selection, applied in this fixed order
	Pipeline struct {
		Mapper              StageConfig `yaml:"mapper"`
		Counter             StageConfig `yaml:"counter"`
		Muxer               StageConfig `yaml:"muxer"`
		MorphologicalFilter StageConfig `yaml:"morphologicalFilter"`
		Thresholder         StageConfig `yaml:"thresholder"`
		AlgebraicFilter     StageConfig `yaml:"algebraicFilter"`
		Labeler             StageConfig `yaml:"labeler"`
	} `yaml:"pipeline"`

	// Feature extraction parameters
	Features struct {
		// Centers selects center extraction: "", "geodesic" or "ultimate"
		Centers string `yaml:"centers,omitempty"`

		// Distance selects a signed distance transform: "", "minimum" or "maximum"
		Distance string `yaml:"distance,omitempty"`

		// Layer selects a signed layer transform: "", "minimum" or "maximum"
		Layer string `yaml:"layer,omitempty"`

		// Platform adjusts transforms for the acquisition platform ("" or "visium")
		Platform string `yaml:"platform,omitempty"`

		// Element names the structuring element used by feature extraction
		Element string `yaml:"element,omitempty"`

		// Roundness enables the per-label roundness measure
		Roundness bool `yaml:"roundness"`

		// Size enables per-label pixel counts
		Size bool `yaml:"size"`
	} `yaml:"features"`

	// Output parameters
	Output struct {
		// Dir is the directory results are written to
		Dir string `yaml:"dir"`

		// SaveIntermediaryResults writes a PNG snapshot after every pipeline stage
		SaveIntermediaryResults bool `yaml:"saveIntermediaryResults"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Pipeline.Mapper = StageConfig{Method: pipeline.MethodNaive}
	cfg.Pipeline.Counter = StageConfig{Method: pipeline.MethodTotal}
	cfg.Pipeline.Muxer = StageConfig{Method: pipeline.MethodMaximum}
	cfg.Pipeline.MorphologicalFilter = StageConfig{Method: pipeline.MethodNaive}
	cfg.Pipeline.Thresholder = StageConfig{Method: pipeline.MethodBinary, Tau: 1}
	cfg.Pipeline.AlgebraicFilter = StageConfig{Method: pipeline.MethodNaive}
	cfg.Pipeline.Labeler = StageConfig{Method: pipeline.MethodBlob}

	cfg.Features.Size = true

	cfg.Output.Dir = "results"
	cfg.Output.SaveIntermediaryResults = false
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}

// Element resolves a structuring element name. Empty selects the default
// 4-connected cross.
func Element(name string) (*grid.Element, error) {
	switch name {
	case "", "cross":
		return grid.Cross(), nil
	case "full":
		return grid.Full(), nil
	default:
		return nil, fmt.Errorf("unknown structuring element %q", name)
	}
}

// Platform resolves the acquisition platform used by the feature transforms.
func Platform(name string) (features.Platform, error) {
	switch name {
	case "":
		return features.PlatformNone, nil
	case "visium":
		return features.PlatformVisium, nil
	default:
		return "", fmt.Errorf("unknown platform %q", name)
	}
}

// Backbone translates the pipeline section into a runnable backbone.
func (c *Config) Backbone() (*pipeline.Backbone, error) {
	b := &pipeline.Backbone{}

	b.Mapper = pipeline.Mapper{
		Method:  c.Pipeline.Mapper.Method,
		Spacing: c.Pipeline.Mapper.Spacing,
	}
	b.Counter = pipeline.Counter{
		Method: c.Pipeline.Counter.Method,
		Genes:  c.Pipeline.Counter.Genes,
	}
	b.Muxer = pipeline.Muxer{Method: c.Pipeline.Muxer.Method}

	element, err := Element(c.Pipeline.MorphologicalFilter.Element)
	if err != nil {
		return nil, fmt.Errorf("morphological filter: %w", err)
	}
	b.MorphologicalFilter = pipeline.MorphologicalFilter{
		Method:  c.Pipeline.MorphologicalFilter.Method,
		Element: element,
	}

	b.Thresholder = pipeline.Thresholder{
		Method: c.Pipeline.Thresholder.Method,
		Tau:    c.Pipeline.Thresholder.Tau,
	}

	element, err = Element(c.Pipeline.AlgebraicFilter.Element)
	if err != nil {
		return nil, fmt.Errorf("algebraic filter: %w", err)
	}
	b.AlgebraicFilter = pipeline.AlgebraicFilter{
		Method:  c.Pipeline.AlgebraicFilter.Method,
		Lambda:  c.Pipeline.AlgebraicFilter.Lambda,
		Element: element,
	}

	element, err = Element(c.Pipeline.Labeler.Element)
	if err != nil {
		return nil, fmt.Errorf("labeler: %w", err)
	}
	b.Labeler = pipeline.Labeler{
		Method:  c.Pipeline.Labeler.Method,
		Element: element,
	}

	return b, nil
}
