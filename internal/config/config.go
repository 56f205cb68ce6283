// Package config loads and validates the CLI configuration from files,
// environment variables, and defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/MeKo-Tech/rasterkit/dense"
)

// Config represents the complete configuration for the rasterkit CLI.
// It carries the defaults every subcommand starts from and supports
// loading from configuration files, environment variables, and
// command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Geometric transform defaults
	Transform TransformConfig `mapstructure:"transform" yaml:"transform" json:"transform"`

	// Windowed filter defaults
	Filter FilterConfig `mapstructure:"filter" yaml:"filter" json:"filter"`

	// Histogram defaults
	Histogram HistogramConfig `mapstructure:"histogram" yaml:"histogram" json:"histogram"`

	// Connected-component defaults
	Label LabelConfig `mapstructure:"label" yaml:"label" json:"label"`

	// Output file handling
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Multi-file processing
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`
}

// TransformConfig contains geometric transform settings.
type TransformConfig struct {
	Interp string `mapstructure:"interp" yaml:"interp" json:"interp"`
}

// FilterConfig contains windowed filter settings.
type FilterConfig struct {
	Pad          string  `mapstructure:"pad" yaml:"pad" json:"pad"`
	SpatialSigma float64 `mapstructure:"spatial_sigma" yaml:"spatial_sigma" json:"spatial_sigma"`
	ColorSigma   float64 `mapstructure:"color_sigma" yaml:"color_sigma" json:"color_sigma"`
	Iterations   int     `mapstructure:"iterations" yaml:"iterations" json:"iterations"`
	SobelWindow  int     `mapstructure:"sobel_window" yaml:"sobel_window" json:"sobel_window"`
}

// HistogramConfig contains histogram settings.
type HistogramConfig struct {
	Bins int `mapstructure:"bins" yaml:"bins" json:"bins"`
}

// LabelConfig contains connected-component labeling settings.
type LabelConfig struct {
	Connectivity int    `mapstructure:"connectivity" yaml:"connectivity" json:"connectivity"`
	OutType      string `mapstructure:"out_type" yaml:"out_type" json:"out_type"`
}

// OutputConfig contains output file settings.
type OutputConfig struct {
	Dir    string `mapstructure:"dir" yaml:"dir" json:"dir"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	Suffix string `mapstructure:"suffix" yaml:"suffix" json:"suffix"`
}

// BatchConfig contains multi-file processing settings.
type BatchConfig struct {
	Workers         int  `mapstructure:"workers" yaml:"workers" json:"workers"`
	ContinueOnError bool `mapstructure:"continue_on_error" yaml:"continue_on_error" json:"continue_on_error"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Verbose:  false,
		Transform: TransformConfig{
			Interp: "bilinear",
		},
		Filter: FilterConfig{
			Pad:          "zero",
			SpatialSigma: 2.5,
			ColorSigma:   25.0,
			Iterations:   5,
			SobelWindow:  3,
		},
		Histogram: HistogramConfig{
			Bins: 256,
		},
		Label: LabelConfig{
			Connectivity: 4,
			OutType:      "f32",
		},
		Output: OutputConfig{
			Format: "png",
			Suffix: "_out",
		},
		Batch: BatchConfig{
			Workers:         4,
			ContinueOnError: false,
		},
	}
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if _, err := dense.ParseInterp(c.Transform.Interp); err != nil {
		return fmt.Errorf("invalid transform.interp: %w", err)
	}
	if _, err := dense.ParsePad(c.Filter.Pad); err != nil {
		return fmt.Errorf("invalid filter.pad: %w", err)
	}
	if c.Filter.SpatialSigma <= 0 {
		return fmt.Errorf("invalid filter.spatial_sigma: %.2f (must be positive)", c.Filter.SpatialSigma)
	}
	if c.Filter.ColorSigma <= 0 {
		return fmt.Errorf("invalid filter.color_sigma: %.2f (must be positive)", c.Filter.ColorSigma)
	}
	if c.Filter.Iterations <= 0 {
		return fmt.Errorf("invalid filter.iterations: %d (must be positive)", c.Filter.Iterations)
	}
	if c.Filter.SobelWindow < 3 || c.Filter.SobelWindow%2 == 0 {
		return fmt.Errorf("invalid filter.sobel_window: %d (must be odd and at least 3)", c.Filter.SobelWindow)
	}

	if c.Histogram.Bins <= 0 {
		return fmt.Errorf("invalid histogram.bins: %d (must be positive)", c.Histogram.Bins)
	}

	if _, err := dense.ParseConnectivity(c.Label.Connectivity); err != nil {
		return fmt.Errorf("invalid label.connectivity: %w", err)
	}
	if _, err := dense.ParseDtype(c.Label.OutType); err != nil {
		return fmt.Errorf("invalid label.out_type: %w", err)
	}

	validFormats := []string{"png", "jpg", "jpeg", "bmp", "tif", "tiff"}
	if c.Output.Format != "" && !contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)", c.Output.Format, strings.Join(validFormats, ", "))
	}

	if c.Batch.Workers <= 0 {
		return fmt.Errorf("invalid batch workers: %d (must be positive)", c.Batch.Workers)
	}

	return nil
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
