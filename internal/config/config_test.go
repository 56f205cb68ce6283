package config

import (
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig() does not validate: %v", err)
	}
}

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level 'info', got %s", cfg.LogLevel)
	}
	if cfg.Transform.Interp != "bilinear" {
		t.Errorf("Expected default interp 'bilinear', got %s", cfg.Transform.Interp)
	}
	if cfg.Filter.Pad != "zero" {
		t.Errorf("Expected default pad 'zero', got %s", cfg.Filter.Pad)
	}
	if cfg.Histogram.Bins != 256 {
		t.Errorf("Expected default bins 256, got %d", cfg.Histogram.Bins)
	}
	if cfg.Label.Connectivity != 4 {
		t.Errorf("Expected default connectivity 4, got %d", cfg.Label.Connectivity)
	}
	if cfg.Batch.Workers != 4 {
		t.Errorf("Expected default workers 4, got %d", cfg.Batch.Workers)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "loud" },
			wantErr: "invalid log level",
		},
		{
			name:    "bad interp",
			mutate:  func(c *Config) { c.Transform.Interp = "cubic-spline" },
			wantErr: "transform.interp",
		},
		{
			name:    "bad pad",
			mutate:  func(c *Config) { c.Filter.Pad = "mirror" },
			wantErr: "filter.pad",
		},
		{
			name:    "negative spatial sigma",
			mutate:  func(c *Config) { c.Filter.SpatialSigma = -1 },
			wantErr: "spatial_sigma",
		},
		{
			name:    "zero color sigma",
			mutate:  func(c *Config) { c.Filter.ColorSigma = 0 },
			wantErr: "color_sigma",
		},
		{
			name:    "zero iterations",
			mutate:  func(c *Config) { c.Filter.Iterations = 0 },
			wantErr: "iterations",
		},
		{
			name:    "even sobel window",
			mutate:  func(c *Config) { c.Filter.SobelWindow = 4 },
			wantErr: "sobel_window",
		},
		{
			name:    "zero bins",
			mutate:  func(c *Config) { c.Histogram.Bins = 0 },
			wantErr: "histogram.bins",
		},
		{
			name:    "bad connectivity",
			mutate:  func(c *Config) { c.Label.Connectivity = 6 },
			wantErr: "label.connectivity",
		},
		{
			name:    "bad out type",
			mutate:  func(c *Config) { c.Label.OutType = "u64" },
			wantErr: "label.out_type",
		},
		{
			name:    "bad output format",
			mutate:  func(c *Config) { c.Output.Format = "gif" },
			wantErr: "invalid output format",
		},
		{
			name:    "zero workers",
			mutate:  func(c *Config) { c.Batch.Workers = 0 },
			wantErr: "batch workers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAllowsEmptyOutputFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Format = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error for empty output format: %v", err)
	}
}
