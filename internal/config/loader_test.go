package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestNewLoader tests loader creation.
func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader() returned nil")
	}
	if loader.v == nil {
		t.Error("Loader viper instance is nil")
	}
}

// TestLoadWithNoConfigFile tests loading with no config file present.
func TestLoadWithNoConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	originalWd, _ := os.Getwd()
	defer func() { _ = os.Chdir(originalWd) }()

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	loader := NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	// Should get default values
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level 'info', got %s", cfg.LogLevel)
	}
	if cfg.Histogram.Bins != 256 {
		t.Errorf("Expected default bins 256, got %d", cfg.Histogram.Bins)
	}
	if cfg.Transform.Interp != "bilinear" {
		t.Errorf("Expected default interp 'bilinear', got %s", cfg.Transform.Interp)
	}
}

// TestLoadWithValidYAMLFile tests loading from a valid YAML file.
func TestLoadWithValidYAMLFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "rasterkit.yaml")

	yamlContent := `
log_level: debug
verbose: true
transform:
  interp: bicubic
filter:
  spatial_sigma: 4.5
histogram:
  bins: 64
label:
  connectivity: 8
batch:
  workers: 2
`

	if err := os.WriteFile(configFile, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	loader := NewLoader()
	cfg, err := loader.LoadWithFile(configFile)
	if err != nil {
		t.Fatalf("LoadWithFile() unexpected error: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level 'debug', got %s", cfg.LogLevel)
	}
	if !cfg.Verbose {
		t.Error("Expected verbose to be true")
	}
	if cfg.Transform.Interp != "bicubic" {
		t.Errorf("Expected interp 'bicubic', got %s", cfg.Transform.Interp)
	}
	if cfg.Filter.SpatialSigma != 4.5 {
		t.Errorf("Expected spatial sigma 4.5, got %f", cfg.Filter.SpatialSigma)
	}
	if cfg.Histogram.Bins != 64 {
		t.Errorf("Expected bins 64, got %d", cfg.Histogram.Bins)
	}
	if cfg.Label.Connectivity != 8 {
		t.Errorf("Expected connectivity 8, got %d", cfg.Label.Connectivity)
	}
	if cfg.Batch.Workers != 2 {
		t.Errorf("Expected workers 2, got %d", cfg.Batch.Workers)
	}

	// Untouched keys keep their defaults.
	if cfg.Filter.SobelWindow != 3 {
		t.Errorf("Expected default sobel window 3, got %d", cfg.Filter.SobelWindow)
	}
	if cfg.Output.Format != "png" {
		t.Errorf("Expected default output format 'png', got %s", cfg.Output.Format)
	}
}

// TestLoadWithInvalidYAMLFile tests loading from an invalid YAML file.
func TestLoadWithInvalidYAMLFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "rasterkit.yaml")

	invalidYAML := `
log_level: debug
  invalid indentation
    more bad indentation
`

	if err := os.WriteFile(configFile, []byte(invalidYAML), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	loader := NewLoader()
	if _, err := loader.LoadWithFile(configFile); err == nil {
		t.Error("LoadWithFile() expected error for invalid YAML, got nil")
	}
}

// TestLoadWithNonExistentFile tests loading from a non-existent file.
func TestLoadWithNonExistentFile(t *testing.T) {
	loader := NewLoader()
	if _, err := loader.LoadWithFile("/nonexistent/path/to/config.yaml"); err == nil {
		t.Error("LoadWithFile() expected error for missing file, got nil")
	}
}

// TestLoadRejectsInvalidValues tests that validation runs after merge.
func TestLoadRejectsInvalidValues(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "rasterkit.yaml")

	yamlContent := `
histogram:
  bins: -3
`

	if err := os.WriteFile(configFile, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	loader := NewLoader()
	if _, err := loader.LoadWithFile(configFile); err == nil {
		t.Error("LoadWithFile() expected validation error for negative bins, got nil")
	}
}

// TestEnvironmentOverride tests environment variable precedence over defaults.
func TestEnvironmentOverride(t *testing.T) {
	tmpDir := t.TempDir()
	originalWd, _ := os.Getwd()
	defer func() { _ = os.Chdir(originalWd) }()

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	t.Setenv("RASTERKIT_LOG_LEVEL", "debug")
	t.Setenv("RASTERKIT_HISTOGRAM_BINS", "32")

	loader := NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected env-provided log level 'debug', got %s", cfg.LogLevel)
	}
	if cfg.Histogram.Bins != 32 {
		t.Errorf("Expected env-provided bins 32, got %d", cfg.Histogram.Bins)
	}
}

// TestGenerateDefaultConfigFile tests default config file generation.
func TestGenerateDefaultConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "rasterkit.yaml")

	if err := GenerateDefaultConfigFile(configFile); err != nil {
		t.Fatalf("GenerateDefaultConfigFile() unexpected error: %v", err)
	}
	if _, err := os.Stat(configFile); err != nil {
		t.Fatalf("Generated config file missing: %v", err)
	}

	loader := NewLoader()
	cfg, err := loader.LoadWithFile(configFile)
	if err != nil {
		t.Fatalf("LoadWithFile() on generated file: %v", err)
	}

	defaults := DefaultConfig()
	if cfg.LogLevel != defaults.LogLevel {
		t.Errorf("Generated file log level %s differs from default %s", cfg.LogLevel, defaults.LogLevel)
	}
	if cfg.Histogram.Bins != defaults.Histogram.Bins {
		t.Errorf("Generated file bins %d differ from default %d", cfg.Histogram.Bins, defaults.Histogram.Bins)
	}
}

// TestGetConfigSearchPaths tests the search path list.
func TestGetConfigSearchPaths(t *testing.T) {
	paths := GetConfigSearchPaths()

	if len(paths) == 0 {
		t.Fatal("GetConfigSearchPaths() returned no paths")
	}
	if paths[0] != "." {
		t.Errorf("Expected first search path '.', got %s", paths[0])
	}

	found := false
	for _, p := range paths {
		if p == "/etc/rasterkit" {
			found = true
		}
	}
	if !found {
		t.Error("Expected /etc/rasterkit in search paths")
	}
}
