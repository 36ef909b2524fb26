// Package config provides configuration management for apncat.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	apnerr "apncat/pkg/errors"
)

// Config represents the application configuration.
type Config struct {
	Version       int                 `yaml:"version"`
	Home          string              `yaml:"home"`
	Interpolation InterpolationConfig `yaml:"interpolation"`
	Output        OutputConfig        `yaml:"output"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// InterpolationConfig defines conversion-engine settings.
type InterpolationConfig struct {
	// Workers is the bulk-import worker pool size; 0 means one per CPU.
	Workers int `yaml:"workers"`

	// MaxDimension caps the field dimension accepted for interpolation.
	// The engine is O(2^(3n)); anything beyond ~12 is a mistake, not a job.
	MaxDimension int `yaml:"max_dimension"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from the specified file.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apnerr.WithDetails(apnerr.ErrConfigInvalid, map[string]string{
			"file":   path,
			"reason": err.Error(),
		})
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// DefaultHome returns the default apncat home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".apncat"
	}
	return filepath.Join(home, ".apncat")
}
