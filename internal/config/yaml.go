package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a config file from disk, applies Autofill, then Validate.
// Grounded on original_source/src/config/loader.py's load_yaml +
// ensure_defaults pipeline.
func Load(path string, screenWidth, screenHeight int) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	Autofill(&c, screenWidth, screenHeight)
	if err := Validate(&c, screenWidth, screenHeight); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save writes the config back out, preserving user-authored `kind:`
// strings verbatim (RawKind is the yaml-tagged field; the resolved Kind/
// Primitive/Axis/ButtonID fields carry no yaml tag and are never written).
func Save(path string, c *Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Minimal returns the smallest config loader.ensure_defaults would accept:
// no smoothing, no calibration, no outputs — every field gets filled by
// Autofill. Useful as a first-run starting point.
func Minimal() *Config {
	return &Config{Version: 1, Calibration: NewCalibration()}
}
