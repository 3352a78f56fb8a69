// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"waterblend/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Blending contains scoring weights and normalization limits
	Blending BlendingConfig `json:"blending"`

	// Limits contains regulatory compliance limits for the product water
	Limits LimitsConfig `json:"limits"`

	// Treatment contains treatment train configuration
	Treatment TreatmentConfig `json:"treatment"`

	// Sweep contains demand sweep defaults
	Sweep SweepConfig `json:"sweep"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// BlendingConfig contains the scoring parameters applied to every well.
// Weights need not sum to one; references are the normalization limits
// that make arsenic and chloride contributions commensurable.
type BlendingConfig struct {
	// WeightArsenic is the arsenic penalty weight
	WeightArsenic float64 `json:"weight_arsenic"`

	// WeightChloride is the chloride penalty weight
	WeightChloride float64 `json:"weight_chloride"`

	// RefArsenic is the arsenic normalization limit in mg/L
	RefArsenic float64 `json:"ref_arsenic"`

	// RefChloride is the chloride normalization limit in mg/L
	RefChloride float64 `json:"ref_chloride"`
}

// LimitsConfig contains regulatory limits used for pass/fail annotation
type LimitsConfig struct {
	// Arsenic is the maximum arsenic concentration in mg/L
	Arsenic float64 `json:"arsenic"`

	// Chloride is the maximum chloride concentration in mg/L
	Chloride float64 `json:"chloride"`
}

// TreatmentConfig contains treatment train settings
type TreatmentConfig struct {
	// CatalogPreset names the built-in efficiency catalog to use
	CatalogPreset string `json:"catalog_preset"`

	// CatalogFile optionally overrides the preset with a YAML catalog
	CatalogFile string `json:"catalog_file,omitempty"`

	// Pretreatment is the default pretreatment unit operation
	Pretreatment string `json:"pretreatment"`
}

// SweepConfig contains demand sweep defaults
type SweepConfig struct {
	// Start is the first demand value in L/s
	Start float64 `json:"start"`

	// Stop is the exclusive upper demand bound in L/s
	Stop float64 `json:"stop"`

	// Step is the demand increment in L/s
	Step float64 `json:"step"`

	// Parallelism is the number of concurrent solves (<=1 is sequential)
	Parallelism int `json:"parallelism"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`

	// DisplayThreshold hides allocations below this flow in L/s
	DisplayThreshold float64 `json:"display_threshold"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Blending: BlendingConfig{
			WeightArsenic:  0.2,
			WeightChloride: 0.8,
			RefArsenic:     0.025,
			RefChloride:    320,
		},
		Limits: LimitsConfig{
			Arsenic:  0.025,
			Chloride: 35,
		},
		Treatment: TreatmentConfig{
			CatalogPreset: "default",
			Pretreatment:  "none",
		},
		Sweep: SweepConfig{
			Start:       10,
			Stop:        60,
			Step:        2,
			Parallelism: 4,
		},
		Output: OutputConfig{
			DefaultFormat:    "cli",
			DisplayThreshold: 1e-3,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
