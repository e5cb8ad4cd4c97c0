// Package config holds the YAML-backed training configuration shared by the
// CLI commands.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/adalundhe/covec/core/cooccur"
	"github.com/adalundhe/covec/core/reduce"
)

// Config captures every tunable of a training run.
type Config struct {
	// WindowSize is the co-occurrence context radius.
	WindowSize int `yaml:"window_size"`

	// Dimensions is the embedding dimensionality.
	Dimensions int `yaml:"dimensions"`

	// Iterations bounds the SVD solver's refinement passes.
	Iterations int `yaml:"iterations"`

	// Seed controls the solver's randomized initialization.
	Seed int64 `yaml:"seed"`

	// Parallel enables multi-core co-occurrence accumulation.
	Parallel bool `yaml:"parallel"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		WindowSize: cooccur.DefaultWindowSize,
		Dimensions: 2,
		Iterations: reduce.DefaultIterations,
		Seed:       reduce.DefaultSeed,
		Parallel:   false,
	}
}

// Load reads a YAML config from path, layered over the defaults. Fields
// absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline would refuse anyway, with
// clearer messages.
func (c Config) Validate() error {
	if c.WindowSize <= 0 {
		return fmt.Errorf("config: window_size must be positive, got %d", c.WindowSize)
	}
	if c.Dimensions <= 0 {
		return fmt.Errorf("config: dimensions must be positive, got %d", c.Dimensions)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("config: iterations must be positive, got %d", c.Iterations)
	}
	return nil
}
