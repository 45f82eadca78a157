// Package config loads and validates engine configuration from YAML files.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for a simulation run.
type Config struct {
	// Engine configuration
	Engine EngineConfig `yaml:"engine" validate:"required"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging,omitempty" validate:"omitempty"`

	// Archive configuration
	Archive ArchiveConfig `yaml:"archive,omitempty" validate:"omitempty"`
}

// EngineConfig holds the generational engine parameters.
type EngineConfig struct {
	// Number of individuals in every generation's population
	PopulationSize int `yaml:"population_size" validate:"required,min=1"`

	// Size of the breeding pool retained per generation
	SuccessorSize int `yaml:"successor_size" validate:"required,min=1,ltefield=PopulationSize"`

	// Minimum individuals per evaluation worker
	MinWorkloadSize int `yaml:"min_workload_size" validate:"min=1"`

	// Cap on concurrent evaluation workers
	MaxWorkers int `yaml:"max_workers" validate:"min=1"`

	// Generation budget
	Cycles int `yaml:"cycles" validate:"required,min=1"`

	// Score ordering policy (minimize or maximize)
	Ordering string `yaml:"ordering" validate:"oneof=minimize maximize"`

	// Termination policy (greedy stops on first success, patient runs the
	// full budget)
	Termination string `yaml:"termination" validate:"oneof=greedy patient"`

	// Directory for per-generation report artifacts
	ReportDir string `yaml:"report_dir,omitempty"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Severity threshold (DEBUG, INFO, WARN, ERROR)
	Level string `yaml:"level" validate:"omitempty,oneof=DEBUG INFO WARN ERROR"`

	// ANSI colors on console output
	Color bool `yaml:"color"`

	// Optional JSON log file path
	File string `yaml:"file,omitempty"`
}

// ArchiveConfig holds generation-history persistence settings.
type ArchiveConfig struct {
	// SQLite database path; empty disables archiving
	Path string `yaml:"path,omitempty"`
}

// Default returns a configuration with sensible defaults for everything
// except the problem-dependent engine sizes.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			PopulationSize:  64,
			SuccessorSize:   8,
			MinWorkloadSize: 1,
			MaxWorkers:      runtime.GOMAXPROCS(0),
			Cycles:          100,
			Ordering:        "minimize",
			Termination:     "patient",
		},
		Logging: LoggingConfig{
			Level: "INFO",
			Color: true,
		},
	}
}

// Load reads a YAML configuration file over the defaults and validates the
// result.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
