// Package config loads the run configuration: a YAML file declaring the
// input, the outputs and the pipeline specification, with environment
// overrides for the operational settings.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"tidycli/internal/pipeline"
)

// Config is the complete run configuration.
type Config struct {
	Input   string        `yaml:"input" envconfig:"INPUT"`
	Output  string        `yaml:"output" envconfig:"OUTPUT"`
	Report  string        `yaml:"report" envconfig:"REPORT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`

	Pipeline pipeline.Spec `yaml:"pipeline" ignored:"true" validate:"required"`
}

// LoggingConfig controls the structured logger. Defaults are filled by
// applyDefaults after the environment pass; envconfig default tags would
// clobber file values whenever the variable is unset.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"omitempty,oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"omitempty,oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// Load reads the YAML configuration at path, applies TIDY_* environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment variables win over the file for operational settings.
	if err := envconfig.Process("TIDY", &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/tidycli.log"
	}
}

// Validate checks the structural constraints the validator tags express.
// Pipeline-specific rules (strategies, parameters, type eligibility) are
// checked when the pipeline is built.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return fmt.Errorf("config validation failed: field %q fails rule %q", e.Namespace(), e.Tag())
		}
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
