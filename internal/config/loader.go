// Package config loads the kernel's YAML configuration: defaults first,
// then a partial overlay from the config file, then validation.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values for Config.
const (
	DefaultLogLevel = "warn"
	DefaultEngine   = "starlark"

	// DefaultFileName is the config file looked up in the working
	// directory when no path is given.
	DefaultFileName = ".quern.yaml"
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		LogLevel:      DefaultLogLevel,
		DefaultEngine: DefaultEngine,
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// Load reads and parses the config file at path, applying defaults for any
// missing fields. An empty path means the default file in the working
// directory, which may be absent; a path given explicitly must exist. A
// file that exists but fails to parse or validate is an error either way.
func Load(path string) (*Config, error) {
	optional := false
	if path == "" {
		path = DefaultFileName
		optional = true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			cfg := DefaultConfig()
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that all config values are valid.
func Validate(cfg *Config) error {
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return ValidationError{Field: "log_level", Message: "must be one of debug, info, warn, error"}
	}
	if cfg.DefaultEngine == "" {
		return ValidationError{Field: "default_engine", Message: "required field is empty"}
	}
	return nil
}
