package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

// Config holds the decoder CLI settings. Command-line flags take precedence.
type Config struct {
	Key      string `yaml:"key"`
	LogLevel string `yaml:"log_level"`
	Format   string `yaml:"format"`
	Catalog  string `yaml:"catalog"`
}

// Default returns the settings used when no config file is given.
func Default() Config {
	return Config{LogLevel: "info", Format: FormatJSON}
}

// Load reads a YAML config file, fills defaults and validates the result.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate fills empty fields with defaults and rejects unknown values.
func (c *Config) Validate() error {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Format == "" {
		c.Format = FormatJSON
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	switch c.Format {
	case FormatJSON, FormatCBOR:
	default:
		return fmt.Errorf("format must be %q or %q, got %q", FormatJSON, FormatCBOR, c.Format)
	}
	return nil
}
