// Package config loads the symgeo CLI configuration file.
package config

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Output formats understood by the CLI.
const (
	FormatText  = "text"
	FormatLaTeX = "latex"
	FormatJSON  = "json"
)

// ValidFormats lists the accepted output formats.
var ValidFormats = []string{FormatText, FormatLaTeX, FormatJSON}

// ValidLevels lists the accepted logging levels.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// Config holds all symgeo CLI configuration.
type Config struct {
	Session SessionConfig `yaml:"session"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// SessionConfig names the session every command builds its entities in.
type SessionConfig struct {
	Name string `yaml:"name"`
}

// OutputConfig selects how expressions are printed.
type OutputConfig struct {
	Format string `yaml:"format"` // text, latex, json
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Session: SessionConfig{Name: "cli"},
		Output:  OutputConfig{Format: FormatText},
		Logging: LoggingConfig{Level: "warn"},
	}
}

// Load reads a YAML file over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var err error
	if strings.TrimSpace(c.Session.Name) == "" {
		err = multierr.Append(err, fmt.Errorf("session.name must not be empty"))
	}
	if !contains(ValidFormats, c.Output.Format) {
		err = multierr.Append(err, fmt.Errorf("invalid output.format: %q (valid: %v)", c.Output.Format, ValidFormats))
	}
	if !contains(ValidLevels, c.Logging.Level) {
		err = multierr.Append(err, fmt.Errorf("invalid logging.level: %q (valid: %v)", c.Logging.Level, ValidLevels))
	}
	return err
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
