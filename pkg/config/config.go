// Package config loads the sdfwot CLI configuration from YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/urmzd/sdfwot/pkg/convert"
	"github.com/urmzd/sdfwot/pkg/document"
)

// Config represents the complete CLI configuration
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Convert ConvertConfig `yaml:"convert"`
	Watch   WatchConfig   `yaml:"watch"`
}

// OutputConfig controls how documents are written
type OutputConfig struct {
	// Indent is the indentation of written JSON (default: two spaces)
	Indent string `yaml:"indent"`
	// Dir receives converted files (empty = next to the input)
	Dir string `yaml:"dir"`
}

// ConvertConfig controls conversions
type ConvertConfig struct {
	// Target is what SDF converts to: tm or td (default: tm)
	Target string `yaml:"target"`
}

// WatchConfig controls watch mode
type WatchConfig struct {
	// Debounce is how long to wait for more changes before converting
	Debounce time.Duration `yaml:"debounce"`
	// Sources lists the kinds that trigger a conversion (default: sdf)
	Sources []string `yaml:"sources"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Indent: document.DefaultIndent,
		},
		Convert: ConvertConfig{
			Target: string(document.KindTM),
		},
		Watch: WatchConfig{
			Debounce: convert.DefaultDebounce,
			Sources:  []string{string(document.KindSDF)},
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if strings.Trim(c.Output.Indent, " \t") != "" {
		return fmt.Errorf("output.indent must contain only spaces and tabs")
	}
	if _, err := c.Target(); err != nil {
		return err
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	if _, err := c.WatchSources(); err != nil {
		return err
	}
	return nil
}

// Target returns the configured SDF target kind.
func (c *Config) Target() (document.Kind, error) {
	k, err := document.ParseKind(c.Convert.Target)
	if err != nil || (k != document.KindTM && k != document.KindTD) {
		return "", fmt.Errorf("convert.target must be tm or td, got %q", c.Convert.Target)
	}
	return k, nil
}

// WatchSources returns the kinds watch mode converts.
func (c *Config) WatchSources() ([]document.Kind, error) {
	kinds := make([]document.Kind, 0, len(c.Watch.Sources))
	for _, s := range c.Watch.Sources {
		k, err := document.ParseKind(s)
		if err != nil {
			return nil, fmt.Errorf("watch.sources: %w", err)
		}
		if k == document.KindTD {
			return nil, fmt.Errorf("watch.sources: td documents cannot be converted")
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Output.Indent != "" {
		c.Output.Indent = other.Output.Indent
	}
	if other.Output.Dir != "" {
		c.Output.Dir = other.Output.Dir
	}

	if other.Convert.Target != "" {
		c.Convert.Target = other.Convert.Target
	}

	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
	if len(other.Watch.Sources) > 0 {
		c.Watch.Sources = other.Watch.Sources
	}
}
