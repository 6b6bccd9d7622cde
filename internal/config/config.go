// Package config loads the optional YAML run configuration Rewrite
// accepts: default access level, indentation, and per-module Swift file
// name overrides. Nothing in the pipeline requires a config file — Load
// is only ever called by the CLI driver.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eaburns/objc2swift/internal/intent"
)

// Config is the objc2swift.yaml shape.
type Config struct {
	DefaultAccess string            `yaml:"default_access"`
	Indent        IndentConfig      `yaml:"indent"`
	FileOverrides map[string]string `yaml:"file_overrides"`
}

// IndentConfig controls the emitter's indentation discipline.
type IndentConfig struct {
	Width int    `yaml:"width"`
	Mode  string `yaml:"mode"` // "spaces" or "tabs"
}

// Default returns the documented defaults: internal access, four-space
// indentation, no file name overrides.
func Default() *Config {
	return &Config{
		DefaultAccess: "internal",
		Indent:        IndentConfig{Width: 4, Mode: "spaces"},
	}
}

// Load reads a configuration file from path. Missing fields fall back
// to Default's values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Indent.Width == 0 {
		cfg.Indent.Width = 4
	}
	if cfg.Indent.Mode == "" {
		cfg.Indent.Mode = "spaces"
	}
	if cfg.DefaultAccess == "" {
		cfg.DefaultAccess = "internal"
	}
	return cfg, nil
}

// IndentString renders the configured indentation as the literal string
// the emitter repeats per nesting level.
func (c *Config) IndentString() string {
	unit := " "
	if c.Indent.Mode == "tabs" {
		unit = "\t"
	}
	s := ""
	for i := 0; i < c.Indent.Width; i++ {
		s += unit
	}
	return s
}

// AccessLevel parses DefaultAccess into an intent.AccessLevel, falling
// back to internal for an unrecognised or empty value.
func (c *Config) AccessLevel() intent.AccessLevel {
	switch c.DefaultAccess {
	case "private":
		return intent.AccessPrivate
	case "fileprivate":
		return intent.AccessFilePrivate
	case "public":
		return intent.AccessPublic
	case "open":
		return intent.AccessOpen
	default:
		return intent.AccessInternal
	}
}

// OverridePath returns the configured Swift file name override for the
// given derived path, or path unchanged when none is configured.
func (c *Config) OverridePath(path string) string {
	if c == nil || c.FileOverrides == nil {
		return path
	}
	if override, ok := c.FileOverrides[path]; ok {
		return override
	}
	return path
}
