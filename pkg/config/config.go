// Package config loads rallylog settings from YAML or TOML files.
package config

//go:generate sh -c "cd ../.. && go run ./tools/config-schema-generator/"

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ColorMode controls when rendered output is styled.
type ColorMode string

const (
	// ColorAuto styles output only when stdout is a terminal (default)
	ColorAuto ColorMode = "auto"
	// ColorAlways styles output unconditionally
	ColorAlways ColorMode = "always"
	// ColorNever renders plain text
	ColorNever ColorMode = "never"
)

// ParseColorMode validates a color mode name.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	}
	return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

// DefaultLogFile is the log path used when nothing else is configured.
const DefaultLogFile = "log.json"

// Config holds the settings a config file may provide.
type Config struct {
	LogFile        string    `yaml:"log_file,omitempty" toml:"log_file,omitempty" jsonschema:"description=Path of the JSON log to render. Relative paths resolve against the working directory."`
	Color          ColorMode `yaml:"color,omitempty" toml:"color,omitempty" jsonschema:"enum=auto,enum=always,enum=never,description=When to style rendered output."`
	SeparatorWidth int       `yaml:"separator_width,omitempty" toml:"separator_width,omitempty" jsonschema:"minimum=1,description=Number of dashes printed after each entry."`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogFile:        DefaultLogFile,
		Color:          ColorAuto,
		SeparatorWidth: 50,
	}
}

// FileNames lists the config file names looked up in each directory, in
// order of preference.
var FileNames = []string{"rallylog.yml", "rallylog.yaml", "rallylog.toml"}

// UserConfigDir returns the directory holding the user's config file.
func UserConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "rallylog")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "rallylog")
}

// Load layers the user config and then the project config found in
// projectDir over the defaults. It returns the files that were applied.
func Load(projectDir string) (*Config, []string, error) {
	cfg := Default()
	var sources []string

	for _, dir := range []string{UserConfigDir(), projectDir} {
		if dir == "" {
			continue
		}
		path := findFile(dir)
		if path == "" {
			continue
		}
		fileCfg, err := LoadFile(path)
		if err != nil {
			return nil, nil, err
		}
		cfg.merge(fileCfg)
		sources = append(sources, path)
	}

	return cfg, sources, nil
}

// LoadPath layers a single named config file over the defaults, skipping
// the user and project lookup.
func LoadPath(path string) (*Config, error) {
	fileCfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	cfg.merge(fileCfg)
	return cfg, nil
}

// LoadFile reads a single config file. The format follows the extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch filepath.Ext(path) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML file %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks the values that are set.
func (c *Config) Validate() error {
	if c.Color != "" {
		mode, err := ParseColorMode(string(c.Color))
		if err != nil {
			return err
		}
		c.Color = mode
	}
	if c.SeparatorWidth < 0 {
		return fmt.Errorf("separator_width must be positive, got %d", c.SeparatorWidth)
	}
	return nil
}

func (c *Config) merge(other *Config) {
	if other.LogFile != "" {
		c.LogFile = other.LogFile
	}
	if other.Color != "" {
		c.Color = other.Color
	}
	if other.SeparatorWidth > 0 {
		c.SeparatorWidth = other.SeparatorWidth
	}
}

func findFile(dir string) string {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
