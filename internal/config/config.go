package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// nonIdentChars matches everything that cannot appear in a Go identifier.
var nonIdentChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// DefaultFileName is the config file looked up in the working directory
// when no explicit path is given.
const DefaultFileName = ".toon.yaml"

// Config represents the complete configuration for the toon tool.
type Config struct {
	// MaxDepth bounds nesting in both directions; exceeding it is a
	// resource error, not silent truncation.
	MaxDepth int `yaml:"max_depth"`
	// Strict makes the decoder reject ambiguous input instead of
	// applying the permissive fallbacks.
	Strict     bool             `yaml:"strict"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Export     ExportConfig     `yaml:"export"`
	Output     OutputConfig     `yaml:"output"`
}

// DictionaryConfig seeds the token dictionary. The counter resumes at
// max(seed token values)+1.
type DictionaryConfig struct {
	Seed map[string]string `yaml:"seed"`
}

// ExportConfig controls the generated Go token table.
type ExportConfig struct {
	Package     string `yaml:"package"`
	ConstPrefix string `yaml:"const_prefix"`
}

// OutputConfig controls decoded JSON rendering.
type OutputConfig struct {
	JSONIndent int `yaml:"json_indent"`
}

// NewConfig returns a Config with default values.
func NewConfig() *Config {
	return &Config{
		MaxDepth: 64,
		Strict:   false,
		Export: ExportConfig{
			Package:     "toontokens",
			ConstPrefix: "Token",
		},
		Output: OutputConfig{
			JSONIndent: 2,
		},
	}
}

// LoadConfig reads a YAML config file, applying defaults for anything the
// file leaves unset.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = NewConfig().MaxDepth
	}
	if cfg.Output.JSONIndent <= 0 {
		cfg.Output.JSONIndent = NewConfig().Output.JSONIndent
	}
	if cfg.Export.Package == "" {
		cfg.Export.Package = NewConfig().Export.Package
	}
	return cfg, nil
}

// Load resolves the config to use: the explicit path if given, otherwise
// DefaultFileName in the working directory if present, otherwise defaults.
func Load(explicitPath string) (*Config, error) {
	if explicitPath != "" {
		return LoadConfig(explicitPath)
	}
	if _, err := os.Stat(DefaultFileName); err == nil {
		return LoadConfig(DefaultFileName)
	}
	return NewConfig(), nil
}

// Save writes the config as YAML, creating parent directories as needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// GetConstName returns the exported Go constant name for a JSON key in the
// generated token table.
func (c *Config) GetConstName(jsonKey string) string {
	name := nonIdentChars.ReplaceAllString(strcase.ToCamel(jsonKey), "")
	if name == "" {
		name = "Key"
	}
	return c.Export.ConstPrefix + name
}
