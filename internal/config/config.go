package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

const FileName = "config.yaml"

type Config struct {
	Editor    string `yaml:"editor,omitempty" json:"editor,omitempty"`
	NoColor   bool   `yaml:"no_color,omitempty" json:"no_color,omitempty"`
	LogLevel  string `yaml:"log_level,omitempty" json:"log_level,omitempty"`
	LogFormat string `yaml:"log_format,omitempty" json:"log_format,omitempty"`
	Listen    string `yaml:"listen,omitempty" json:"listen,omitempty"`
}

// Defaults applied to empty fields by Load.
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	DefaultListen    = "127.0.0.1:7878"
)

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.LogFormat, validation.In("text", "json")),
	)
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
}

// Load reads <dataDir>/config.yaml, expanding $VARS in its contents. A missing
// file yields the defaults.
func Load(dataDir string) (*Config, error) {
	path := filepath.Join(dataDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := &Config{}
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(dataDir string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path := filepath.Join(dataDir, FileName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Set assigns one key by its yaml name.
func (c *Config) Set(key, value string) error {
	switch key {
	case "editor":
		c.Editor = value
	case "no_color":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("no_color: %w", err)
		}
		c.NoColor = b
	case "log_level":
		c.LogLevel = value
	case "log_format":
		c.LogFormat = value
	case "listen":
		c.Listen = value
	default:
		return fmt.Errorf("unknown config key %q (known: %v)", key, Keys())
	}
	return c.Validate()
}

// Keys lists the settable keys.
func Keys() []string {
	keys := []string{"editor", "no_color", "log_level", "log_format", "listen"}
	sort.Strings(keys)
	return keys
}
