// Package config provides configuration file support for punch.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/jvs-project/punch/pkg/errclass"
	"github.com/jvs-project/punch/pkg/fsutil"
	"github.com/jvs-project/punch/pkg/logging"
)

// FileName is the config file's name inside the storage root.
const FileName = "config.yaml"

// Config represents the punch configuration.
type Config struct {
	OutputFormat string        `yaml:"output_format,omitempty"` // text, json
	Color        *bool         `yaml:"color,omitempty"`         // nil means auto-detect
	Logging      LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json, text
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		OutputFormat: "text",
		Logging: LoggingConfig{
			Level:  string(logging.LevelWarn),
			Format: string(logging.FormatText),
		},
	}
}

// Path returns the config file path for a storage root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// Load loads configuration from <root>/config.yaml.
// Returns default config if file doesn't exist.
func Load(root string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path(root))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errclass.ErrIO.Wrap(err, "read %s", Path(root))
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errclass.ErrConfigInvalid.Wrap(err, "parse %s", Path(root))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to <root>/config.yaml.
func Save(root string, cfg *Config) error {
	if err := os.MkdirAll(root, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := fsutil.AtomicWrite(Path(root), data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case "", "text", "json":
	default:
		return errclass.ErrConfigInvalid.WithMessagef("output_format must be text or json, got %q", c.OutputFormat)
	}
	if c.Logging.Level != "" {
		if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
			return errclass.ErrConfigInvalid.WithMessage(err.Error())
		}
	}
	if c.Logging.Format != "" {
		if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
			return errclass.ErrConfigInvalid.WithMessage(err.Error())
		}
	}
	return nil
}

// JSONOutput reports whether output_format selects JSON.
func (c *Config) JSONOutput() bool {
	return c.OutputFormat == "json"
}

var keys = map[string]struct {
	get func(*Config) string
	set func(*Config, string) error
}{
	"output_format": {
		get: func(c *Config) string { return c.OutputFormat },
		set: func(c *Config, v string) error { c.OutputFormat = v; return nil },
	},
	"color": {
		get: func(c *Config) string {
			if c.Color == nil {
				return ""
			}
			return strconv.FormatBool(*c.Color)
		},
		set: func(c *Config, v string) error {
			if v == "" || v == "auto" {
				c.Color = nil
				return nil
			}
			b, err := strconv.ParseBool(v)
			if err != nil {
				return errclass.ErrConfigInvalid.WithMessagef("color must be true, false or auto, got %q", v)
			}
			c.Color = &b
			return nil
		},
	},
	"logging.level": {
		get: func(c *Config) string { return c.Logging.Level },
		set: func(c *Config, v string) error { c.Logging.Level = v; return nil },
	},
	"logging.format": {
		get: func(c *Config) string { return c.Logging.Format },
		set: func(c *Config, v string) error { c.Logging.Format = v; return nil },
	},
}

// Keys lists the settable configuration keys in sorted order.
func Keys() []string {
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// lookup matches key case-insensitively, using Unicode case folding.
func lookup(key string) (string, bool) {
	folded := cases.Fold().String(strings.TrimSpace(key))
	_, ok := keys[folded]
	return folded, ok
}

// Get returns the string value of a key.
func (c *Config) Get(key string) (string, error) {
	name, ok := lookup(key)
	if !ok {
		return "", errclass.ErrConfigInvalid.WithMessagef("unknown key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	return keys[name].get(c), nil
}

// Set assigns a key from its string form and validates the result.
func (c *Config) Set(key, value string) error {
	name, ok := lookup(key)
	if !ok {
		return errclass.ErrConfigInvalid.WithMessagef("unknown key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	if err := keys[name].set(c, value); err != nil {
		return err
	}
	return c.Validate()
}
