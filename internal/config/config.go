// Package config loads tagkit settings from defaults, a TOML file and
// TAGKIT_ environment variables.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/rcliao/tagkit/internal/errors"
	"github.com/rcliao/tagkit/internal/tagging"
)

// EnvPrefix prefixes every environment override, e.g. TAGKIT_CLOUD_STEPS.
const EnvPrefix = "TAGKIT"

// Config is the complete tagkit configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" toml:"database" json:"database" yaml:"database"`
	Tagging  TaggingConfig  `mapstructure:"tagging" toml:"tagging" json:"tagging" yaml:"tagging"`
	Cloud    CloudConfig    `mapstructure:"cloud" toml:"cloud" json:"cloud" yaml:"cloud"`
	Log      LogConfig      `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path" json:"path" yaml:"path"`
}

// TaggingConfig controls how tag input is parsed and validated.
type TaggingConfig struct {
	MaxTagLength       int    `mapstructure:"max_tag_length" toml:"max_tag_length" json:"max_tag_length" yaml:"max_tag_length"`
	MaxNamespaceLength int    `mapstructure:"max_namespace_length" toml:"max_namespace_length" json:"max_namespace_length" yaml:"max_namespace_length"`
	MaxNameLength      int    `mapstructure:"max_name_length" toml:"max_name_length" json:"max_name_length" yaml:"max_name_length"`
	MaxValueLength     int    `mapstructure:"max_value_length" toml:"max_value_length" json:"max_value_length" yaml:"max_value_length"`
	ForceLowercase     bool   `mapstructure:"force_lowercase" toml:"force_lowercase" json:"force_lowercase" yaml:"force_lowercase"`
	Wildcard           string `mapstructure:"wildcard" toml:"wildcard" json:"wildcard" yaml:"wildcard"`
	DefaultNamespace   string `mapstructure:"default_namespace" toml:"default_namespace" json:"default_namespace" yaml:"default_namespace"`
}

type CloudConfig struct {
	Steps        int    `mapstructure:"steps" toml:"steps" json:"steps" yaml:"steps"`
	Distribution string `mapstructure:"distribution" toml:"distribution" json:"distribution" yaml:"distribution"`
}

type LogConfig struct {
	JSON    bool `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
	Verbose bool `mapstructure:"verbose" toml:"verbose" json:"verbose" yaml:"verbose"`
}

// Dir returns ~/.tagkit.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".tagkit")
}

// DefaultPath returns the config file read when none is named.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", filepath.Join(Dir(), "tags.db"))

	v.SetDefault("tagging.max_tag_length", tagging.MaxLength)
	v.SetDefault("tagging.max_namespace_length", tagging.MaxLength)
	v.SetDefault("tagging.max_name_length", tagging.MaxLength)
	v.SetDefault("tagging.max_value_length", tagging.MaxLength)
	v.SetDefault("tagging.force_lowercase", false)
	v.SetDefault("tagging.wildcard", "")
	v.SetDefault("tagging.default_namespace", "")

	v.SetDefault("cloud.steps", tagging.DefaultSteps)
	v.SetDefault("cloud.distribution", "logarithmic")

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbose", false)
}

// NewViper returns a viper instance with defaults and environment
// overrides but no config file.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads the configuration. The file is path, else $TAGKIT_CONFIG,
// else DefaultPath. A missing default file is not an error; a missing
// named file is.
func Load(path string) (*Config, error) {
	v := NewViper()

	named := path != ""
	if !named {
		path = os.Getenv(EnvPrefix + "_CONFIG")
		named = path != ""
	}
	if !named {
		path = DefaultPath()
	}

	if _, err := os.Stat(path); err == nil || named {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WithHint(
				errors.Wrapf(err, "read config %s", path),
				"run `tagkit config init` to write a default config")
		}
	}
	return LoadWithViper(v)
}

// LoadWithViper unmarshals and validates the settings of v.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	cfg.Database.Path = expandHome(cfg.Database.Path)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects negative limits, fewer than one cloud step and unknown
// distributions. Limits above tagging.MaxLength are accepted and clamped
// by Limits.
func (c *Config) Validate() error {
	for _, l := range []struct {
		key string
		n   int
	}{
		{"tagging.max_tag_length", c.Tagging.MaxTagLength},
		{"tagging.max_namespace_length", c.Tagging.MaxNamespaceLength},
		{"tagging.max_name_length", c.Tagging.MaxNameLength},
		{"tagging.max_value_length", c.Tagging.MaxValueLength},
	} {
		if l.n < 0 {
			return errors.Newf("%s must be >= 0, got %d", l.key, l.n)
		}
	}
	if c.Cloud.Steps < 1 {
		return errors.Newf("cloud.steps must be >= 1, got %d", c.Cloud.Steps)
	}
	if _, err := c.Distribution(); err != nil {
		return errors.WithHint(errors.Wrap(err, "cloud.distribution"), `use "logarithmic" or "linear"`)
	}
	return nil
}

// Limits returns the configured length limits clamped to tagging.MaxLength.
func (c *Config) Limits() tagging.Limits {
	return tagging.Limits{
		Tag:       c.Tagging.MaxTagLength,
		Namespace: c.Tagging.MaxNamespaceLength,
		Name:      c.Tagging.MaxNameLength,
		Value:     c.Tagging.MaxValueLength,
	}.Clamp()
}

// Distribution parses cloud.distribution.
func (c *Config) Distribution() (tagging.Distribution, error) {
	return tagging.ParseDistribution(c.Cloud.Distribution)
}

// Default returns the configuration with every default applied.
func Default() *Config {
	cfg, err := LoadWithViper(func() *viper.Viper {
		v := viper.New()
		SetDefaults(v)
		return v
	}())
	if err != nil {
		// defaults always validate
		panic(err)
	}
	return cfg
}

// Encode renders c as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(err, "encode config")
	}
	return buf.Bytes(), nil
}

// WriteFile writes c as TOML to path, creating its directory.
func (c *Config) WriteFile(path string) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return errors.Wrap(err, "create config directory")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "write config %s", path)
	}
	return nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
