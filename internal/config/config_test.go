package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/tagkit/internal/tagging"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, tagging.DefaultLimits(), cfg.Limits())
	assert.Equal(t, tagging.DefaultSteps, cfg.Cloud.Steps)
	assert.False(t, cfg.Tagging.ForceLowercase)
	assert.Empty(t, cfg.Tagging.Wildcard)
	assert.Equal(t, "tags.db", filepath.Base(cfg.Database.Path))

	d, err := cfg.Distribution()
	require.NoError(t, err)
	assert.Equal(t, tagging.Logarithmic, d)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[database]
path = "/tmp/other.db"

[tagging]
max_name_length = 20
max_value_length = 80
default_namespace = "food"
wildcard = "*"

[cloud]
distribution = "linear"
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, "food", cfg.Tagging.DefaultNamespace)
	assert.Equal(t, "*", cfg.Tagging.Wildcard)
	assert.Equal(t, tagging.Limits{Tag: 50, Namespace: 50, Name: 20, Value: 50}, cfg.Limits())
	assert.Equal(t, tagging.DefaultSteps, cfg.Cloud.Steps, "unset keys keep their default")

	d, err := cfg.Distribution()
	require.NoError(t, err)
	assert.Equal(t, tagging.Linear, d)
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[cloud]\nsteps = 6\n"), 0644))
	t.Setenv("TAGKIT_CONFIG", path)
	t.Setenv("TAGKIT_TAGGING_FORCE_LOWERCASE", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Cloud.Steps)
	assert.True(t, cfg.Tagging.ForceLowercase)

	t.Setenv("TAGKIT_CLOUD_STEPS", "9")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Cloud.Steps, "environment wins over the file")
}

func TestLoadMissingNamedFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero limit means maximum", func(c *Config) { c.Tagging.MaxTagLength = 0 }, false},
		{"negative limit", func(c *Config) { c.Tagging.MaxNameLength = -1 }, true},
		{"zero steps", func(c *Config) { c.Cloud.Steps = 0 }, true},
		{"short distribution", func(c *Config) { c.Cloud.Distribution = "log" }, false},
		{"unknown distribution", func(c *Config) { c.Cloud.Distribution = "cubic" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Tagging.DefaultNamespace = "你好"
	cfg.Cloud.Steps = 10
	require.NoError(t, cfg.WriteFile(path))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	require.NoError(t, v.ReadInConfig())
	loaded, err := LoadWithViper(v)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
