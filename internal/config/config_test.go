package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 15*time.Second, time.Duration(cfg.ReadTimeout))
	assert.Equal(t, HighlighterChroma, cfg.Highlighter)
}

func TestLoad_FileOverridesOnlyProvidedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"addr": ":9000",
		"read_timeout": "3s",
		"write_timeout": 20,
		"highlighter": "treesitter"
	}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 3*time.Second, time.Duration(cfg.ReadTimeout))
	assert.Equal(t, 20*time.Second, time.Duration(cfg.WriteTimeout))
	assert.Equal(t, HighlighterTreeSitter, cfg.Highlighter)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "vs-dark", cfg.Theme)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("VKRUN_SITE_ADDR", "127.0.0.1:7000")
	t.Setenv("VKRUN_SITE_LOG_FORMAT", "json")
	t.Setenv("VKRUN_SITE_IDLE_TIMEOUT", "2m")
	t.Setenv("VKRUN_SITE_READ_TIMEOUT", "not-a-duration")
	t.Setenv("VKRUN_SITE_DEBUG_PPROF", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7000", cfg.Addr)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 2*time.Minute, time.Duration(cfg.IdleTimeout))
	// Unparseable durations keep the previous value
	assert.Equal(t, 15*time.Second, time.Duration(cfg.ReadTimeout))
	assert.True(t, cfg.DebugPprof)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"addr": `), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty addr", func(c *Config) { c.Addr = " " }, true},
		{"unknown highlighter", func(c *Config) { c.Highlighter = "prism" }, true},
		{"zero timeout", func(c *Config) { c.WriteTimeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
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

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	cfg := DefaultConfig()
	cfg.Addr = ":1234"
	cfg.StylesDir = "web/styles"
	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"read_timeout": "15s"`)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestGetConfigPath_Env(t *testing.T) {
	t.Setenv("VKRUN_SITE_CONFIG", "/etc/vkrun-site.json")
	assert.Equal(t, "/etc/vkrun-site.json", GetConfigPath())
}
