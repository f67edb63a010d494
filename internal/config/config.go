package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/vkrunjs/website/internal/consts"
)

// Highlighter backends
const (
	HighlighterChroma     = "chroma"
	HighlighterTreeSitter = "treesitter"
)

// Duration is a time.Duration that reads and writes Go duration strings ("15s")
type Duration time.Duration

// MarshalJSON encodes the duration as a string
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON accepts "15s" style strings or integer seconds
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var seconds int64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return fmt.Errorf("duration must be a string or seconds: %s", string(data))
	}
	*d = Duration(time.Duration(seconds) * time.Second)
	return nil
}

// Config represents the site server configuration
type Config struct {
	Addr         string   `json:"addr"`
	ReadTimeout  Duration `json:"read_timeout"`
	WriteTimeout Duration `json:"write_timeout"`
	IdleTimeout  Duration `json:"idle_timeout"`
	InstanceName string   `json:"instance_name"`
	LogLevel     string   `json:"log_level"`  // debug, info, warn, error, none
	LogPath      string   `json:"log_path"`   // empty logs to stderr
	LogFormat    string   `json:"log_format"` // text or json
	Highlighter  string   `json:"highlighter"`
	Theme        string   `json:"theme"`
	// StylesDir enables the stylesheet watcher (development only)
	StylesDir string `json:"styles_dir,omitempty"`
	// DebugPprof mounts the runtime profiling endpoints under /debug/pprof/
	DebugPprof bool `json:"debug_pprof,omitempty"`
}

func defaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appData := strings.TrimSpace(os.Getenv("APPDATA")); appData != "" {
			return filepath.Join(appData, "vkrun-site")
		}
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, "AppData", "Roaming", "vkrun-site")
	default:
		if configHome := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); configHome != "" {
			return filepath.Join(configHome, "vkrun-site")
		}
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, ".config", "vkrun-site")
	}
}

// GetConfigPath returns the default config file location
func GetConfigPath() string {
	if path := strings.TrimSpace(os.Getenv("VKRUN_SITE_CONFIG")); path != "" {
		return path
	}
	return filepath.Join(defaultConfigDir(), "config.json")
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Addr:         consts.DefaultAddr,
		ReadTimeout:  Duration(consts.DefaultReadTimeout),
		WriteTimeout: Duration(consts.DefaultWriteTimeout),
		IdleTimeout:  Duration(consts.DefaultIdleTimeout),
		InstanceName: "vkrun-site-1",
		LogLevel:     "info",
		LogFormat:    "text",
		Highlighter:  HighlighterChroma,
		Theme:        "vs-dark",
	}
}

// Load loads configuration from file, then applies environment overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			// Unmarshal into default config (overrides only provided fields)
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	config.ApplyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides fields from VKRUN_SITE_* environment variables
func (c *Config) ApplyEnv() {
	c.Addr = getEnv("VKRUN_SITE_ADDR", c.Addr)
	c.InstanceName = getEnv("VKRUN_SITE_INSTANCE", c.InstanceName)
	c.LogLevel = getEnv("VKRUN_SITE_LOG_LEVEL", c.LogLevel)
	c.LogPath = getEnv("VKRUN_SITE_LOG_PATH", c.LogPath)
	c.LogFormat = getEnv("VKRUN_SITE_LOG_FORMAT", c.LogFormat)
	c.Highlighter = getEnv("VKRUN_SITE_HIGHLIGHTER", c.Highlighter)
	c.Theme = getEnv("VKRUN_SITE_THEME", c.Theme)
	c.StylesDir = getEnv("VKRUN_SITE_STYLES_DIR", c.StylesDir)
	c.DebugPprof = getEnvAsBool("VKRUN_SITE_DEBUG_PPROF", c.DebugPprof)
	c.ReadTimeout = Duration(getEnvAsDuration("VKRUN_SITE_READ_TIMEOUT", time.Duration(c.ReadTimeout)))
	c.WriteTimeout = Duration(getEnvAsDuration("VKRUN_SITE_WRITE_TIMEOUT", time.Duration(c.WriteTimeout)))
	c.IdleTimeout = Duration(getEnvAsDuration("VKRUN_SITE_IDLE_TIMEOUT", time.Duration(c.IdleTimeout)))
}

// Validate checks values that would otherwise fail late at startup
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("addr must not be empty")
	}
	switch c.Highlighter {
	case HighlighterChroma, HighlighterTreeSitter:
	default:
		return fmt.Errorf("unknown highlighter %q (want %s or %s)", c.Highlighter, HighlighterChroma, HighlighterTreeSitter)
	}
	for name, d := range map[string]Duration{
		"read_timeout":  c.ReadTimeout,
		"write_timeout": c.WriteTimeout,
		"idle_timeout":  c.IdleTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, time.Duration(d))
		}
	}
	return nil
}

// Save writes the configuration as indented JSON
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if dur, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return dur
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return defaultValue
}
