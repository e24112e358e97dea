package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	LogLevel    string                   `mapstructure:"log_level"`
	MetricsAddr string                   `mapstructure:"metrics_addr"`
	Browsers    map[string]BrowserConfig `mapstructure:"browsers"`
	HTMLFiles   []string                 `mapstructure:"html_files"`
}

// BrowserConfig overrides the defaults of one known browser
type BrowserConfig struct {
	Disabled     bool   `mapstructure:"disabled"`
	Executable   string `mapstructure:"executable"`
	StorePath    string `mapstructure:"store_path"`
	ProfilesRoot string `mapstructure:"profiles_root"`
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	return &Config{
		LogLevel: "warn",
		Browsers: map[string]BrowserConfig{},
	}
}

// WithLogLevel sets the log level (debug, info, warn, error)
func (c *Config) WithLogLevel(level string) *Config {
	c.LogLevel = level
	return c
}

// WithMetricsAddr sets the address metrics are served on
func (c *Config) WithMetricsAddr(addr string) *Config {
	c.MetricsAddr = addr
	return c
}

// WithHTMLFile adds a bookmark export file to watch
func (c *Config) WithHTMLFile(path string) *Config {
	c.HTMLFiles = append(c.HTMLFiles, path)
	return c
}

// Browser returns the overrides for a browser, zero when none are set
func (c *Config) Browser(name string) BrowserConfig {
	return c.Browsers[strings.ToLower(name)]
}

// SlogLevel converts LogLevel, falling back to warn
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}

// DefaultPath returns ~/.bookmarks/config.yml
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "config.yml"
	}
	return filepath.Join(homeDir, ".bookmarks", "config.yml")
}

// Load reads configuration from a YAML file and BOOKMARKS_* environment
// variables. An empty path looks for the default file, which may be absent.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	v.SetDefault("log_level", "warn")
	v.SetDefault("metrics_addr", "")
	v.SetDefault("html_files", []string{})
	v.SetEnvPrefix("bookmarks")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindBrowserEnv(v, os.Environ()); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := NewConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.Browsers == nil {
		cfg.Browsers = map[string]BrowserConfig{}
	}
	return cfg, nil
}

// browserFields are the BrowserConfig keys, as they appear in env names.
var browserFields = []string{"disabled", "executable", "store_path", "profiles_root"}

// bindBrowserEnv binds BOOKMARKS_BROWSERS_<NAME>_<FIELD> variables. viper only
// resolves env vars for keys it already knows, and browser names are open-ended.
func bindBrowserEnv(v *viper.Viper, environ []string) error {
	const prefix = "BOOKMARKS_BROWSERS_"
	for _, kv := range environ {
		key, _, _ := strings.Cut(kv, "=")
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := strings.ToLower(strings.TrimPrefix(key, prefix))
		for _, field := range browserFields {
			name, ok := strings.CutSuffix(rest, "_"+field)
			if !ok || name == "" {
				continue
			}
			if err := v.BindEnv("browsers."+name+"."+field, key); err != nil {
				return err
			}
			break
		}
	}
	return nil
}
