package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig().WithLogLevel("debug").WithMetricsAddr(":9100").WithHTMLFile("a.html")
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, ":9100", cfg.MetricsAddr)
	assert.Equal(t, []string{"a.html"}, cfg.HTMLFiles)
	assert.Equal(t, BrowserConfig{}, cfg.Browser("chrome"))
}

func TestSlogLevelFallback(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, NewConfig().WithLogLevel("loud").SlogLevel())
	assert.Equal(t, slog.LevelError, NewConfig().WithLogLevel("ERROR").SlogLevel())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
log_level: info
browsers:
  firefox:
    profiles_root: /tmp/ff
    executable: /opt/firefox/firefox
  edge:
    disabled: true
html_files:
  - /tmp/export.html
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.Equal(t, "/tmp/ff", cfg.Browser("Firefox").ProfilesRoot)
	assert.Equal(t, "/opt/firefox/firefox", cfg.Browser("firefox").Executable)
	assert.True(t, cfg.Browser("edge").Disabled)
	assert.Equal(t, []string{"/tmp/export.html"}, cfg.HTMLFiles)
}

func TestLoad_Env(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: info\n"), 0644))
	t.Setenv("BOOKMARKS_LOG_LEVEL", "debug")
	t.Setenv("BOOKMARKS_METRICS_ADDR", "127.0.0.1:9100")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:9100", cfg.MetricsAddr)
}

func TestLoad_DefaultMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.NotNil(t, cfg.Browsers)
}

func TestLoad_ExplicitMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestLoad_EnvListsAndBrowsers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
browsers:
  firefox:
    executable: /opt/firefox/firefox
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("BOOKMARKS_HTML_FILES", "/tmp/a.html,/tmp/b.html")
	t.Setenv("BOOKMARKS_BROWSERS_FIREFOX_DISABLED", "true")
	t.Setenv("BOOKMARKS_BROWSERS_CHROME_STORE_PATH", "/tmp/chrome/Bookmarks")
	t.Setenv("BOOKMARKS_BROWSERS_WATERFOX_PROFILES_ROOT", "/tmp/waterfox")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/tmp/a.html", "/tmp/b.html"}, cfg.HTMLFiles)
	assert.True(t, cfg.Browser("firefox").Disabled)
	assert.Equal(t, "/opt/firefox/firefox", cfg.Browser("firefox").Executable)
	assert.Equal(t, "/tmp/chrome/Bookmarks", cfg.Browser("chrome").StorePath)
	assert.Equal(t, "/tmp/waterfox", cfg.Browser("waterfox").ProfilesRoot)
}

func TestBindBrowserEnv_IgnoresUnknownFields(t *testing.T) {
	v := viper.New()
	require.NoError(t, bindBrowserEnv(v, []string{
		"BOOKMARKS_BROWSERS_EDGE_COLOR=red",
		"BOOKMARKS_BROWSERS__DISABLED=true",
		"BOOKMARKS_BROWSERS_EDGE_DISABLED=true",
		"HOME=/home/me",
	}))
	assert.Equal(t, []string{"browsers.edge.disabled"}, v.AllKeys())
}
