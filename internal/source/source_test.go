package source

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dastanaron/browser-bookmarks/internal/config"
	"github.com/dastanaron/browser-bookmarks/internal/models"
	"github.com/dastanaron/browser-bookmarks/internal/parser"
	"github.com/dastanaron/browser-bookmarks/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chromeDoc = `{"roots": {"bookmark_bar": {"name": "", "children": [
	{"name": "Work", "children": [{"name": "Mail", "url": "https://mail.example.com"}]}
]}}}`

type fixture struct {
	chromeStore  string
	firefoxRoot  string
	waterfoxRoot string
	browsers     []Browser
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()

	f := fixture{
		chromeStore:  filepath.Join(dir, "chrome", "Default", "Bookmarks"),
		firefoxRoot:  filepath.Join(dir, "firefox"),
		waterfoxRoot: filepath.Join(dir, "waterfox"),
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(f.chromeStore), 0755))
	require.NoError(t, os.WriteFile(f.chromeStore, []byte(chromeDoc), 0644))

	testutil.WritePlaces(t, filepath.Join(f.firefoxRoot, "abc.default-release", "places.sqlite"),
		testutil.StandardPlaces(testutil.Place{
			ID: 10, Parent: 3, Type: 1, Title: testutil.Title("News"), URL: "https://news.example.com",
		}))
	require.NoError(t, os.MkdirAll(filepath.Join(f.waterfoxRoot, "abc.default"), 0755))

	f.browsers = []Browser{
		chromium("Chrome", f.chromeStore, "chrome"),
		edge(filepath.Join(dir, "edge", "Default", "Bookmarks"), "msedge"),
		firefox("Firefox", f.firefoxRoot, "firefox"),
		firefox("Waterfox", f.waterfoxRoot, "waterfox"),
	}
	return f
}

func TestNewRegistry_SkipsMissingBrowsers(t *testing.T) {
	f := newFixture(t)

	var mu sync.Mutex
	reloaded := map[string]int{}
	reg := NewRegistry(config.NewConfig(),
		WithBrowsers(f.browsers),
		WithOnReload(func(name string, root *models.Node) {
			mu.Lock()
			reloaded[name]++
			mu.Unlock()
		}))
	defer reg.Close()

	sources := reg.Sources()
	require.Len(t, sources, 2)
	assert.Equal(t, "Chrome", sources[0].Name())
	assert.Equal(t, "Firefox", sources[1].Name())

	ff, ok := reg.Source("firefox")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(f.firefoxRoot, "abc.default-release", parser.PlacesFile), ff.Browser.StorePath)
	assert.Equal(t, "News", ff.Root().Children()[1].Name())

	chrome, ok := reg.Source("CHROME")
	require.True(t, ok)
	assert.Equal(t, "Work", chrome.Root().Children()[0].Name())

	_, ok = reg.Source("edge")
	assert.False(t, ok)

	mu.Lock()
	assert.Equal(t, 1, reloaded["Chrome"])
	assert.Equal(t, 1, reloaded["Firefox"])
	mu.Unlock()

	require.NoError(t, reg.Reload())
}

func TestNewRegistry_ConfigOverrides(t *testing.T) {
	f := newFixture(t)
	exportPath := filepath.Join(t.TempDir(), "export.html")
	require.NoError(t, os.WriteFile(exportPath,
		[]byte(`<DL><p><DT><A HREF="https://x.example.com">X</A></DL><p>`), 0644))

	cfg := config.NewConfig().WithHTMLFile(exportPath)
	cfg.Browsers["chrome"] = config.BrowserConfig{Disabled: true}
	cfg.Browsers["waterfox"] = config.BrowserConfig{
		StorePath:  filepath.Join(f.firefoxRoot, "abc.default-release", "places.sqlite"),
		Executable: "/opt/waterfox/waterfox",
	}

	reg := NewRegistry(cfg, WithBrowsers(f.browsers))
	defer reg.Close()

	var names []string
	for _, s := range reg.Sources() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"Firefox", "Waterfox", "html:export.html"}, names)

	wf, _ := reg.Source("waterfox")
	assert.Equal(t, "/opt/waterfox/waterfox", wf.Browser.Executable)

	html, _ := reg.Source("html:export.html")
	require.Equal(t, 1, html.Root().Len())
	assert.Equal(t, "X", html.Root().Children()[0].Name())
}

func TestSource_Open(t *testing.T) {
	f := newFixture(t)
	reg := NewRegistry(config.NewConfig(), WithBrowsers(f.browsers))
	defer reg.Close()

	var gotName string
	var gotArgs []string
	stub := func(name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}

	ff, _ := reg.Source("firefox")
	ff.start = stub
	require.NoError(t, ff.Open("https://news.example.com", true))
	assert.Equal(t, "firefox", gotName)
	assert.Equal(t, []string{"-private-window", "https://news.example.com"}, gotArgs)

	chrome, _ := reg.Source("chrome")
	chrome.start = stub
	require.NoError(t, chrome.Open("https://mail.example.com", false))
	assert.Equal(t, "chrome", gotName)
	assert.Equal(t, []string{"https://mail.example.com"}, gotArgs)

	chrome.Browser.Executable = ""
	require.NoError(t, chrome.Open("https://mail.example.com", true))
	assert.Equal(t, "https://mail.example.com", gotArgs[len(gotArgs)-1])
	assert.NotEqual(t, "chrome", gotName)
}

func TestBrowser_OpenArgs(t *testing.T) {
	assert.Equal(t, []string{"--inprivate", "u"}, edge("", "").OpenArgs("u", true))
	assert.Equal(t, []string{"--incognito", "u"}, chromium("Brave", "", "").OpenArgs("u", true))
	assert.Equal(t, []string{"u"}, HTMLExport("/x/a.html").OpenArgs("u", true))
}

func TestKnownBrowsers(t *testing.T) {
	env := map[string]string{`LOCALAPPDATA`: `C:\Users\me\AppData\Local`, `APPDATA`: `C:\Users\me\AppData\Roaming`}
	getenv := func(k string) string { return env[k] }

	for _, goos := range []string{"linux", "darwin", "windows"} {
		browsers := knownBrowsers(goos, "/home/me", getenv)
		require.Len(t, browsers, 7, goos)
		for _, b := range browsers {
			assert.NotEmpty(t, b.Executable, "%s %s", goos, b.Name)
			assert.NotEmpty(t, b.PrivateFlag, "%s %s", goos, b.Name)
			if b.Family == parser.FamilyFirefox {
				assert.NotEmpty(t, b.ProfilesRoot)
			} else {
				assert.Equal(t, "Bookmarks", filepath.Base(b.StorePath))
			}
		}
	}

	linux := knownBrowsers("linux", "/home/me", getenv)
	assert.Equal(t, "/home/me/.config/google-chrome/Default/Bookmarks", linux[0].StorePath)
	assert.Equal(t, "/home/me/.mozilla/firefox", linux[5].ProfilesRoot)
}

func TestNewRegistry_SameExportNameTwice(t *testing.T) {
	dir := t.TempDir()
	cfg := config.NewConfig()
	for _, sub := range []string{"home", "work"} {
		path := filepath.Join(dir, sub, "export.html")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path,
			[]byte(`<DL><p><DT><A HREF="https://`+sub+`.example.com">`+sub+`</A></DL><p>`), 0644))
		cfg.WithHTMLFile(path)
	}

	reg := NewRegistry(cfg, WithBrowsers(nil))
	defer reg.Close()

	first, ok := reg.Source("html:export.html")
	require.True(t, ok)
	assert.Equal(t, "home", first.Root().Children()[0].Name())

	second, ok := reg.Source("html:export.html#2")
	require.True(t, ok)
	assert.Equal(t, "work", second.Root().Children()[0].Name())
}

func TestUniqueNames(t *testing.T) {
	browsers := []Browser{{Name: "a"}, {Name: "A"}, {Name: "a#2"}, {Name: "b"}, {Name: "a"}}
	uniqueNames(browsers)

	var names []string
	for _, b := range browsers {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"a", "A#2", "a#2#2", "b", "a#3"}, names)
}
