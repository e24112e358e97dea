package source

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/dastanaron/browser-bookmarks/internal/models"
	"github.com/dastanaron/browser-bookmarks/internal/provider"
)

// Source pairs a browser with the provider that watches its bookmarks
type Source struct {
	Browser  Browser
	provider *provider.Provider
	start    func(name string, args ...string) error
}

// Name returns the browser name
func (s *Source) Name() string { return s.Browser.Name }

// Root returns the current bookmark tree of the browser
func (s *Source) Root() *models.Node { return s.provider.Root() }

// Reload re-parses the bookmark store
func (s *Source) Reload() error { return s.provider.Reload() }

// Open launches the browser on url, in a private window when private is set.
// Sources without an executable use the system URL handler.
func (s *Source) Open(url string, private bool) error {
	if s.Browser.Executable == "" {
		name, args := systemOpener(url)
		return s.start(name, args...)
	}
	if err := s.start(s.Browser.Executable, s.Browser.OpenArgs(url, private)...); err != nil {
		return fmt.Errorf("cannot start %s: %w", s.Browser.Name, err)
	}
	return nil
}

func (s *Source) close() error {
	return s.provider.Close()
}

func systemOpener(url string) (string, []string) {
	var cmd string
	var args []string
	switch runtime.GOOS {
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", ""}
	case "darwin":
		cmd = "open"
	default:
		cmd = "xdg-open"
	}
	return cmd, append(args, url)
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
