package source

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dastanaron/browser-bookmarks/internal/config"
	"github.com/dastanaron/browser-bookmarks/internal/models"
	"github.com/dastanaron/browser-bookmarks/internal/parser"
	"github.com/dastanaron/browser-bookmarks/internal/provider"
)

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the logger passed down to parsers and providers
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithBrowsers replaces the built-in browser list
func WithBrowsers(browsers []Browser) Option {
	return func(r *Registry) {
		r.browsers = browsers
	}
}

// WithOnReload is called with the source name whenever a source publishes a new tree
func WithOnReload(fn func(name string, root *models.Node)) Option {
	return func(r *Registry) {
		r.onReload = fn
	}
}

// Registry holds one Source per installed browser
type Registry struct {
	sources  []*Source
	browsers []Browser
	logger   *slog.Logger
	onReload func(string, *models.Node)
}

// NewRegistry creates a source for every configured browser whose bookmark
// store can be located. Browsers that are missing are logged and skipped.
func NewRegistry(cfg *config.Config, opts ...Option) *Registry {
	r := &Registry{
		browsers: KnownBrowsers(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}

	browsers := make([]Browser, 0, len(r.browsers)+len(cfg.HTMLFiles))
	for _, b := range r.browsers {
		override := cfg.Browser(b.Name)
		if override.Disabled {
			r.logger.Debug("browser disabled", "browser", b.Name)
			continue
		}
		if override.Executable != "" {
			b.Executable = override.Executable
		}
		if override.StorePath != "" {
			b.StorePath = override.StorePath
		}
		if override.ProfilesRoot != "" {
			b.ProfilesRoot = override.ProfilesRoot
		}
		browsers = append(browsers, b)
	}
	for _, f := range cfg.HTMLFiles {
		browsers = append(browsers, HTMLExport(f))
	}
	uniqueNames(browsers)

	for _, b := range browsers {
		src, err := r.open(b)
		if err != nil {
			if errors.Is(err, parser.ErrProfileNotFound) {
				r.logger.Info("browser profile not found, skipping", "browser", b.Name, "error", err)
			} else {
				r.logger.Info("browser not available, skipping", "browser", b.Name, "error", err)
			}
			continue
		}
		r.sources = append(r.sources, src)
	}
	return r
}

func (r *Registry) open(b Browser) (*Source, error) {
	storePath := b.StorePath
	if b.Family == parser.FamilyFirefox && storePath == "" {
		path, err := parser.FindFirefoxStore(b.ProfilesRoot, parser.WithLogger(r.logger))
		if err != nil {
			return nil, err
		}
		storePath = path
		b.StorePath = path
	}
	if storePath == "" {
		return nil, fmt.Errorf("no bookmark store configured")
	}

	p, err := parser.New(b.Family, parser.WithLogger(r.logger))
	if err != nil {
		return nil, err
	}

	opts := []provider.Option{provider.WithLogger(r.logger)}
	if r.onReload != nil {
		name := b.Name
		opts = append(opts, provider.WithOnReload(func(root *models.Node) {
			r.onReload(name, root)
		}))
	}
	prov, err := provider.New(b.Name, storePath, p, opts...)
	if err != nil {
		return nil, err
	}
	return &Source{Browser: b, provider: prov, start: startDetached}, nil
}

// Sources returns the available sources in catalogue order
func (r *Registry) Sources() []*Source {
	out := make([]*Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// Source finds a source by case-insensitive name
func (r *Registry) Source(name string) (*Source, bool) {
	for _, s := range r.sources {
		if strings.EqualFold(s.Name(), name) {
			return s, true
		}
	}
	return nil, false
}

// Reload re-parses every source and returns the joined failures
func (r *Registry) Reload() error {
	var errs []error
	for _, s := range r.sources {
		if err := s.Reload(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Close stops watching every source
func (r *Registry) Close() error {
	var errs []error
	for _, s := range r.sources {
		if err := s.close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// uniqueNames suffixes repeated names with #2, #3, ... so that every source
// can be found by name.
func uniqueNames(browsers []Browser) {
	seen := make(map[string]bool, len(browsers))
	for i := range browsers {
		name := browsers[i].Name
		for n := 2; seen[strings.ToLower(name)]; n++ {
			name = fmt.Sprintf("%s#%d", browsers[i].Name, n)
		}
		seen[strings.ToLower(name)] = true
		browsers[i].Name = name
	}
}
