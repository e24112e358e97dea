package parser

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"

	"github.com/dastanaron/browser-bookmarks/internal/models"
)

// Family identifies a bookmark store format
type Family string

const (
	FamilyChromium Family = "chromium"
	FamilyFirefox  Family = "firefox"
	FamilyHTML     Family = "html"
)

// FormatParser turns the store at path into a fresh bookmark tree.
type FormatParser interface {
	Parse(path string) (*models.Node, error)
}

// Option configures a parser
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger parsers report skipped entries to.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New returns the parser for a store family.
func New(family Family, opts ...Option) (FormatParser, error) {
	switch family {
	case FamilyChromium:
		return NewChromiumParser(opts...), nil
	case FamilyFirefox:
		return NewFirefoxParser(opts...), nil
	case FamilyHTML:
		return NewHTMLParser(opts...), nil
	default:
		return nil, fmt.Errorf("unknown store family %q", family)
	}
}

// parseTarget validates a bookmark address. Only absolute URLs are accepted.
func parseTarget(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("%w: address %q is not absolute", ErrInvalidEntry, raw)
	}
	return u, nil
}

// readStore reads a whole store file. Missing files map to ErrStoreNotFound.
func readStore(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrStoreNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return data, nil
}
