package parser

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dastanaron/browser-bookmarks/internal/models"

	"github.com/tidwall/gjson"
)

// chromiumRoots are the sub-trees of "roots" that hold user bookmarks, in
// processing order.
var chromiumRoots = []string{"bookmark_bar", "other"}

// ChromiumParser reads the "Bookmarks" JSON file of Chromium-based browsers
type ChromiumParser struct {
	logger *slog.Logger
}

// NewChromiumParser creates a new Chromium parser
func NewChromiumParser(opts ...Option) *ChromiumParser {
	o := newOptions(opts)
	return &ChromiumParser{logger: o.logger}
}

// Parse reads and parses the bookmarks file at path
func (p *ChromiumParser) Parse(path string) (*models.Node, error) {
	data, err := readStore(path)
	if err != nil {
		return nil, err
	}
	return p.ParseBytes(data)
}

// ParseBytes parses a Chromium bookmarks document.
//
// The bookmark_bar wrapper is always elided. The "other" wrapper is elided
// only when bookmark_bar contributed nothing, otherwise it becomes a
// top-level folder.
func (p *ChromiumParser) ParseBytes(data []byte) (*models.Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: bookmarks file is not valid JSON, it might be written right now", ErrMalformedStore)
	}

	root := models.NewRoot()
	roots := gjson.GetBytes(data, "roots")
	if !roots.IsObject() {
		return root, nil
	}

	for _, key := range chromiumRoots {
		el := roots.Get(key)
		if !el.IsObject() {
			continue
		}
		if root.Len() == 0 {
			p.addChildren(el, root, "")
		} else {
			p.walk(el, root, "")
		}
	}
	return root, nil
}

func (p *ChromiumParser) addChildren(el gjson.Result, folder *models.Node, path string) {
	children := el.Get("children")
	if !children.IsArray() {
		return
	}
	children.ForEach(func(_, child gjson.Result) bool {
		p.walk(child, folder, path)
		return true
	})
}

func (p *ChromiumParser) walk(el gjson.Result, parent *models.Node, path string) {
	if !el.IsObject() {
		return
	}

	name := el.Get("name")
	if el.Get("children").Exists() {
		if name.Type != gjson.String || strings.TrimSpace(name.Str) == "" {
			p.logger.Warn("skipping unnamed folder",
				"path", path, "error", ErrInvalidEntry)
			return
		}
		folder := models.NewFolder(name.Str, path)
		parent.AddChild(folder)
		p.addChildren(el, folder, folder.ChildPath())
		return
	}

	raw := el.Get("url")
	if !raw.Exists() {
		return
	}
	if name.Type != gjson.String || strings.TrimSpace(name.Str) == "" {
		p.logger.Warn("skipping unnamed bookmark",
			"path", path, "url", raw.String(), "error", ErrInvalidEntry)
		return
	}
	target, err := parseTarget(raw.String())
	if err != nil {
		p.logger.Warn("skipping bookmark",
			"name", name.Str, "path", path, "error", err)
		return
	}
	parent.AddChild(models.NewBookmark(name.Str, target, path))
}
