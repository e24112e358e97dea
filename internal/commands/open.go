package commands

import (
	"fmt"

	"github.com/dastanaron/browser-bookmarks/internal/service"
	"github.com/dastanaron/browser-bookmarks/internal/source"
)

// OpenCommand opens a URL in one of the installed browsers
type OpenCommand struct {
	registry    *source.Registry
	bookmarkSvc *service.BookmarkService
}

// NewOpenCommand creates a new open command
func NewOpenCommand(registry *source.Registry, bookmarkSvc *service.BookmarkService) *OpenCommand {
	return &OpenCommand{registry: registry, bookmarkSvc: bookmarkSvc}
}

// Execute opens url in the named browser. Without a browser name the
// browser that holds a bookmark for url is used.
func (c *OpenCommand) Execute(browser, url string, private bool) error {
	if browser == "" {
		m, ok := c.bookmarkSvc.FindByURL("", url)
		if !ok {
			return fmt.Errorf("no browser has a bookmark for %s, use -browser", url)
		}
		browser = m.Source
	}

	src, ok := c.registry.Source(browser)
	if !ok {
		return fmt.Errorf("browser %q is not available", browser)
	}
	return src.Open(url, private)
}
