package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/dastanaron/browser-bookmarks/internal/models"
	"github.com/dastanaron/browser-bookmarks/internal/service"
)

// ListCommand prints the bookmark trees
type ListCommand struct {
	bookmarkSvc *service.BookmarkService
}

// NewListCommand creates a new list command
func NewListCommand(bookmarkSvc *service.BookmarkService) *ListCommand {
	return &ListCommand{bookmarkSvc: bookmarkSvc}
}

// Execute writes every tree to w, one indented line per node
func (c *ListCommand) Execute(w io.Writer) error {
	for _, t := range c.bookmarkSvc.Trees() {
		folders, bookmarks := t.Root().Count()
		if _, err := fmt.Fprintf(w, "%s (%d folders, %d bookmarks)\n", t.Name(), folders, bookmarks); err != nil {
			return err
		}
		if err := printNodes(w, t.Root(), 1); err != nil {
			return err
		}
	}
	return nil
}

func printNodes(w io.Writer, folder *models.Node, depth int) error {
	indent := strings.Repeat("  ", depth)
	for _, n := range folder.Children() {
		var err error
		if n.IsFolder() {
			_, err = fmt.Fprintf(w, "%s📁 %s\n", indent, n.Name())
			if err == nil {
				err = printNodes(w, n, depth+1)
			}
		} else {
			_, err = fmt.Fprintf(w, "%s%s  %s\n", indent, n.Name(), n.Target())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// SearchCommand prints bookmarks matching a query
type SearchCommand struct {
	bookmarkSvc *service.BookmarkService
}

// NewSearchCommand creates a new search command
func NewSearchCommand(bookmarkSvc *service.BookmarkService) *SearchCommand {
	return &SearchCommand{bookmarkSvc: bookmarkSvc}
}

// Execute writes one tab-separated line per match: source, path, address
func (c *SearchCommand) Execute(w io.Writer, query string) error {
	matches := c.bookmarkSvc.Search(query)
	for _, m := range matches {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", m.Source, m.FullPath(), m.Node.Target()); err != nil {
			return err
		}
	}
	if len(matches) == 0 {
		_, err := fmt.Fprintln(w, "No bookmarks found.")
		return err
	}
	return nil
}
