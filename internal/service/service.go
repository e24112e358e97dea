package service

import (
	"net/url"
	"strings"

	"github.com/dastanaron/browser-bookmarks/internal/models"
)

// Tree is a named, live bookmark tree
type Tree interface {
	Name() string
	Root() *models.Node
}

// Match is a bookmark found in one of the trees
type Match struct {
	Source string
	Node   *models.Node
}

// FullPath returns the folder path and name of the bookmark
func (m Match) FullPath() string {
	return models.JoinPath(m.Node.Path(), m.Node.Name())
}

// BookmarkService provides lookups over the current bookmark trees
type BookmarkService struct {
	trees []Tree
}

// NewBookmarkService creates a new bookmark service
func NewBookmarkService(trees ...Tree) *BookmarkService {
	return &BookmarkService{trees: trees}
}

// Trees returns the trees the service searches
func (s *BookmarkService) Trees() []Tree {
	return s.trees
}

// ListAll returns every bookmark of every tree, in tree order
func (s *BookmarkService) ListAll() []Match {
	var all []Match
	for _, t := range s.trees {
		t.Root().Walk(func(n *models.Node) bool {
			if !n.IsFolder() {
				all = append(all, Match{Source: t.Name(), Node: n})
			}
			return true
		})
	}
	return all
}

// Search filters bookmarks by query string.
// The query matches case-insensitively against name, address and folder path.
func (s *BookmarkService) Search(query string) []Match {
	all := s.ListAll()
	if query == "" {
		return all
	}

	queryLower := strings.ToLower(query)
	var filtered []Match
	for _, m := range all {
		if strings.Contains(strings.ToLower(m.Node.Name()), queryLower) ||
			strings.Contains(strings.ToLower(m.Node.Target()), queryLower) ||
			strings.Contains(strings.ToLower(m.Node.Path()), queryLower) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// FindByURL returns the first bookmark pointing at rawURL in the named tree,
// or in any tree when source is empty.
//
// rawURL is compared in the same normalized form bookmarks carry, so equivalent
// spellings match.
func (s *BookmarkService) FindByURL(source, rawURL string) (Match, bool) {
	target := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		target = u.String()
	}
	for _, m := range s.ListAll() {
		if source != "" && !strings.EqualFold(m.Source, source) {
			continue
		}
		if m.Node.Target() == target {
			return m, true
		}
	}
	return Match{}, false
}
