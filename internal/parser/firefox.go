package parser

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/dastanaron/browser-bookmarks/internal/models"
	"github.com/dastanaron/browser-bookmarks/internal/repository"
)

const (
	// toolbarFolder is flattened into its parent.
	toolbarFolder = "toolbar"

	// maxPlaceDepth bounds folder nesting when converting staged rows.
	maxPlaceDepth = 64
)

// stagedPlace is a store row waiting for its children to be attached
type stagedPlace struct {
	entry    models.PlaceEntry
	children []*stagedPlace
}

// FirefoxParser reads bookmarks from a Firefox places.sqlite store
type FirefoxParser struct {
	logger *slog.Logger
	open   func(path string) (repository.PlacesRepository, error)
}

// NewFirefoxParser creates a new Firefox parser
func NewFirefoxParser(opts ...Option) *FirefoxParser {
	o := newOptions(opts)
	return &FirefoxParser{
		logger: o.logger,
		open: func(path string) (repository.PlacesRepository, error) {
			return repository.OpenPlaces(path)
		},
	}
}

// Parse reads the places store at path
func (p *FirefoxParser) Parse(path string) (*models.Node, error) {
	repo, err := p.open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrStoreNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open %s: %v", ErrMalformedStore, path, err)
	}
	defer repo.Close()

	return p.build(repo)
}

func (p *FirefoxParser) build(repo repository.PlacesRepository) (*models.Node, error) {
	var root *stagedPlace
	staged := make(map[int64]*stagedPlace)
	var order []*stagedPlace

	err := repo.Each(func(e models.PlaceEntry) error {
		s := &stagedPlace{entry: e}
		if e.IsRoot() {
			root = s
		}
		if !e.IsFolder() && (e.URL == nil || *e.URL == "") {
			return nil
		}
		p.logger.Debug("staged bookmark row",
			"id", e.ID, "parent", e.ParentID, "type", e.Type, "title", e.Title)
		staged[e.ID] = s
		order = append(order, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStore, err)
	}
	if root == nil {
		return nil, fmt.Errorf("%w: no row with guid %s", ErrRootNotFound, models.PlaceRootGUID)
	}

	for _, s := range order {
		if s == root || s.entry.ParentID == 0 {
			continue
		}
		parent, ok := staged[s.entry.ParentID]
		if !ok {
			continue
		}
		parent.children = append(parent.children, s)
	}

	tree := models.NewRoot()
	visited := map[int64]bool{root.entry.ID: true}
	p.convert(root, tree, "", visited, 0)
	return tree, nil
}

// convert attaches the children of s to into. Children of a folder named
// "toolbar" are attached in its place.
func (p *FirefoxParser) convert(s *stagedPlace, into *models.Node, path string, visited map[int64]bool, depth int) {
	if depth >= maxPlaceDepth {
		p.logger.Warn("bookmark folders nested too deep, truncating", "id", s.entry.ID, "path", path)
		return
	}

	for _, c := range s.children {
		if visited[c.entry.ID] {
			p.logger.Warn("bookmark row visited twice, skipping", "id", c.entry.ID, "parent", c.entry.ParentID)
			continue
		}
		visited[c.entry.ID] = true

		if c.entry.IsFolder() {
			if c.entry.Title == toolbarFolder {
				p.convert(c, into, path, visited, depth+1)
				continue
			}
			name := c.entry.Title
			if strings.TrimSpace(name) == "" {
				name = " "
			}
			folder := models.NewFolder(name, path)
			into.AddChild(folder)
			p.convert(c, folder, folder.ChildPath(), visited, depth+1)
			continue
		}

		target, err := parseTarget(*c.entry.URL)
		if err != nil {
			p.logger.Warn("skipping bookmark",
				"id", c.entry.ID, "name", c.entry.Title, "path", path, "error", err)
			continue
		}
		into.AddChild(models.NewBookmark(c.entry.Title, target, path))
	}
}
