package repository

import "github.com/dastanaron/browser-bookmarks/internal/models"

// PlacesRepository defines read-only access to a Firefox places store
type PlacesRepository interface {
	// Each streams bookmark rows, folders before bookmarks, to fn.
	// Iteration stops at the first error returned by fn.
	Each(fn func(models.PlaceEntry) error) error
	Close() error
}
