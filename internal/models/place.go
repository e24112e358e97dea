package models

// Bookmark type codes used by the Firefox places store
const (
	PlaceTypeBookmark  = 1
	PlaceTypeFolder    = 2
	PlaceTypeSeparator = 3
)

// PlaceRootGUID marks the top-level row of moz_bookmarks.
const PlaceRootGUID = "root________"

// PlaceEntry is one moz_bookmarks row joined with its moz_places URL.
type PlaceEntry struct {
	ID       int64
	ParentID int64
	Type     int
	Title    string
	GUID     string
	URL      *string // nil when the row has no moz_places entry
}

// IsFolder reports whether the row is a folder
func (e PlaceEntry) IsFolder() bool {
	return e.Type == PlaceTypeFolder
}

// IsRoot reports whether the row is the store's synthetic root
func (e PlaceEntry) IsRoot() bool {
	return e.GUID == PlaceRootGUID
}
