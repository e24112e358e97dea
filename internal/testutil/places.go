// Package testutil builds on-disk bookmark stores for tests.
package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

// Place is one moz_bookmarks row. An empty URL leaves fk NULL.
type Place struct {
	ID       int64
	Parent   int64
	Type     int
	Title    *string
	GUID     string
	URL      string
	Position int
}

// Title returns a pointer usable for Place.Title
func Title(s string) *string { return &s }

const placesSchema = `
	CREATE TABLE moz_places (
		id INTEGER PRIMARY KEY,
		url LONGVARCHAR
	);
	CREATE TABLE moz_bookmarks (
		id INTEGER PRIMARY KEY,
		type INTEGER,
		fk INTEGER DEFAULT NULL,
		parent INTEGER,
		position INTEGER,
		title LONGVARCHAR,
		guid TEXT
	);
`

// WritePlaces creates (or replaces) a places.sqlite file at path holding rows.
func WritePlaces(t *testing.T, path string, rows []Place) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	tmp := path + ".tmp"
	_ = os.Remove(tmp)

	db, err := sql.Open("sqlite3", tmp)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(placesSchema)
	require.NoError(t, err)

	for _, r := range rows {
		var fk *int64
		if r.URL != "" {
			res, err := db.Exec(`INSERT INTO moz_places(url) VALUES (?)`, r.URL)
			require.NoError(t, err)
			id, err := res.LastInsertId()
			require.NoError(t, err)
			fk = &id
		}
		_, err := db.Exec(
			`INSERT INTO moz_bookmarks(id, type, fk, parent, position, title, guid) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Type, fk, r.Parent, r.Position, r.Title, r.GUID,
		)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())
	require.NoError(t, os.Rename(tmp, path))
}

// StandardPlaces returns the rows of a fresh Firefox profile plus the given rows.
// Root is id 1, menu 2, toolbar 3, unfiled 4.
func StandardPlaces(extra ...Place) []Place {
	rows := []Place{
		{ID: 1, Parent: 0, Type: 2, Title: Title(""), GUID: "root________"},
		{ID: 2, Parent: 1, Type: 2, Title: Title("menu"), GUID: "menu________", Position: 0},
		{ID: 3, Parent: 1, Type: 2, Title: Title("toolbar"), GUID: "toolbar_____", Position: 1},
		{ID: 4, Parent: 1, Type: 2, Title: Title("unfiled"), GUID: "unfiled_____", Position: 3},
	}
	return append(rows, extra...)
}
