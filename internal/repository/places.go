package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dastanaron/browser-bookmarks/internal/models"

	"github.com/mattn/go-sqlite3"
)

// busyTimeout is how long a read waits on the browser's write lock before
// falling back to a private copy of the store. Firefox holds its lock for
// the whole session, so waiting longer rarely helps.
var busyTimeout = 100 * time.Millisecond

const selectPlaces = `
	SELECT b.id, b.parent, b.type, COALESCE(b.title, ''), COALESCE(b.guid, ''), p.url
	FROM moz_bookmarks AS b
	LEFT JOIN moz_places AS p ON p.id = b.fk
	ORDER BY CASE WHEN b.type = 2 THEN 0 ELSE 1 END, b.parent, b.position, b.id
`

// SQLiteRepository implements PlacesRepository on top of places.sqlite
type SQLiteRepository struct {
	db      *sql.DB
	copyDir string // set when reading a private copy of a locked store
}

// OpenPlaces opens a places.sqlite file read-only.
//
// Firefox may hold an exclusive lock on the store. In that case the store and
// its write-ahead log are copied to a temporary directory and the copy is read.
func OpenPlaces(path string) (*SQLiteRepository, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	db, err := openProbe(placesDSN(path, true))
	if err == nil {
		return &SQLiteRepository{db: db}, nil
	}
	if !IsLocked(err) {
		return nil, err
	}

	copyDir, err := os.MkdirTemp("", "places-*")
	if err != nil {
		return nil, err
	}
	copyPath := filepath.Join(copyDir, filepath.Base(path))
	if err := copyStore(path, copyPath); err != nil {
		os.RemoveAll(copyDir)
		return nil, fmt.Errorf("cannot copy locked store: %w", err)
	}

	db, err = openProbe(placesDSN(copyPath, false))
	if err != nil {
		os.RemoveAll(copyDir)
		return nil, err
	}
	return &SQLiteRepository{db: db, copyDir: copyDir}, nil
}

func openProbe(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	var id int64
	err = db.QueryRow(`SELECT id FROM moz_bookmarks LIMIT 1`).Scan(&id)
	if err != nil && err != sql.ErrNoRows {
		db.Close()
		return nil, err
	}
	return db, nil
}

// IsLocked reports whether err comes from another process holding the store lock
func IsLocked(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
}

// Each streams every bookmark row to fn
func (r *SQLiteRepository) Each(fn func(models.PlaceEntry) error) error {
	rows, err := r.db.Query(selectPlaces)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e models.PlaceEntry
		if err := rows.Scan(&e.ID, &e.ParentID, &e.Type, &e.Title, &e.GUID, &e.URL); err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Close closes the database connection and removes a private copy, if any
func (r *SQLiteRepository) Close() error {
	err := r.db.Close()
	if r.copyDir != "" {
		if rmErr := os.RemoveAll(r.copyDir); err == nil {
			err = rmErr
		}
	}
	return err
}

func placesDSN(path string, readOnly bool) string {
	params := url.Values{}
	params.Set("_busy_timeout", strconv.FormatInt(busyTimeout.Milliseconds(), 10))
	if readOnly {
		params.Set("mode", "ro")
	}
	escaped := strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23").Replace(filepath.ToSlash(path))
	return "file:" + escaped + "?" + params.Encode()
}

// copyStore copies the database file and its write-ahead log, when present.
func copyStore(src, dst string) error {
	if err := copyFile(src, dst); err != nil {
		return err
	}
	if err := copyFile(src+"-wal", dst+"-wal"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
