package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFirefoxStore(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "abcd.default"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "x1y2z3.default-release"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "zz.default-release-file"), nil, 0644))

	path, err := FindFirefoxStore(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "x1y2z3.default-release", PlacesFile), path)
}

func TestFindFirefoxStore_FirstByName(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bbbb.default-release"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "aaaa.default-release-1"), 0755))

	path, err := FindFirefoxStore(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "aaaa.default-release-1", PlacesFile), path)
}

func TestFindFirefoxStore_NotFound(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "abcd.default"), 0755))

	_, err := FindFirefoxStore(root)
	require.ErrorIs(t, err, ErrProfileNotFound)

	_, err = FindFirefoxStore(filepath.Join(root, "missing"))
	require.ErrorIs(t, err, ErrProfileNotFound)
}
