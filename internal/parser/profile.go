package parser

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
)

// PlacesFile is the bookmark store inside a Firefox profile.
const PlacesFile = "places.sqlite"

var defaultReleaseProfile = glob.MustCompile("*default-release*")

// FindFirefoxStore locates places.sqlite inside the default-release profile
// under profilesRoot. When several profiles match, the first by name wins.
func FindFirefoxStore(profilesRoot string, opts ...Option) (string, error) {
	o := newOptions(opts)

	entries, err := os.ReadDir(profilesRoot)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProfileNotFound, err)
	}

	var matches []string
	for _, e := range entries {
		if e.IsDir() && defaultReleaseProfile.Match(e.Name()) {
			matches = append(matches, e.Name())
		}
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: no default-release profile in %s", ErrProfileNotFound, profilesRoot)
	}
	if len(matches) > 1 {
		o.logger.Info("several default-release profiles found, using the first",
			"root", profilesRoot, "profiles", matches)
	}
	return filepath.Join(profilesRoot, matches[0], PlacesFile), nil
}
