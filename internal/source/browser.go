package source

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/dastanaron/browser-bookmarks/internal/parser"
)

// Browser describes where a browser keeps its bookmarks and how to launch it
type Browser struct {
	Name         string
	Family       parser.Family
	Executable   string
	StorePath    string // bookmark file, Chromium and HTML families
	ProfilesRoot string // profile directory, Firefox family
	PrivateFlag  string
}

// OpenArgs returns the command line arguments that open url
func (b Browser) OpenArgs(url string, private bool) []string {
	if private && b.PrivateFlag != "" {
		return []string{b.PrivateFlag, url}
	}
	return []string{url}
}

// KnownBrowsers returns the browsers supported on the current platform
func KnownBrowsers() []Browser {
	home, _ := os.UserHomeDir()
	return knownBrowsers(runtime.GOOS, home, os.Getenv)
}

func knownBrowsers(goos, home string, getenv func(string) string) []Browser {
	switch goos {
	case "windows":
		local := getenv("LOCALAPPDATA")
		roaming := getenv("APPDATA")
		programFiles := getenv("ProgramFiles")
		programFilesX86 := getenv("ProgramFiles(x86)")
		return []Browser{
			chromium("Chrome",
				filepath.Join(local, "Google", "Chrome", "User Data", "Default", "Bookmarks"),
				filepath.Join(programFiles, "Google", "Chrome", "Application", "chrome.exe")),
			chromium("Chromium",
				filepath.Join(local, "Chromium", "User Data", "Default", "Bookmarks"),
				filepath.Join(local, "Chromium", "Application", "chrome.exe")),
			chromium("Brave",
				filepath.Join(local, "BraveSoftware", "Brave-Browser", "User Data", "Default", "Bookmarks"),
				filepath.Join(programFiles, "BraveSoftware", "Brave-Browser", "Application", "brave.exe")),
			edge(filepath.Join(local, "Microsoft", "Edge", "User Data", "Default", "Bookmarks"),
				filepath.Join(programFilesX86, "Microsoft", "Edge", "Application", "msedge.exe")),
			chromium("Vivaldi",
				filepath.Join(local, "Vivaldi", "User Data", "Default", "Bookmarks"),
				filepath.Join(local, "Vivaldi", "Application", "vivaldi.exe")),
			firefox("Firefox",
				filepath.Join(roaming, "Mozilla", "Firefox", "Profiles"),
				filepath.Join(programFiles, "Mozilla Firefox", "firefox.exe")),
			firefox("Waterfox",
				filepath.Join(roaming, "Waterfox", "Profiles"),
				filepath.Join(programFiles, "Waterfox", "waterfox.exe")),
		}
	case "darwin":
		support := filepath.Join(home, "Library", "Application Support")
		return []Browser{
			chromium("Chrome",
				filepath.Join(support, "Google", "Chrome", "Default", "Bookmarks"),
				"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome"),
			chromium("Chromium",
				filepath.Join(support, "Chromium", "Default", "Bookmarks"),
				"/Applications/Chromium.app/Contents/MacOS/Chromium"),
			chromium("Brave",
				filepath.Join(support, "BraveSoftware", "Brave-Browser", "Default", "Bookmarks"),
				"/Applications/Brave Browser.app/Contents/MacOS/Brave Browser"),
			edge(filepath.Join(support, "Microsoft Edge", "Default", "Bookmarks"),
				"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge"),
			chromium("Vivaldi",
				filepath.Join(support, "Vivaldi", "Default", "Bookmarks"),
				"/Applications/Vivaldi.app/Contents/MacOS/Vivaldi"),
			firefox("Firefox",
				filepath.Join(support, "Firefox", "Profiles"),
				"/Applications/Firefox.app/Contents/MacOS/firefox"),
			firefox("Waterfox",
				filepath.Join(support, "Waterfox", "Profiles"),
				"/Applications/Waterfox.app/Contents/MacOS/waterfox"),
		}
	default:
		config := filepath.Join(home, ".config")
		return []Browser{
			chromium("Chrome", filepath.Join(config, "google-chrome", "Default", "Bookmarks"), "google-chrome"),
			chromium("Chromium", filepath.Join(config, "chromium", "Default", "Bookmarks"), "chromium"),
			chromium("Brave", filepath.Join(config, "BraveSoftware", "Brave-Browser", "Default", "Bookmarks"), "brave-browser"),
			edge(filepath.Join(config, "microsoft-edge", "Default", "Bookmarks"), "microsoft-edge"),
			chromium("Vivaldi", filepath.Join(config, "vivaldi", "Default", "Bookmarks"), "vivaldi"),
			firefox("Firefox", filepath.Join(home, ".mozilla", "firefox"), "firefox"),
			firefox("Waterfox", filepath.Join(home, ".waterfox"), "waterfox"),
		}
	}
}

func chromium(name, store, executable string) Browser {
	return Browser{
		Name:        name,
		Family:      parser.FamilyChromium,
		Executable:  executable,
		StorePath:   store,
		PrivateFlag: "--incognito",
	}
}

func edge(store, executable string) Browser {
	b := chromium("Edge", store, executable)
	b.PrivateFlag = "--inprivate"
	return b
}

func firefox(name, profiles, executable string) Browser {
	return Browser{
		Name:         name,
		Family:       parser.FamilyFirefox,
		Executable:   executable,
		ProfilesRoot: profiles,
		PrivateFlag:  "-private-window",
	}
}

// HTMLExport describes a watched Netscape bookmark export file
func HTMLExport(path string) Browser {
	return Browser{
		Name:      "html:" + filepath.Base(path),
		Family:    parser.FamilyHTML,
		StorePath: path,
	}
}
