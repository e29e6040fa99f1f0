package build

import (
	"fmt"
	"os"
	"path/filepath"
)

// libraryPatterns are the filenames the interception library ships under.
var libraryPatterns = []string{"libearshot*.so", "libearshot*.dylib"}

// LocateLibrary finds the interception shared library. An explicit path (from
// config or flag) wins and must exist; otherwise the directory containing the
// running executable is searched.
func LocateLibrary(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("interception library %s: %w", explicit, err)
		}
		return explicit, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	return findLibrary(filepath.Dir(exe))
}

func findLibrary(dir string) (string, error) {
	for _, pattern := range libraryPatterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err == nil && len(matches) > 0 {
			return matches[0], nil
		}
	}
	return "", fmt.Errorf("no interception library (%v) found in %s; "+
		"set library in ~/.earshot/config.yaml or EARSHOT_LIBRARY", libraryPatterns, dir)
}
