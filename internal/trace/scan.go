package trace

import (
	"fmt"
	"path/filepath"
)

// ScanDir returns the trace files in the scratch directory, in
// directory-discovery order. Callers needing a deterministic cross-platform
// order must sort the result themselves.
func ScanDir(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, filePattern))
	if err != nil {
		return nil, fmt.Errorf("scanning trace directory %s: %w", dir, err)
	}
	return matches, nil
}
