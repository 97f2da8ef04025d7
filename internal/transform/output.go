package transform

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputPathFunc derives the output file path from an input file path.
type OutputPathFunc func(path string) (string, error)

// InPlace writes every file back over its input.
func InPlace(path string) (string, error) {
	return path, nil
}

// OutputUnder mirrors each input file, relative to root, under outDir.
// Inputs outside root are rejected.
func OutputUnder(root, outDir string) OutputPathFunc {
	return func(path string) (string, error) {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return "", fmt.Errorf("failed to relativize %s: %w", path, err)
		}
		if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", fmt.Errorf("%s is outside %s", path, root)
		}
		return filepath.Join(outDir, rel), nil
	}
}
