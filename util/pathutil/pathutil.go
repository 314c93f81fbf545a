// Package pathutil expands and compares user supplied paths.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Expand expands a leading ~ and environment variables in path. Relative
// paths stay relative.
func Expand(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	return filepath.Clean(os.ExpandEnv(path)), nil
}

// NormalizeForLookup returns a canonical path for comparisons: absolute,
// with symlinks resolved, and lowercased on case-insensitive systems.
func NormalizeForLookup(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	canonicalPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		// the path may not exist yet
		canonicalPath = absPath
	}

	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		return strings.ToLower(canonicalPath), nil
	}
	return canonicalPath, nil
}

// Same reports whether a and b refer to the same location. Paths that
// cannot be resolved are compared as given.
func Same(a, b string) bool {
	normA, errA := NormalizeForLookup(a)
	normB, errB := NormalizeForLookup(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return normA == normB
}
