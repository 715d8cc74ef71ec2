package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Separator is the platform path separator as a string
const Separator = string(os.PathSeparator)

// Canonical returns the absolute, lexically cleaned form of path.
// Symlinks are not evaluated.
func Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to make %q absolute: %w", path, err)
	}
	return filepath.Clean(abs), nil
}

// Join combines root with a caller-supplied relative path. An empty path
// yields root; an absolute path replaces root entirely.
func Join(root, rel string) string {
	if rel == "" {
		return filepath.Clean(root)
	}
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(root, rel)
}

// Within reports whether target equals root or is nested under it.
//
// Both arguments must already be canonical. The check requires root plus a
// separator as a literal prefix, so a sibling such as /srv/data2 is never
// treated as being inside /srv/data.
func Within(root, target string) bool {
	if target == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, Separator) {
		prefix += Separator
	}
	return strings.HasPrefix(target, prefix)
}

// Rel returns target relative to root using forward slashes, the form
// handed back to callers. Root itself maps to ".".
func Rel(root, target string) (string, error) {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
