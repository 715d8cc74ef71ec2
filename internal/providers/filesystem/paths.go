package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/fsbrowser/internal/shared/paths"
	"github.com/GriffinCanCode/fsbrowser/internal/shared/types"
)

// resolve maps a caller-supplied path to an absolute path inside the root
func (a *Accessor) resolve(rel string) (string, error) {
	target := paths.Join(a.root, rel)
	if !paths.Within(a.root, target) {
		a.logger.Warn("Rejected path outside root",
			zap.String("path", rel),
			zap.String("resolved", target),
		)
		return "", fmt.Errorf("%w: %s", ErrAccessDenied, rel)
	}
	return target, nil
}

// entryFor builds the listing entry for an absolute path under the root.
// d may be nil when no directory entry is at hand.
func (a *Accessor) entryFor(full string, d fs.DirEntry) (types.Entry, error) {
	rel, err := paths.Rel(a.root, full)
	if err != nil {
		return types.Entry{}, err
	}
	return types.Entry{
		Name: filepath.Base(full),
		Path: rel,
		Type: types.TypeOf(isDir(full, d)),
	}, nil
}

// isDir follows symlinks the way a stat would; a dangling link is a file
func isDir(full string, d fs.DirEntry) bool {
	if d != nil && d.Type()&fs.ModeSymlink == 0 {
		return d.IsDir()
	}
	info, err := os.Stat(full)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// describe renders a filesystem error against the caller's path so the
// absolute root never leaks into responses
func describe(err error, rel string) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return fmt.Sprintf("%s %s: %v", pathErr.Op, displayPath(rel), pathErr.Err)
	}
	return err.Error()
}

func displayPath(rel string) string {
	if rel == "" {
		return "."
	}
	return rel
}
