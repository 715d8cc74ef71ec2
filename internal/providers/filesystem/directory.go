package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/fsbrowser/internal/shared/types"
)

// ListDirectory lists the immediate children of a directory under the root.
//
// Paths escaping the root fail with ErrAccessDenied. Enumeration failures
// (missing path, not a directory, permission denied) are soft results.
// Entry order is whatever the filesystem returns.
func (a *Accessor) ListDirectory(ctx context.Context, rel string) (types.Result[[]types.Entry], error) {
	if err := ctx.Err(); err != nil {
		return types.Result[[]types.Entry]{}, err
	}

	dir, err := a.resolve(rel)
	if err != nil {
		return types.Result[[]types.Entry]{}, err
	}

	children, err := os.ReadDir(dir)
	if err != nil {
		a.logger.Debug("List failed", zap.String("path", rel), zap.Error(err))
		return types.SoftError[[]types.Entry](describe(err, rel)), nil
	}

	entries := make([]types.Entry, 0, len(children))
	for _, child := range children {
		entry, err := a.entryFor(filepath.Join(dir, child.Name()), child)
		if err != nil {
			return types.SoftError[[]types.Entry](describe(err, rel)), nil
		}
		entries = append(entries, entry)
	}

	return types.Ok(entries), nil
}

// Walk lists every entry below a directory, sorted by path.
// maxDepth limits recursion (0 = unlimited, 1 = immediate children only).
func (a *Accessor) Walk(ctx context.Context, rel string, maxDepth int) (types.Result[[]types.Entry], error) {
	if maxDepth < 0 {
		return types.SoftError[[]types.Entry](fmt.Sprintf("invalid max depth %d", maxDepth)), nil
	}

	dir, err := a.resolve(rel)
	if err != nil {
		return types.Result[[]types.Entry]{}, err
	}

	info, err := os.Stat(dir)
	if err != nil {
		return types.SoftError[[]types.Entry](describe(err, rel)), nil
	}
	if !info.IsDir() {
		return types.SoftError[[]types.Entry](fmt.Sprintf("walk %s: not a directory", displayPath(rel))), nil
	}

	var (
		mu      sync.Mutex
		entries = []types.Entry{}
	)

	// fastwalk invokes the callback from several goroutines
	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, dir, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil || path == dir {
			return nil // Skip unreadable entries
		}

		relToDir, err := filepath.Rel(dir, path)
		if err != nil {
			return nil
		}
		depth := strings.Count(relToDir, string(os.PathSeparator)) + 1

		entry, err := a.entryFor(path, d)
		if err != nil {
			return nil
		}

		mu.Lock()
		entries = append(entries, entry)
		mu.Unlock()

		if d.IsDir() && maxDepth > 0 && depth >= maxDepth {
			return filepath.SkipDir
		}
		return nil
	})

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return types.Result[[]types.Entry]{}, ctxErr
		}
		a.logger.Debug("Walk failed", zap.String("path", rel), zap.Error(err))
		return types.SoftError[[]types.Entry](fmt.Sprintf("walk %s: %v", displayPath(rel), err)), nil
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	return types.Ok(entries), nil
}
