package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/fsbrowser/internal/shared/paths"
	"github.com/GriffinCanCode/fsbrowser/internal/shared/types"
)

// Glob matches a doublestar pattern (e.g. "src/**/*.go") relative to the root.
//
// The static directory prefix of the pattern goes through the same
// containment check as every other path, so "../*" fails with ErrAccessDenied.
// Malformed patterns are soft results.
func (a *Accessor) Glob(ctx context.Context, pattern string) (types.Result[[]types.Entry], error) {
	if err := ctx.Err(); err != nil {
		return types.Result[[]types.Entry]{}, err
	}

	if pattern == "" {
		return types.SoftError[[]types.Entry]("glob: empty pattern"), nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return types.SoftError[[]types.Entry](fmt.Sprintf("glob: invalid pattern %q", pattern)), nil
	}

	base, rest := doublestar.SplitPattern(pattern)
	dir, err := a.resolve(base)
	if err != nil {
		return types.Result[[]types.Entry]{}, err
	}

	matches, err := doublestar.Glob(os.DirFS(dir), rest)
	if err != nil {
		a.logger.Debug("Glob failed", zap.String("pattern", pattern), zap.Error(err))
		return types.SoftError[[]types.Entry](fmt.Sprintf("glob %q: %v", pattern, err)), nil
	}

	entries := make([]types.Entry, 0, len(matches))
	for _, match := range matches {
		full := filepath.Join(dir, filepath.FromSlash(match))
		if !paths.Within(a.root, full) {
			continue
		}
		entry, err := a.entryFor(full, nil)
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	return types.Ok(entries), nil
}
