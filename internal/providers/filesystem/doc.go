// Package filesystem implements the directory store accessor: read-only
// access to a directory tree confined to a fixed root.
//
// Operations:
//   - ListDirectory: Immediate children of a directory
//   - ReadFile: Whole-file read decoded as UTF-8 text
//   - Walk: Recursive listing with an optional depth limit (fastwalk)
//   - Glob: Doublestar pattern matching relative to the root
//
// Failure channels:
//   - Hard: ErrAccessDenied when a path resolves outside the root, and
//     context cancellation. Returned as Go errors.
//   - Soft: Filesystem and decode failures. Returned as types.SoftError
//     results with a message naming the caller's path.
//
// Example Usage:
//
//	accessor, err := filesystem.New("/srv/data")
//	res, err := accessor.ListDirectory(ctx, "")
//	if errors.Is(err, filesystem.ErrAccessDenied) {
//	    // reject
//	}
package filesystem
