// Package types provides shared data structures for the fsbrowser backend.
//
// Core Types:
//   - Entry: One child of a listed directory (name, root-relative path, type)
//   - FileContent: Decoded text of a file
//   - Result: Tagged union of a payload or a soft failure message
//
// Request Types:
//   - ListQuery, ReadQuery, WalkQuery, GlobQuery: Gateway query bindings
//
// Example Usage:
//
//	res := types.Ok([]types.Entry{{Name: "a.txt", Path: "a.txt", Type: types.EntryFile}})
//	if res.IsSoftError() {
//	    log.Println(res.Message())
//	}
package types
