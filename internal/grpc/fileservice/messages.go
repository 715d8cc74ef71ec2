package fileservice

import "github.com/GriffinCanCode/fsbrowser/internal/shared/types"

// PathRequest addresses a path relative to the accessor root
type PathRequest struct {
	Path string `json:"path"`
}

// WalkRequest asks for a recursive listing
type WalkRequest struct {
	Path     string `json:"path"`
	MaxDepth int32  `json:"max_depth"`
}

// GlobRequest asks for entries matching a pattern
type GlobRequest struct {
	Pattern string `json:"pattern"`
}

// EntriesReply carries a listing or, when Error is set, a soft failure
type EntriesReply struct {
	Entries []types.Entry `json:"entries"`
	Error   *string       `json:"error,omitempty"`
}

// ContentReply carries file content or, when Error is set, a soft failure
type ContentReply struct {
	Content string  `json:"content"`
	Error   *string `json:"error,omitempty"`
}

// NewEntriesReply encodes a listing result
func NewEntriesReply(res types.Result[[]types.Entry]) *EntriesReply {
	if res.IsSoftError() {
		msg := res.Message()
		return &EntriesReply{Error: &msg}
	}
	entries := res.Value()
	if entries == nil {
		entries = []types.Entry{}
	}
	return &EntriesReply{Entries: entries}
}

// Result decodes the reply back into a listing result
func (r *EntriesReply) Result() types.Result[[]types.Entry] {
	if r.Error != nil {
		return types.SoftError[[]types.Entry](*r.Error)
	}
	if r.Entries == nil {
		return types.Ok([]types.Entry{})
	}
	return types.Ok(r.Entries)
}

// NewContentReply encodes a read result
func NewContentReply(res types.Result[types.FileContent]) *ContentReply {
	if res.IsSoftError() {
		msg := res.Message()
		return &ContentReply{Error: &msg}
	}
	return &ContentReply{Content: res.Value().Content}
}

// Result decodes the reply back into a read result
func (r *ContentReply) Result() types.Result[types.FileContent] {
	if r.Error != nil {
		return types.SoftError[types.FileContent](*r.Error)
	}
	return types.Ok(types.FileContent{Content: r.Content})
}
