package types

import "context"

// FileAccessor is the capability the gateway and CLI consume. The local
// filesystem accessor and the gRPC client both implement it.
//
// A returned error is a hard failure (access denied, transport fault). A
// soft failure is a nil error with a SoftError result.
type FileAccessor interface {
	ListDirectory(ctx context.Context, path string) (Result[[]Entry], error)
	ReadFile(ctx context.Context, path string) (Result[FileContent], error)
	Walk(ctx context.Context, path string, maxDepth int) (Result[[]Entry], error)
	Glob(ctx context.Context, pattern string) (Result[[]Entry], error)
}
