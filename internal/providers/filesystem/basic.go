package filesystem

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/fsbrowser/internal/shared/types"
)

// ReadFile reads a whole file under the root and decodes it as text.
//
// Paths escaping the root fail with ErrAccessDenied. Open, read and decode
// failures are soft results. The entire file is loaded into memory.
func (a *Accessor) ReadFile(ctx context.Context, rel string) (types.Result[types.FileContent], error) {
	if err := ctx.Err(); err != nil {
		return types.Result[types.FileContent]{}, err
	}

	target, err := a.resolve(rel)
	if err != nil {
		return types.Result[types.FileContent]{}, err
	}

	data, err := readAll(target)
	if err != nil {
		a.logger.Debug("Read failed", zap.String("path", rel), zap.Error(err))
		return types.SoftError[types.FileContent](describe(err, rel)), nil
	}

	text, err := decodeText(data)
	if err != nil {
		a.logger.Debug("Decode failed", zap.String("path", rel), zap.Error(err))
		return types.SoftError[types.FileContent](fmt.Sprintf("decode %s: %v", displayPath(rel), err)), nil
	}

	return types.Ok(types.FileContent{Content: text}), nil
}

// readAll loads a file, closing it on every exit path
func readAll(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}
