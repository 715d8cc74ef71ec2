// Package testutil provides testing utilities shared by package tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/fsbrowser/internal/shared/types"
)

// MockAccessor is a mock implementation of types.FileAccessor.
type MockAccessor struct {
	mock.Mock
}

var _ types.FileAccessor = (*MockAccessor)(nil)

// ListDirectory mocks the ListDirectory method.
func (m *MockAccessor) ListDirectory(ctx context.Context, path string) (types.Result[[]types.Entry], error) {
	args := m.Called(ctx, path)
	return args.Get(0).(types.Result[[]types.Entry]), args.Error(1)
}

// ReadFile mocks the ReadFile method.
func (m *MockAccessor) ReadFile(ctx context.Context, path string) (types.Result[types.FileContent], error) {
	args := m.Called(ctx, path)
	return args.Get(0).(types.Result[types.FileContent]), args.Error(1)
}

// Walk mocks the Walk method.
func (m *MockAccessor) Walk(ctx context.Context, path string, maxDepth int) (types.Result[[]types.Entry], error) {
	args := m.Called(ctx, path, maxDepth)
	return args.Get(0).(types.Result[[]types.Entry]), args.Error(1)
}

// Glob mocks the Glob method.
func (m *MockAccessor) Glob(ctx context.Context, pattern string) (types.Result[[]types.Entry], error) {
	args := m.Called(ctx, pattern)
	return args.Get(0).(types.Result[[]types.Entry]), args.Error(1)
}

// Health mocks the accessor health check.
func (m *MockAccessor) Health(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// NewMockAccessor creates a mock accessor that reports itself healthy.
func NewMockAccessor(t *testing.T) *MockAccessor {
	t.Helper()
	m := new(MockAccessor)

	m.On("Health", mock.Anything).Return("SERVING", nil).Maybe()

	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// CreateTree writes files under a fresh temp directory and returns its path.
// Keys are slash-separated relative paths; a key ending in "/" creates an
// empty directory.
func CreateTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			require.NoError(t, os.MkdirAll(full, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return root
}

// ScenarioTree builds the canonical fixture: a.txt containing "hello" and an
// empty sub directory.
func ScenarioTree(t *testing.T) string {
	t.Helper()
	return CreateTree(t, map[string]string{
		"a.txt": "hello",
		"sub/":  "",
	})
}

// AssertSoftError asserts a result is the soft failure variant.
func AssertSoftError[T any](t *testing.T, res types.Result[T]) {
	t.Helper()
	if !res.IsSoftError() {
		t.Fatalf("Expected soft error, got value: %v", res.Value())
	}
	if res.Message() == "" {
		t.Fatal("Expected soft error message, got empty string")
	}
}

// AssertOk asserts a result carries a value.
func AssertOk[T any](t *testing.T, res types.Result[T]) {
	t.Helper()
	if res.IsSoftError() {
		t.Fatalf("Expected value, got soft error: %s", res.Message())
	}
}
