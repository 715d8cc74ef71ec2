package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/fsbrowser/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/fsbrowser/internal/providers/filesystem"
	"github.com/GriffinCanCode/fsbrowser/internal/shared/types"
)

type route struct {
	status int
	body   string
}

// queryLog records the last query string per path
type queryLog struct {
	mu   sync.Mutex
	last map[string]string
}

func (q *queryLog) get(path string) string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.last[path]
}

// fakeGateway answers each path with a fixed status and body
func fakeGateway(t *testing.T, routes map[string]route) (*Client, *queryLog) {
	t.Helper()
	queries := &queryLog{last: make(map[string]string)}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries.mu.Lock()
		queries.last[r.URL.Path] = r.URL.RawQuery
		queries.mu.Unlock()

		route, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set(tracing.TraceHeader, "trace_test")
		w.WriteHeader(route.status)
		_, _ = w.Write([]byte(route.body))
	}))
	t.Cleanup(srv.Close)

	return New(srv.URL, Options{}), queries
}

func TestListDirectory(t *testing.T) {
	c, queries := fakeGateway(t, map[string]route{
		"/api/files/list": {http.StatusOK, `[{"name":"a.txt","path":"a.txt","type":"file"},{"name":"sub","path":"sub","type":"directory"}]`},
	})

	res, err := c.ListDirectory(context.Background(), "")
	require.NoError(t, err)
	require.False(t, res.IsSoftError())
	assert.Equal(t, []types.Entry{
		{Name: "a.txt", Path: "a.txt", Type: types.EntryFile},
		{Name: "sub", Path: "sub", Type: types.EntryDirectory},
	}, res.Value())
	assert.Equal(t, "path=", queries.get("/api/files/list"))
}

func TestSoftErrors(t *testing.T) {
	c, _ := fakeGateway(t, map[string]route{
		"/api/files/list": {http.StatusOK, `{"error":"open missing: no such file or directory"}`},
		"/api/files/read": {http.StatusOK, `{"error":"read sub: is a directory"}`},
	})

	list, err := c.ListDirectory(context.Background(), "missing")
	require.NoError(t, err)
	assert.True(t, list.IsSoftError())
	assert.Equal(t, "open missing: no such file or directory", list.Message())

	read, err := c.ReadFile(context.Background(), "sub")
	require.NoError(t, err)
	assert.True(t, read.IsSoftError())
	assert.Equal(t, "read sub: is a directory", read.Message())
}

func TestReadFile(t *testing.T) {
	c, queries := fakeGateway(t, map[string]route{
		"/api/files/read": {http.StatusOK, `{"content":"hello"}`},
	})

	res, err := c.ReadFile(context.Background(), "docs/a b.txt")
	require.NoError(t, err)
	require.False(t, res.IsSoftError())
	assert.Equal(t, "hello", res.Value().Content)
	assert.Equal(t, "path=docs%2Fa+b.txt", queries.get("/api/files/read"))
}

func TestWalkAndGlob(t *testing.T) {
	c, queries := fakeGateway(t, map[string]route{
		"/api/files/walk": {http.StatusOK, `[]`},
		"/api/files/glob": {http.StatusOK, `[{"name":"x.go","path":"docs/x.go","type":"file"}]`},
	})

	walk, err := c.Walk(context.Background(), "docs", 2)
	require.NoError(t, err)
	assert.Empty(t, walk.Value())
	assert.Equal(t, "max_depth=2&path=docs", queries.get("/api/files/walk"))

	glob, err := c.Glob(context.Background(), "**/*.go")
	require.NoError(t, err)
	require.Len(t, glob.Value(), 1)
	assert.Equal(t, "docs/x.go", glob.Value()[0].Path)
}

func TestHardFailures(t *testing.T) {
	c, _ := fakeGateway(t, map[string]route{
		"/api/files/list": {http.StatusInternalServerError, `{"detail":"access denied: directory traversal attempt: ../etc"}`},
		"/api/files/read": {http.StatusUnprocessableEntity, `{"detail":[{"loc":["query","path"],"msg":"field required","type":"value_error"}]}`},
		"/api/files/glob": {http.StatusBadGateway, ``},
	})

	_, err := c.ListDirectory(context.Background(), "../etc")
	require.Error(t, err)
	assert.ErrorIs(t, err, filesystem.ErrAccessDenied)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, "trace_test", statusErr.TraceID)

	_, err = c.ReadFile(context.Background(), "")
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.StatusCode)
	assert.Contains(t, statusErr.Detail, "field required")
	assert.NotErrorIs(t, err, filesystem.ErrAccessDenied)

	_, err = c.Glob(context.Background(), "*")
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, "Bad Gateway", statusErr.Detail)
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		c, _ := fakeGateway(t, map[string]route{
			"/health": {http.StatusOK, `{"status":"healthy","accessor":{"status":"SERVING"}}`},
		})

		report, err := c.Health(context.Background())
		require.NoError(t, err)
		assert.True(t, report.Healthy())
		assert.Equal(t, "SERVING", report.Accessor.Status)
	})

	t.Run("degraded is not an error", func(t *testing.T) {
		c, _ := fakeGateway(t, map[string]route{
			"/health": {http.StatusServiceUnavailable, `{"status":"degraded","accessor":{"status":"UNREACHABLE","error":"connection refused"}}`},
		})

		report, err := c.Health(context.Background())
		require.NoError(t, err)
		assert.False(t, report.Healthy())
		assert.Equal(t, "connection refused", report.Accessor.Error)
	})
}

func TestGatewayUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, Options{})
	_, err := c.ListDirectory(context.Background(), "")
	require.Error(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}
