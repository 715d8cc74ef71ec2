package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/fsbrowser/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/fsbrowser/internal/providers/filesystem"
	"github.com/GriffinCanCode/fsbrowser/internal/shared/types"
	"github.com/GriffinCanCode/fsbrowser/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(accessor *testutil.MockAccessor, metrics *monitoring.Metrics) *gin.Engine {
	router := gin.New()
	NewHandlers(accessor, accessor, metrics, nil).Register(router)
	return router
}

func get(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestListFiles(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		path       string
		result     types.Result[[]types.Entry]
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:  "listing",
			query: "?path=",
			path:  "",
			result: types.Ok([]types.Entry{
				{Name: "a.txt", Path: "a.txt", Type: types.EntryFile},
				{Name: "sub", Path: "sub", Type: types.EntryDirectory},
			}),
			wantStatus: http.StatusOK,
			wantBody:   `[{"name":"a.txt","path":"a.txt","type":"file"},{"name":"sub","path":"sub","type":"directory"}]`,
		},
		{
			name:       "path defaults to root",
			query:      "",
			path:       "",
			result:     types.Ok([]types.Entry{}),
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
		},
		{
			name:       "nil listing encodes as empty array",
			query:      "?path=sub",
			path:       "sub",
			result:     types.Ok[[]types.Entry](nil),
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
		},
		{
			name:       "soft failure",
			query:      "?path=missing",
			path:       "missing",
			result:     types.SoftError[[]types.Entry]("open missing: no such file or directory"),
			wantStatus: http.StatusOK,
			wantBody:   `{"error":"open missing: no such file or directory"}`,
		},
		{
			name:       "access denied",
			query:      "?path=../../etc",
			path:       "../../etc",
			err:        fmt.Errorf("%w: ../../etc", filesystem.ErrAccessDenied),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"detail":"access denied: directory traversal attempt: ../../etc"}`,
		},
		{
			name:       "transport fault",
			query:      "?path=a",
			path:       "a",
			err:        errors.New("accessor unavailable: circuit breaker open"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"detail":"accessor unavailable: circuit breaker open"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accessor := testutil.NewMockAccessor(t)
			accessor.On("ListDirectory", mock.Anything, tt.path).Return(tt.result, tt.err).Once()

			w := get(newRouter(accessor, nil), "/api/files/list"+tt.query)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestReadFile(t *testing.T) {
	t.Run("content", func(t *testing.T) {
		accessor := testutil.NewMockAccessor(t)
		accessor.On("ReadFile", mock.Anything, "a.txt").
			Return(types.Ok(types.FileContent{Content: "hello"}), nil).Once()

		w := get(newRouter(accessor, nil), "/api/files/read?path=a.txt")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"content":"hello"}`, w.Body.String())
	})

	t.Run("soft failure", func(t *testing.T) {
		accessor := testutil.NewMockAccessor(t)
		accessor.On("ReadFile", mock.Anything, "gone.txt").
			Return(types.SoftError[types.FileContent]("open gone.txt: no such file or directory"), nil).Once()

		w := get(newRouter(accessor, nil), "/api/files/read?path=gone.txt")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"error":"open gone.txt: no such file or directory"}`, w.Body.String())
	})

	t.Run("missing path parameter", func(t *testing.T) {
		accessor := testutil.NewMockAccessor(t)

		w := get(newRouter(accessor, nil), "/api/files/read")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), `"detail"`)
		assert.Contains(t, w.Body.String(), `"path"`)
		accessor.AssertNotCalled(t, "ReadFile", mock.Anything, mock.Anything)
	})

	t.Run("explicit empty path reaches accessor", func(t *testing.T) {
		accessor := testutil.NewMockAccessor(t)
		accessor.On("ReadFile", mock.Anything, "").
			Return(types.SoftError[types.FileContent]("read .: is a directory"), nil).Once()

		w := get(newRouter(accessor, nil), "/api/files/read?path=")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"error":"read .: is a directory"}`, w.Body.String())
	})

	t.Run("access denied", func(t *testing.T) {
		accessor := testutil.NewMockAccessor(t)
		accessor.On("ReadFile", mock.Anything, "../secret").
			Return(types.Result[types.FileContent]{}, fmt.Errorf("%w: ../secret", filesystem.ErrAccessDenied)).Once()

		w := get(newRouter(accessor, nil), "/api/files/read?path=../secret")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "access denied")
	})
}

func TestWalkFiles(t *testing.T) {
	accessor := testutil.NewMockAccessor(t)
	accessor.On("Walk", mock.Anything, "docs", 2).
		Return(types.Ok([]types.Entry{{Name: "x.go", Path: "docs/x.go", Type: types.EntryFile}}), nil).Once()

	router := newRouter(accessor, nil)

	w := get(router, "/api/files/walk?path=docs&max_depth=2")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"name":"x.go","path":"docs/x.go","type":"file"}]`, w.Body.String())

	w = get(router, "/api/files/walk?max_depth=-1")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = get(router, "/api/files/walk?max_depth=deep")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// depths that do not fit the accessor's int32 are rejected, not wrapped
	for _, depth := range []string{"2147483648", "4294967297"} {
		w = get(router, "/api/files/walk?path=docs&max_depth="+depth)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, depth)
		assert.Contains(t, w.Body.String(), "max_depth", depth)
	}
}

func TestGlobFiles(t *testing.T) {
	accessor := testutil.NewMockAccessor(t)
	accessor.On("Glob", mock.Anything, "**/*.txt").
		Return(types.Ok([]types.Entry{{Name: "a.txt", Path: "a.txt", Type: types.EntryFile}}), nil).Once()

	router := newRouter(accessor, nil)

	w := get(router, "/api/files/glob?pattern=**/*.txt")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"name":"a.txt","path":"a.txt","type":"file"}]`, w.Body.String())

	w = get(router, "/api/files/glob")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRootAndHealth(t *testing.T) {
	t.Run("root banner", func(t *testing.T) {
		w := get(newRouter(testutil.NewMockAccessor(t), nil), "/")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"online"`)
	})

	t.Run("healthy", func(t *testing.T) {
		w := get(newRouter(testutil.NewMockAccessor(t), monitoring.NewMetrics()), "/health")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"healthy"`)
		assert.Contains(t, w.Body.String(), `"SERVING"`)
		assert.Contains(t, w.Body.String(), `"metrics"`)
	})

	t.Run("accessor unreachable", func(t *testing.T) {
		accessor := new(testutil.MockAccessor)
		accessor.On("Health", mock.Anything).Return("", errors.New("connection refused"))

		w := get(newRouter(accessor, nil), "/health")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"degraded"`)
		assert.Contains(t, w.Body.String(), "connection refused")
	})

	t.Run("accessor not serving", func(t *testing.T) {
		accessor := new(testutil.MockAccessor)
		accessor.On("Health", mock.Anything).Return("NOT_SERVING", nil)

		w := get(newRouter(accessor, nil), "/health")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestMetricsEndpoints(t *testing.T) {
	accessor := testutil.NewMockAccessor(t)
	router := gin.New()
	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	NewHandlers(accessor, accessor, metrics, nil).Register(router)

	get(router, "/")

	w := get(router, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `fsbrowser_http_requests_total{method="GET",route="/",status="200"} 1`)

	w = get(router, "/metrics/json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_requests"`)
}
