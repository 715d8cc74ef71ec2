package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newObservedTracer(service string) (*Tracer, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return New(service, zap.New(core)), logs
}

func TestStartSpanContinuesTrace(t *testing.T) {
	tracer, _ := newObservedTracer("test")
	defer tracer.Close()

	root, ctx := tracer.StartSpan(context.Background(), "root")
	assert.True(t, strings.HasPrefix(root.TraceID.String(), "trace_"))
	assert.True(t, strings.HasPrefix(root.SpanID.String(), "span_"))
	assert.Empty(t, root.ParentID)

	child, childCtx := tracer.StartSpan(ctx, "child")
	assert.Equal(t, root.TraceID, child.TraceID)
	assert.Equal(t, root.SpanID, child.ParentID)
	assert.Equal(t, child.SpanID, GetSpanID(childCtx))
}

func TestSubmitAndClose(t *testing.T) {
	tracer, logs := newObservedTracer("test")

	ok, _ := tracer.StartSpan(context.Background(), "ok")
	ok.Finish()
	tracer.Submit(ok)

	failed, _ := tracer.StartSpan(context.Background(), "failed")
	failed.SetError(errors.New("boom"))
	failed.Finish()
	tracer.Submit(failed)

	tracer.Close()
	tracer.Close()

	// Submit after close is dropped silently
	tracer.Submit(ok)

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, 1, logs.FilterMessage("Span completed with error").Len())
	assert.Equal(t, 500, failed.StatusCode)
}

func TestInjectExtractRoundTrip(t *testing.T) {
	tracer, _ := newObservedTracer("test")
	defer tracer.Close()

	span, ctx := tracer.StartSpan(context.Background(), "op")

	headers := map[string]string{}
	InjectTraceContext(ctx, headers)

	traceID, spanID := ExtractTraceContext(headers)
	assert.Equal(t, span.TraceID, traceID)
	assert.Equal(t, span.SpanID, spanID)
}

func TestHTTPMiddleware(t *testing.T) {
	tracer, logs := newObservedTracer("gateway")

	router := gin.New()
	router.Use(HTTPMiddleware(tracer))

	var seen TraceID
	router.GET("/api/files/list", func(c *gin.Context) {
		seen = GetTraceID(c.Request.Context())
		c.Status(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/files/list", nil)
	req.Header.Set(TraceHeader, "trace_upstream")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	tracer.Close()

	assert.Equal(t, TraceID("trace_upstream"), seen)
	assert.Equal(t, "trace_upstream", w.Header().Get(TraceHeader))
	assert.NotEmpty(t, w.Header().Get(SpanHeader))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "418", logs.All()[0].ContextMap()["http.status"])
}

func TestGRPCPropagation(t *testing.T) {
	tracer, _ := newObservedTracer("gateway")
	defer tracer.Close()

	parent, ctx := tracer.StartSpan(context.Background(), "http")

	var outgoing metadata.MD
	client := GRPCClientInterceptor(tracer)
	err := client(ctx, "/fsbrowser.v1.FileService/ListDirectory", nil, nil, nil,
		func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
			outgoing, _ = metadata.FromOutgoingContext(ctx)
			return nil
		})
	require.NoError(t, err)
	require.Equal(t, []string{parent.TraceID.String()}, outgoing.Get("x-trace-id"))

	var serverTrace TraceID
	server := GRPCUnaryInterceptor(tracer)
	_, err = server(metadata.NewIncomingContext(context.Background(), outgoing), nil,
		&grpc.UnaryServerInfo{FullMethod: "/fsbrowser.v1.FileService/ListDirectory"},
		func(ctx context.Context, req interface{}) (interface{}, error) {
			serverTrace = GetTraceID(ctx)
			return nil, nil
		})
	require.NoError(t, err)
	assert.Equal(t, parent.TraceID, serverTrace)
}
