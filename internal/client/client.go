package client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/fsbrowser/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/fsbrowser/internal/providers/filesystem"
	"github.com/GriffinCanCode/fsbrowser/internal/shared/types"
)

const (
	// DefaultBaseURL is where a locally started gateway listens
	DefaultBaseURL = "http://localhost:3000"
	// DefaultTimeout bounds a whole request including the body
	DefaultTimeout = 30 * time.Second

	userAgent = "fsbrowser-client/1.0"
)

// StatusError is a non-200 answer from the gateway
type StatusError struct {
	StatusCode int
	Detail     string
	TraceID    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gateway returned %d: %s", e.StatusCode, e.Detail)
}

// Is matches filesystem.ErrAccessDenied for traversal rejections
func (e *StatusError) Is(target error) bool {
	return target == filesystem.ErrAccessDenied &&
		strings.HasPrefix(e.Detail, filesystem.ErrAccessDenied.Error())
}

// HealthReport is the decoded /health body
type HealthReport struct {
	Status   string `json:"status"`
	Accessor struct {
		Status string `json:"status"`
		Error  string `json:"error,omitempty"`
	} `json:"accessor"`
}

// Healthy reports whether both gateway and accessor are serving
func (r HealthReport) Healthy() bool {
	return r.Status == "healthy"
}

// Options configures a Client
type Options struct {
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client is a FileAccessor backed by a gateway's HTTP API
type Client struct {
	Resty *resty.Client
}

var _ types.FileAccessor = (*Client)(nil)

// New creates a client for the gateway at baseURL
func New(baseURL string, opts Options) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	r := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)
	if opts.Logger != nil {
		r.SetLogger(opts.Logger.Sugar())
	}

	return &Client{Resty: r}
}

// ListDirectory lists a directory through the gateway
func (c *Client) ListDirectory(ctx context.Context, path string) (types.Result[[]types.Entry], error) {
	resp, err := c.get(ctx, "/api/files/list", map[string]string{"path": path})
	if err != nil {
		return types.Result[[]types.Entry]{}, err
	}
	return decode[[]types.Entry](resp)
}

// ReadFile reads a text file through the gateway
func (c *Client) ReadFile(ctx context.Context, path string) (types.Result[types.FileContent], error) {
	resp, err := c.get(ctx, "/api/files/read", map[string]string{"path": path})
	if err != nil {
		return types.Result[types.FileContent]{}, err
	}
	return decode[types.FileContent](resp)
}

// Walk lists a subtree through the gateway
func (c *Client) Walk(ctx context.Context, path string, maxDepth int) (types.Result[[]types.Entry], error) {
	resp, err := c.get(ctx, "/api/files/walk", map[string]string{
		"path":      path,
		"max_depth": strconv.Itoa(maxDepth),
	})
	if err != nil {
		return types.Result[[]types.Entry]{}, err
	}
	return decode[[]types.Entry](resp)
}

// Glob matches a pattern through the gateway
func (c *Client) Glob(ctx context.Context, pattern string) (types.Result[[]types.Entry], error) {
	resp, err := c.get(ctx, "/api/files/glob", map[string]string{"pattern": pattern})
	if err != nil {
		return types.Result[[]types.Entry]{}, err
	}
	return decode[[]types.Entry](resp)
}

// Health fetches the gateway health report. A degraded gateway answers 503
// with a report, which is returned without error.
func (c *Client) Health(ctx context.Context) (HealthReport, error) {
	var report HealthReport
	resp, err := c.get(ctx, "/health", nil)
	if err != nil {
		return report, err
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusServiceUnavailable {
		return report, statusError(resp)
	}
	if err := sonic.Unmarshal(resp.Body(), &report); err != nil {
		return report, fmt.Errorf("failed to decode health report: %w", err)
	}
	return report, nil
}

func (c *Client) get(ctx context.Context, path string, query map[string]string) (*resty.Response, error) {
	req := c.Resty.R().SetContext(ctx)
	if query != nil {
		req.SetQueryParams(query)
	}
	if traceID := tracing.GetTraceID(ctx); traceID != "" {
		req.SetHeader(tracing.TraceHeader, traceID.String())
	}

	resp, err := req.Get(path)
	if err != nil {
		return nil, fmt.Errorf("request %s failed: %w", path, err)
	}
	return resp, nil
}

// decode turns a gateway answer into a result. 200 bodies are either the
// payload or a {"error": ...} object; anything else is a hard failure.
func decode[T any](resp *resty.Response) (types.Result[T], error) {
	if resp.StatusCode() != http.StatusOK {
		return types.Result[T]{}, statusError(resp)
	}

	body := resp.Body()
	if bytes.HasPrefix(bytes.TrimSpace(body), []byte("{")) {
		var probe struct {
			Error *string `json:"error"`
		}
		if err := sonic.Unmarshal(body, &probe); err != nil {
			return types.Result[T]{}, fmt.Errorf("failed to decode response: %w", err)
		}
		if probe.Error != nil {
			return types.SoftError[T](*probe.Error), nil
		}
	}

	var value T
	if err := sonic.Unmarshal(body, &value); err != nil {
		return types.Result[T]{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return types.Ok(value), nil
}

func statusError(resp *resty.Response) *StatusError {
	e := &StatusError{
		StatusCode: resp.StatusCode(),
		TraceID:    resp.Header().Get(tracing.TraceHeader),
	}

	var body struct {
		Detail interface{} `json:"detail"`
	}
	if err := sonic.Unmarshal(resp.Body(), &body); err != nil || body.Detail == nil {
		e.Detail = strings.TrimSpace(string(resp.Body()))
		if e.Detail == "" {
			e.Detail = http.StatusText(resp.StatusCode())
		}
		return e
	}

	switch detail := body.Detail.(type) {
	case string:
		e.Detail = detail
	default:
		raw, _ := sonic.Marshal(detail)
		e.Detail = string(raw)
	}
	return e
}
