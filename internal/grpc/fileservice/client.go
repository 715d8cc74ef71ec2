package fileservice

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/status"

	"github.com/GriffinCanCode/fsbrowser/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/fsbrowser/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/fsbrowser/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/fsbrowser/internal/providers/filesystem"
	"github.com/GriffinCanCode/fsbrowser/internal/shared/types"
)

// DefaultMaxMsgBytes bounds a single request or reply
const DefaultMaxMsgBytes = 64 << 20

// ErrUnavailable reports that the accessor could not be reached
var ErrUnavailable = errors.New("accessor unavailable")

// RemoteError is a hard failure reported across the gRPC hop. Its message is
// the accessor's own; errors.Is matches filesystem.ErrAccessDenied and
// ErrUnavailable by status code.
type RemoteError struct {
	Code    codes.Code
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// Is maps status codes onto sentinel errors
func (e *RemoteError) Is(target error) bool {
	switch target {
	case filesystem.ErrAccessDenied:
		return e.Code == codes.PermissionDenied
	case ErrUnavailable:
		return e.Code == codes.Unavailable
	}
	return false
}

// GRPCStatus lets status.Code recover the original code
func (e *RemoteError) GRPCStatus() *status.Status {
	return status.New(e.Code, e.Message)
}

// Options configures a Client
type Options struct {
	MaxMsgBytes int
	CallTimeout time.Duration // 0 = no per-call deadline
	Logger      *zap.Logger
	Metrics     *monitoring.Metrics
	Tracer      *tracing.Tracer
	DialOptions []grpc.DialOption
}

// Client is a FileAccessor backed by a remote accessor
type Client struct {
	conn    *grpc.ClientConn
	client  FileServiceClient
	health  healthpb.HealthClient
	addr    string
	breaker *resilience.Breaker
	timeout time.Duration
	logger  *zap.Logger
}

var _ types.FileAccessor = (*Client)(nil)

// Dial creates a client for the accessor at addr. The connection is
// established lazily on the first call.
func Dial(addr string, opts Options) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxMsg := opts.MaxMsgBytes
	if maxMsg <= 0 {
		maxMsg = DefaultMaxMsgBytes
	}

	var interceptors []grpc.UnaryClientInterceptor
	if opts.Tracer != nil {
		interceptors = append(interceptors, tracing.GRPCClientInterceptor(opts.Tracer))
	}
	if opts.Metrics != nil {
		interceptors = append(interceptors, monitoring.UnaryClientInterceptor(opts.Metrics))
	}

	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		// Pings only while calls are in flight; the server's enforcement
		// policy must allow this interval
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                60 * time.Second,
			Timeout:             20 * time.Second,
			PermitWithoutStream: false,
		}),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(maxMsg),
			grpc.MaxCallSendMsgSize(maxMsg),
		),
		grpc.WithChainUnaryInterceptor(interceptors...),
	}
	dialOpts = append(dialOpts, opts.DialOptions...)

	conn, err := grpc.NewClient(addr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create accessor client: %w", err)
	}

	breaker := resilience.New("accessor", resilience.Settings{
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5 ||
				(counts.Requests >= 10 && counts.FailureRatio() > 0.5)
		},
		IsSuccessful: isHealthyReply,
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
			if opts.Metrics != nil {
				opts.Metrics.SetBreakerState(name, float64(to))
			}
		},
	})

	return &Client{
		conn:    conn,
		client:  NewFileServiceClient(conn),
		health:  healthpb.NewHealthClient(conn),
		addr:    addr,
		breaker: breaker,
		timeout: opts.CallTimeout,
		logger:  logger,
	}, nil
}

// isHealthyReply treats every answer from a reachable accessor as success;
// only transport faults count against the breaker
func isHealthyReply(err error) bool {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded:
		return false
	}
	return true
}

// Addr returns the accessor address
func (c *Client) Addr() string {
	return c.addr
}

// BreakerState reports the circuit breaker state
func (c *Client) BreakerState() resilience.State {
	return c.breaker.State()
}

// Close closes the connection
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// ListDirectory lists a directory on the remote accessor
func (c *Client) ListDirectory(ctx context.Context, path string) (types.Result[[]types.Entry], error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	reply, err := resilience.Call(c.breaker, func() (*EntriesReply, error) {
		return c.client.ListDirectory(ctx, &PathRequest{Path: path})
	})
	if err != nil {
		return types.Result[[]types.Entry]{}, c.hardError("list", err)
	}
	return reply.Result(), nil
}

// ReadFile reads a file on the remote accessor
func (c *Client) ReadFile(ctx context.Context, path string) (types.Result[types.FileContent], error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	reply, err := resilience.Call(c.breaker, func() (*ContentReply, error) {
		return c.client.ReadFile(ctx, &PathRequest{Path: path})
	})
	if err != nil {
		return types.Result[types.FileContent]{}, c.hardError("read", err)
	}
	return reply.Result(), nil
}

// wireDepth saturates maxDepth into the int32 carried on the wire. Any
// depth past MaxInt32 is deeper than a real tree, so the walk is unchanged.
func wireDepth(maxDepth int) int32 {
	switch {
	case maxDepth > math.MaxInt32:
		return math.MaxInt32
	case maxDepth < math.MinInt32:
		return math.MinInt32
	}
	return int32(maxDepth)
}

// Walk recursively lists a directory on the remote accessor
func (c *Client) Walk(ctx context.Context, path string, maxDepth int) (types.Result[[]types.Entry], error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	reply, err := resilience.Call(c.breaker, func() (*EntriesReply, error) {
		return c.client.Walk(ctx, &WalkRequest{Path: path, MaxDepth: wireDepth(maxDepth)})
	})
	if err != nil {
		return types.Result[[]types.Entry]{}, c.hardError("walk", err)
	}
	return reply.Result(), nil
}

// Glob matches a pattern on the remote accessor
func (c *Client) Glob(ctx context.Context, pattern string) (types.Result[[]types.Entry], error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	reply, err := resilience.Call(c.breaker, func() (*EntriesReply, error) {
		return c.client.Glob(ctx, &GlobRequest{Pattern: pattern})
	})
	if err != nil {
		return types.Result[[]types.Entry]{}, c.hardError("glob", err)
	}
	return reply.Result(), nil
}

// Health asks the accessor's health service whether FileService is serving
func (c *Client) Health(ctx context.Context) (string, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return "", c.hardError("health", err)
	}
	return resp.GetStatus().String(), nil
}

func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return ctx, func() {}
}

// hardError converts a failed call into the error handed to callers
func (c *Client) hardError(op string, err error) error {
	if resilience.IsRejection(err) {
		c.logger.Error("Accessor call rejected", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%w: circuit breaker open", ErrUnavailable)
	}

	st := status.Convert(err)
	switch st.Code() {
	case codes.PermissionDenied:
		c.logger.Warn("Accessor denied access", zap.String("op", op), zap.String("message", st.Message()))
	case codes.Unavailable, codes.DeadlineExceeded:
		c.logger.Error("Accessor transport fault", zap.String("op", op), zap.Error(err))
	default:
		c.logger.Warn("Accessor call failed", zap.String("op", op), zap.Error(err))
	}
	return &RemoteError{Code: st.Code(), Message: st.Message()}
}
