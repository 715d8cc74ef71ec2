package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	api "github.com/GriffinCanCode/fsbrowser/internal/api/http"
	"github.com/GriffinCanCode/fsbrowser/internal/api/middleware"
	"github.com/GriffinCanCode/fsbrowser/internal/grpc/fileservice"
	"github.com/GriffinCanCode/fsbrowser/internal/infrastructure/config"
	"github.com/GriffinCanCode/fsbrowser/internal/infrastructure/logging"
	"github.com/GriffinCanCode/fsbrowser/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/fsbrowser/internal/infrastructure/tracing"
)

// Gateway is the HTTP front of the file browser. It owns the accessor
// client, the router and its middleware.
type Gateway struct {
	cfg     *config.Config
	logger  *logging.Logger
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
	client  *fileservice.Client
	handler http.Handler
}

// GatewayOption customizes gateway construction
type GatewayOption func(*gatewayOptions)

type gatewayOptions struct {
	dialOptions []grpc.DialOption
}

// WithDialOptions passes extra options to the accessor connection
func WithDialOptions(opts ...grpc.DialOption) GatewayOption {
	return func(o *gatewayOptions) {
		o.dialOptions = append(o.dialOptions, opts...)
	}
}

// NewGateway wires the accessor client, middleware and routes
func NewGateway(cfg *config.Config, logger *logging.Logger, opts ...GatewayOption) (*Gateway, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	var o gatewayOptions
	for _, opt := range opts {
		opt(&o)
	}

	log := logger.Named(logging.Gateway)
	log.Info("Initializing gateway",
		zap.String("addr", cfg.Gateway.Addr()),
		zap.String("accessor_addr", cfg.Accessor.Addr),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New(logging.Gateway, log.Zap())

	client, err := fileservice.Dial(cfg.Accessor.Addr, fileservice.Options{
		MaxMsgBytes: cfg.Accessor.MaxMsgBytes,
		CallTimeout: cfg.Accessor.CallTimeout.Duration,
		Logger:      log.Named(logging.GRPC).Zap(),
		Metrics:     metrics,
		Tracer:      tracer,
		DialOptions: o.dialOptions,
	})
	if err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to connect to accessor: %w", err)
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.Recovery(log.Zap()))
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.Logger(log.Zap()))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORS.Origins)))
	if cfg.RateLimit.Enabled {
		log.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := api.NewHandlers(client, client, metrics, log.Zap())
	handlers.Register(router)

	log.Info("Gateway initialized")

	return &Gateway{
		cfg:     cfg,
		logger:  log,
		metrics: metrics,
		tracer:  tracer,
		client:  client,
		handler: gzhttp.GzipHandler(router),
	}, nil
}

// Handler returns the compressed router
func (g *Gateway) Handler() http.Handler {
	return g.handler
}

// Metrics returns the gateway's metrics registry wrapper
func (g *Gateway) Metrics() *monitoring.Metrics {
	return g.metrics
}

// Run listens on the configured address and serves until ctx is done
func (g *Gateway) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", g.cfg.Gateway.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", g.cfg.Gateway.Addr(), err)
	}
	return g.Serve(ctx, lis)
}

// Serve handles requests on lis until ctx is done, then drains in-flight
// requests within the configured shutdown timeout.
func (g *Gateway) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           g.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		g.logger.Info("Starting HTTP server", zap.String("addr", lis.Addr().String()))
		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	g.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), g.cfg.Gateway.ShutdownTimeout.Duration)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}

// Close releases the accessor connection and flushes pending spans
func (g *Gateway) Close() error {
	g.tracer.Close()
	if err := g.client.Close(); err != nil {
		g.logger.Error("Failed to close accessor client", zap.Error(err))
		return fmt.Errorf("failed to close accessor client: %w", err)
	}
	g.logger.Info("Closed accessor connection")
	_ = g.logger.Sync()
	return nil
}
