package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"

	"github.com/GriffinCanCode/fsbrowser/internal/grpc/fileservice"
	"github.com/GriffinCanCode/fsbrowser/internal/infrastructure/config"
	"github.com/GriffinCanCode/fsbrowser/internal/infrastructure/logging"
	"github.com/GriffinCanCode/fsbrowser/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/fsbrowser/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/fsbrowser/internal/providers/filesystem"
)

// Accessor serves a directory tree over gRPC
type Accessor struct {
	cfg     *config.Config
	logger  *logging.Logger
	fs      *filesystem.Accessor
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
	grpc    *grpc.Server
	health  *health.Server
}

// NewAccessor validates the root and registers the file and health services
func NewAccessor(cfg *config.Config, logger *logging.Logger) (*Accessor, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	log := logger.Named(logging.Accessor)

	fs, err := filesystem.New(cfg.Accessor.Root, filesystem.WithLogger(log.Zap()))
	if err != nil {
		return nil, err
	}
	log.Info("Initializing accessor",
		zap.String("addr", cfg.Accessor.Addr),
		zap.String("root", fs.Root()),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New(logging.Accessor, log.Zap())

	srv := grpc.NewServer(
		grpc.MaxRecvMsgSize(cfg.Accessor.MaxMsgBytes),
		grpc.MaxSendMsgSize(cfg.Accessor.MaxMsgBytes),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             30 * time.Second,
			PermitWithoutStream: false,
		}),
		grpc.ChainUnaryInterceptor(
			tracing.GRPCUnaryInterceptor(tracer),
			monitoring.UnaryServerInterceptor(metrics),
		),
	)

	fileservice.RegisterFileServiceServer(srv, fileservice.NewServer(fs, log.Named(logging.GRPC).Zap(), metrics))

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus(fileservice.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return &Accessor{
		cfg:     cfg,
		logger:  log,
		fs:      fs,
		metrics: metrics,
		tracer:  tracer,
		grpc:    srv,
		health:  healthServer,
	}, nil
}

// Root returns the absolute directory being served
func (a *Accessor) Root() string {
	return a.fs.Root()
}

// Metrics returns the accessor's metrics registry wrapper
func (a *Accessor) Metrics() *monitoring.Metrics {
	return a.metrics
}

// Run listens on the configured address and serves until ctx is done
func (a *Accessor) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", a.cfg.Accessor.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.cfg.Accessor.Addr, err)
	}

	if addr := a.cfg.Accessor.MetricsAddr; addr != "" {
		stop := a.serveMetrics(addr)
		defer stop()
	}

	return a.Serve(ctx, lis)
}

// Serve handles RPCs on lis until ctx is done. On shutdown the health
// status flips to NOT_SERVING before in-flight calls are drained.
func (a *Accessor) Serve(ctx context.Context, lis net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting gRPC server", zap.String("addr", lis.Addr().String()))
		errCh <- a.grpc.Serve(lis)
	}()

	select {
	case err := <-errCh:
		a.tracer.Close()
		if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down gRPC server")
	a.health.Shutdown()
	a.stop(a.cfg.Gateway.ShutdownTimeout.Duration)
	a.tracer.Close()
	_ = a.logger.Sync()
	return nil
}

// stop drains in-flight calls, forcing the stop once timeout elapses
func (a *Accessor) stop(timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		a.grpc.GracefulStop()
		close(done)
	}()

	if timeout <= 0 {
		<-done
		return
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
		a.logger.Warn("Graceful stop timed out, forcing", zap.Duration("timeout", timeout))
		a.grpc.Stop()
		<-done
	}
}

func (a *Accessor) serveMetrics(addr string) func() {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.metrics.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		a.logger.Info("Serving accessor metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Metrics server failed", zap.Error(err))
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
