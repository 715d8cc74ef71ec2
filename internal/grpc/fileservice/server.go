package fileservice

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GriffinCanCode/fsbrowser/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/fsbrowser/internal/providers/filesystem"
	"github.com/GriffinCanCode/fsbrowser/internal/shared/types"
)

// Server exposes a FileAccessor over gRPC
type Server struct {
	UnimplementedFileServiceServer

	accessor types.FileAccessor
	logger   *zap.Logger
	metrics  *monitoring.Metrics
}

// NewServer wraps accessor. metrics may be nil.
func NewServer(accessor types.FileAccessor, logger *zap.Logger, metrics *monitoring.Metrics) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		accessor: accessor,
		logger:   logger,
		metrics:  metrics,
	}
}

// ListDirectory handles the ListDirectory RPC
func (s *Server) ListDirectory(ctx context.Context, req *PathRequest) (*EntriesReply, error) {
	timer := s.timer("list")
	res, err := s.accessor.ListDirectory(ctx, req.Path)
	if err != nil {
		timer.Stop(outcomeOf(err))
		return nil, s.toStatus("list", req.Path, err)
	}
	timer.Stop(softOutcome(res.IsSoftError()))
	return NewEntriesReply(res), nil
}

// ReadFile handles the ReadFile RPC
func (s *Server) ReadFile(ctx context.Context, req *PathRequest) (*ContentReply, error) {
	timer := s.timer("read")
	res, err := s.accessor.ReadFile(ctx, req.Path)
	if err != nil {
		timer.Stop(outcomeOf(err))
		return nil, s.toStatus("read", req.Path, err)
	}
	timer.Stop(softOutcome(res.IsSoftError()))
	if s.metrics != nil && !res.IsSoftError() {
		s.metrics.AddBytesRead(len(res.Value().Content))
	}
	return NewContentReply(res), nil
}

// Walk handles the Walk RPC
func (s *Server) Walk(ctx context.Context, req *WalkRequest) (*EntriesReply, error) {
	timer := s.timer("walk")
	res, err := s.accessor.Walk(ctx, req.Path, int(req.MaxDepth))
	if err != nil {
		timer.Stop(outcomeOf(err))
		return nil, s.toStatus("walk", req.Path, err)
	}
	timer.Stop(softOutcome(res.IsSoftError()))
	return NewEntriesReply(res), nil
}

// Glob handles the Glob RPC
func (s *Server) Glob(ctx context.Context, req *GlobRequest) (*EntriesReply, error) {
	timer := s.timer("glob")
	res, err := s.accessor.Glob(ctx, req.Pattern)
	if err != nil {
		timer.Stop(outcomeOf(err))
		return nil, s.toStatus("glob", req.Pattern, err)
	}
	timer.Stop(softOutcome(res.IsSoftError()))
	return NewEntriesReply(res), nil
}

func (s *Server) timer(op string) *monitoring.Timer {
	if s.metrics == nil {
		return nil
	}
	return monitoring.NewTimer(s.metrics, op)
}

// toStatus maps a hard accessor failure onto a gRPC status
func (s *Server) toStatus(op, path string, err error) error {
	switch {
	case errors.Is(err, filesystem.ErrAccessDenied):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		s.logger.Error("Accessor operation failed",
			zap.String("op", op),
			zap.String("path", path),
			zap.Error(err),
		)
		return status.Error(codes.Internal, err.Error())
	}
}

func outcomeOf(err error) string {
	if errors.Is(err, filesystem.ErrAccessDenied) {
		return monitoring.OutcomeDenied
	}
	return monitoring.OutcomeError
}

func softOutcome(soft bool) string {
	if soft {
		return monitoring.OutcomeSoft
	}
	return monitoring.OutcomeOK
}
