package grpcapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"slotwatch-worker-go/internal/config"
	"slotwatch-worker-go/internal/logging"
	"slotwatch-worker-go/internal/models"
	"slotwatch-worker-go/internal/services/inspection"
)

// FrameProcessor classifies decoded detection frames.
type FrameProcessor interface {
	ProcessFrame(ctx context.Context, frame *models.DetectionFrame) (*models.OccupancyResult, error)
}

type Server struct {
	cfg    *config.Config
	svc    FrameProcessor
	grpc   *grpc.Server
	health *health.Server
	logger zerolog.Logger
}

func NewServer(cfg *config.Config, svc FrameProcessor) *Server {
	s := &Server{
		cfg:    cfg,
		svc:    svc,
		health: health.NewServer(),
		logger: logging.NewServiceLogger(cfg, "grpc"),
	}
	s.grpc = grpc.NewServer(grpc.ChainUnaryInterceptor(s.logInterceptor))

	RegisterOccupancyServer(s.grpc, s)
	healthpb.RegisterHealthServer(s.grpc, s.health)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return s
}

// Classify decodes a detection frame and returns the occupancy result.
func (s *Server) Classify(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raw, err := protojson.Marshal(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "encode request: %v", err)
	}

	var frame models.DetectionFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "decode detection frame: %v", err)
	}

	result, err := s.svc.ProcessFrame(ctx, &frame)
	if err != nil {
		if errors.Is(err, inspection.ErrInvalidFrame) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Error(codes.Internal, err.Error())
	}

	out, err := json.Marshal(result)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode result: %v", err)
	}
	resp := &structpb.Struct{}
	if err := protojson.Unmarshal(out, resp); err != nil {
		return nil, status.Errorf(codes.Internal, "encode result: %v", err)
	}
	return resp, nil
}

// Serve blocks serving on lis until Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info().Str("addr", lis.Addr().String()).Msg("Starting gRPC server")
	return s.grpc.Serve(lis)
}

// Start listens on the configured gRPC port and serves.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port %d: %w", s.cfg.GRPCPort, err)
	}
	return s.Serve(lis)
}

// Shutdown drains in-flight calls, forcing a stop when ctx expires.
func (s *Server) Shutdown(ctx context.Context) {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn().Msg("gRPC graceful stop timed out, forcing stop")
		s.grpc.Stop()
	}
}

func (s *Server) logInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	event := s.logger.Debug()
	if err != nil {
		event = s.logger.Warn().Err(err)
	}
	event.
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Msg("grpc_request")

	return resp, err
}
