package grpcapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"slotwatch-worker-go/internal/models"
)

// Client calls a remote Occupancy service.
type Client struct {
	conn   *grpc.ClientConn
	health healthpb.HealthClient
	target string
}

// Dial creates a client for target. Extra options are appended after the
// insecure transport credentials.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to occupancy service at %s: %w", target, err)
	}

	log.Info().Str("target", target).Msg("Occupancy gRPC client initialized")

	return &Client{
		conn:   conn,
		health: healthpb.NewHealthClient(conn),
		target: target,
	}, nil
}

// Classify sends one detection frame and decodes the result.
func (c *Client) Classify(ctx context.Context, frame *models.DetectionFrame) (*models.OccupancyResult, error) {
	raw, err := json.Marshal(frame)
	if err != nil {
		return nil, fmt.Errorf("failed to encode detection frame: %w", err)
	}
	req := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, req); err != nil {
		return nil, fmt.Errorf("failed to encode detection frame: %w", err)
	}

	resp := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, ClassifyFullMethod, req, resp); err != nil {
		return nil, err
	}

	out, err := protojson.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to decode occupancy result: %w", err)
	}
	var result models.OccupancyResult
	if err := json.Unmarshal(out, &result); err != nil {
		return nil, fmt.Errorf("failed to decode occupancy result: %w", err)
	}
	return &result, nil
}

// HealthCheck reports whether the remote service is serving.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return fmt.Errorf("occupancy service health check failed: %w", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("occupancy service at %s is %s", c.target, resp.GetStatus())
	}
	return nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}
