package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"slotwatch-worker-go/internal/api"
	"slotwatch-worker-go/internal/config"
	"slotwatch-worker-go/internal/grpcapi"
	"slotwatch-worker-go/internal/logging"
	"slotwatch-worker-go/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logging.Setup(cfg)

	log.Info().
		Str("worker_id", cfg.WorkerID).
		Str("version", cfg.Version).
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Int("grpc_port", cfg.GRPCPort).
		Str("zones_file", cfg.ZonesFile).
		Str("classes_file", cfg.ClassesFile).
		Msg("Starting slotwatch worker")

	container, err := services.NewServiceContainer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}

	server, err := api.NewServer(cfg, container.Inspection, container.Metrics)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}
	grpcServer := grpcapi.NewServer(cfg, container.Inspection)

	errCh := make(chan error, 2)
	go func() {
		if err := server.Start(); err != nil {
			errCh <- err
		}
	}()
	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("Server failed, shutting down")
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	grpcServer.Shutdown(ctx)

	if err := container.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Service shutdown finished with errors")
	} else {
		log.Info().Msg("Server shutdown complete")
	}
}
