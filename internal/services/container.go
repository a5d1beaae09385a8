package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"slotwatch-worker-go/internal/config"
	"slotwatch-worker-go/internal/metrics"
	"slotwatch-worker-go/internal/occupancy"
	"slotwatch-worker-go/internal/services/inspection"
	"slotwatch-worker-go/internal/services/messaging"
	"slotwatch-worker-go/internal/store"
	"slotwatch-worker-go/internal/zonefile"
)

const historyPruneInterval = time.Minute

// ServiceContainer holds all services
type ServiceContainer struct {
	Config     *config.Config
	Engine     *occupancy.Engine
	Metrics    *metrics.Metrics
	Store      *store.Store
	Messaging  *messaging.Service
	Inspection *inspection.Service

	subscription *nats.Subscription
	stopPruner   context.CancelFunc
	wg           sync.WaitGroup
}

// NewEngine loads the zone and class files named by cfg and builds the engine.
func NewEngine(cfg *config.Config) (*occupancy.Engine, error) {
	var fallback occupancy.Unit
	if cfg.ZoneUnit != "" {
		u, err := occupancy.ParseUnit(cfg.ZoneUnit)
		if err != nil {
			return nil, err
		}
		fallback = u
	}

	registry, err := zonefile.LoadRegistry(cfg.ZonesFile, fallback)
	if err != nil {
		return nil, err
	}
	classes, err := zonefile.LoadClasses(cfg.ClassesFile)
	if err != nil {
		return nil, err
	}
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}

	return occupancy.NewEngine(registry, classes, occupancy.EngineOptions{
		Palette:    palette,
		ColorTable: occupancy.NewColorTable(cfg.ColorTableOptions(palette)),
	})
}

// NewServiceContainer creates a new service container
func NewServiceContainer(cfg *config.Config) (*ServiceContainer, error) {
	engine, err := NewEngine(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build occupancy engine: %w", err)
	}

	sc := &ServiceContainer{
		Config:  cfg,
		Engine:  engine,
		Metrics: metrics.New(),
	}

	var history inspection.HistoryStore
	if cfg.HistoryEnabled {
		st, err := store.New(cfg.HistoryDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open history store: %w", err)
		}
		sc.Store = st
		history = st
	}

	sc.Inspection = inspection.NewService(cfg, engine, nil, history, sc.Metrics)

	if cfg.NatsEnabled {
		// Connection failures are not fatal; the HTTP and gRPC surfaces still work.
		msg, err := messaging.NewService(cfg)
		if err != nil {
			log.Warn().Err(err).Str("url", cfg.NatsURL).Msg("NATS not available, running without message ingest")
		} else {
			sc.Messaging = msg
			sc.Inspection.SetPublisher(msg)

			sub, err := msg.SubscribeDetections(sc.Inspection.HandleMessage)
			if err != nil {
				sc.Shutdown(context.Background())
				return nil, fmt.Errorf("failed to subscribe to detections: %w", err)
			}
			sc.subscription = sub
		}
	}

	if sc.Store != nil {
		ctx, cancel := context.WithCancel(context.Background())
		sc.stopPruner = cancel
		sc.wg.Add(1)
		go sc.pruneHistory(ctx)
	}

	log.Info().
		Int("zones", engine.Registry().Len()).
		Str("unit", string(engine.Registry().Unit())).
		Int("classes", len(engine.Classes())).
		Bool("history", sc.Store != nil).
		Bool("nats", sc.Messaging != nil).
		Msg("Service container ready")

	return sc, nil
}

// pruneHistory keeps at most HistoryLimit summaries per camera.
func (sc *ServiceContainer) pruneHistory(ctx context.Context) {
	defer sc.wg.Done()

	ticker := time.NewTicker(historyPruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, cameraID := range sc.Inspection.Cameras() {
				n, err := sc.Store.PruneSummaries(ctx, cameraID, sc.Config.HistoryLimit)
				if err != nil {
					log.Warn().Err(err).Str("camera_id", cameraID).Msg("Failed to prune occupancy history")
					continue
				}
				if n > 0 {
					log.Debug().Str("camera_id", cameraID).Int64("removed", n).Msg("Pruned occupancy history")
				}
			}
		}
	}
}

// Shutdown gracefully shuts down all services
func (sc *ServiceContainer) Shutdown(ctx context.Context) error {
	var errs []error

	if sc.subscription != nil {
		if err := sc.subscription.Unsubscribe(); err != nil {
			errs = append(errs, err)
		}
	}

	if sc.Messaging != nil {
		if err := sc.Messaging.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if sc.stopPruner != nil {
		sc.stopPruner()
		sc.wg.Wait()
	}

	if sc.Store != nil {
		if err := sc.Store.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
