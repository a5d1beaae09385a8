package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"slotwatch-worker-go/internal/api/handlers"
	"slotwatch-worker-go/internal/api/middleware"
	"slotwatch-worker-go/internal/config"
	"slotwatch-worker-go/internal/metrics"
	"slotwatch-worker-go/internal/services/inspection"
)

type Server struct {
	config  *config.Config
	router  *gin.Engine
	server  *http.Server
	metrics *metrics.Metrics

	healthHandler    *handlers.HealthHandler
	zoneHandler      *handlers.ZoneHandler
	occupancyHandler *handlers.OccupancyHandler
	systemHandler    *handlers.SystemHandler
}

func NewServer(cfg *config.Config, svc *inspection.Service, m *metrics.Metrics) (*Server, error) {
	if svc == nil {
		return nil, errors.New("inspection service is required")
	}
	if m == nil {
		m = metrics.New()
	}
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config:           cfg,
		router:           gin.New(),
		metrics:          m,
		healthHandler:    handlers.NewHealthHandler(cfg),
		zoneHandler:      handlers.NewZoneHandler(svc.Engine()),
		occupancyHandler: handlers.NewOccupancyHandler(svc),
		systemHandler:    handlers.NewSystemHandler(cfg, svc),
	}

	s.setupMiddleware()
	s.setupRoutes()
	s.setupSwagger()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: s.router,
	}
	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recovery())
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.RequestContext())
	s.router.Use(middleware.Logger())
	s.router.Use(middleware.CORS())
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	log.Info().Int("port", s.config.Port).Msg("Starting slotwatch worker API")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Stopping slotwatch worker API")
	return s.server.Shutdown(ctx)
}
