package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slotwatch-worker-go/internal/config"
)

type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

type HealthResponse struct {
	Status   string `json:"status" example:"healthy"`
	WorkerID string `json:"worker_id" example:"worker-1"`
}

type WorkerInfoResponse struct {
	WorkerID     string   `json:"worker_id" example:"worker-1"`
	Status       string   `json:"status" example:"running"`
	Version      string   `json:"version" example:"1.0.0"`
	Environment  string   `json:"environment" example:"development"`
	Capabilities []string `json:"capabilities"`
}

// ErrorResponse is returned by every failing endpoint
type ErrorResponse struct {
	Error string `json:"error" example:"camera not found"`
}

// @Summary Health check
// @Description Check if the worker is healthy and responsive
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:   "healthy",
		WorkerID: h.cfg.WorkerID,
	})
}

// @Summary Worker information
// @Description Get basic worker information and capabilities
// @Tags health
// @Produce json
// @Success 200 {object} WorkerInfoResponse
// @Router / [get]
func (h *HealthHandler) WorkerInfo(c *gin.Context) {
	capabilities := []string{"zone_classification", "occupancy_summary", "draw_commands", "grpc_classify"}
	if h.cfg.NatsEnabled {
		capabilities = append(capabilities, "nats_ingest")
	}
	if h.cfg.HistoryEnabled {
		capabilities = append(capabilities, "summary_history")
	}

	c.JSON(http.StatusOK, WorkerInfoResponse{
		WorkerID:     h.cfg.WorkerID,
		Status:       "running",
		Version:      h.cfg.Version,
		Environment:  h.cfg.Environment,
		Capabilities: capabilities,
	})
}
