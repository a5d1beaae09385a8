package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"slotwatch-worker-go/internal/config"
	"slotwatch-worker-go/internal/services/inspection"
)

// SystemHandler handles system-related endpoints
type SystemHandler struct {
	cfg     *config.Config
	svc     *inspection.Service
	started time.Time
}

func NewSystemHandler(cfg *config.Config, svc *inspection.Service) *SystemHandler {
	return &SystemHandler{cfg: cfg, svc: svc, started: time.Now()}
}

// @Summary Get system stats
// @Description Get runtime statistics of the worker
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /system/stats [get]
func (h *SystemHandler) GetStats(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	engine := h.svc.Engine()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"worker_id":       h.cfg.WorkerID,
			"uptime_seconds":  int64(time.Since(h.started).Seconds()),
			"memory_mb":       m.Alloc / 1024 / 1024,
			"cpu_cores":       runtime.NumCPU(),
			"goroutines":      runtime.NumGoroutine(),
			"go_version":      runtime.Version(),
			"zones":           engine.Registry().Len(),
			"classes":         len(engine.Classes()),
			"class_colors":    engine.Colors().Len(),
			"cameras":         len(h.svc.Cameras()),
			"history_enabled": h.svc.HistoryEnabled(),
		},
		"timestamp": time.Now().Unix(),
	})
}
