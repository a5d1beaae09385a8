package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"slotwatch-worker-go/internal/logging"
	"slotwatch-worker-go/internal/models"
	"slotwatch-worker-go/internal/services/inspection"
	"slotwatch-worker-go/internal/store"
)

type OccupancyHandler struct {
	svc *inspection.Service
}

func NewOccupancyHandler(svc *inspection.Service) *OccupancyHandler {
	return &OccupancyHandler{svc: svc}
}

type CamerasResponse struct {
	Cameras []string `json:"cameras"`
	Count   int      `json:"count" example:"1"`
}

type HistoryResponse struct {
	CameraID string                `json:"camera_id" example:"cam-1"`
	Records  []store.SummaryRecord `json:"records"`
	Count    int                   `json:"count" example:"10"`
}

// ClassifyFrame classifies one detection frame
// @Summary Classify a detection frame
// @Description Run the detections of one frame against the zones and return per-zone statuses and the summary
// @Tags occupancy
// @Accept json
// @Produce json
// @Param draw query bool false "Include draw commands"
// @Param request body models.DetectionFrame true "Detection frame"
// @Success 200 {object} models.OccupancyResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /frames [post]
func (h *OccupancyHandler) ClassifyFrame(c *gin.Context) {
	var frame models.DetectionFrame
	if err := c.ShouldBindJSON(&frame); err != nil {
		logging.Warn(c).Err(err).Msg("Invalid detection frame body")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if draw, _ := strconv.ParseBool(c.Query("draw")); draw {
		frame.DrawDetections = true
	}

	result, err := h.svc.ProcessFrame(c.Request.Context(), &frame)
	if err != nil {
		if errors.Is(err, inspection.ErrInvalidFrame) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logging.Error(c).Err(err).Str("camera_id", frame.CameraID).Msg("Failed to classify frame")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary List cameras
// @Description Get the cameras that produced at least one result
// @Tags occupancy
// @Produce json
// @Success 200 {object} CamerasResponse
// @Router /cameras [get]
func (h *OccupancyHandler) ListCameras(c *gin.Context) {
	cameras := h.svc.Cameras()
	c.JSON(http.StatusOK, CamerasResponse{Cameras: cameras, Count: len(cameras)})
}

// @Summary Latest occupancy
// @Description Get the most recent occupancy result of a camera
// @Tags occupancy
// @Produce json
// @Param id path string true "Camera ID"
// @Success 200 {object} models.OccupancyResult
// @Failure 404 {object} ErrorResponse
// @Router /cameras/{id}/occupancy [get]
func (h *OccupancyHandler) GetOccupancy(c *gin.Context) {
	result, ok := h.svc.Latest(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "camera not found"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Occupancy history
// @Description Get stored frame summaries of a camera, newest first
// @Tags occupancy
// @Produce json
// @Param id path string true "Camera ID"
// @Param limit query int false "Maximum number of records"
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cameras/{id}/history [get]
func (h *OccupancyHandler) GetHistory(c *gin.Context) {
	if !h.svc.HistoryEnabled() {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "history is disabled"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	cameraID := c.Param("id")
	records, err := h.svc.History(c.Request.Context(), cameraID, limit)
	if err != nil {
		logging.Error(c).Err(err).Msg("Failed to read occupancy history")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, HistoryResponse{CameraID: cameraID, Records: records, Count: len(records)})
}
