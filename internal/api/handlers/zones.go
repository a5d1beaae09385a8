package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slotwatch-worker-go/internal/occupancy"
)

type ZoneHandler struct {
	engine *occupancy.Engine
}

func NewZoneHandler(engine *occupancy.Engine) *ZoneHandler {
	return &ZoneHandler{engine: engine}
}

type ZonesResponse struct {
	Unit  occupancy.Unit   `json:"unit" example:"normalized"`
	Zones []occupancy.Zone `json:"zones"`
	Count int              `json:"count" example:"4"`
}

type ClassInfo struct {
	ID   int    `json:"id" example:"0"`
	Name string `json:"name" example:"bolt"`
}

type ClassesResponse struct {
	Classes []ClassInfo `json:"classes"`
	Count   int         `json:"count" example:"2"`
}

// @Summary List zones
// @Description Get the zones loaded at startup, in load order
// @Tags zones
// @Produce json
// @Success 200 {object} ZonesResponse
// @Router /zones [get]
func (h *ZoneHandler) ListZones(c *gin.Context) {
	reg := h.engine.Registry()
	c.JSON(http.StatusOK, ZonesResponse{
		Unit:  reg.Unit(),
		Zones: reg.Zones(),
		Count: reg.Len(),
	})
}

// @Summary List classes
// @Description Get the detector class list used to name class ids
// @Tags zones
// @Produce json
// @Success 200 {object} ClassesResponse
// @Router /classes [get]
func (h *ZoneHandler) ListClasses(c *gin.Context) {
	classes := h.engine.Classes()
	out := make([]ClassInfo, len(classes))
	for i, name := range classes {
		out[i] = ClassInfo{ID: i, Name: name}
	}
	c.JSON(http.StatusOK, ClassesResponse{Classes: out, Count: len(out)})
}
