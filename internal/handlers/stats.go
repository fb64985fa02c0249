package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	errGetStats     = "failed to compute stats"
	errGetDashboard = "failed to build dashboard"
)

// @Summary      Sensor statistics
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  models.SensorStats
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/stats [get]
// @Security     BearerAuth
func (h *Handler) getStats(c *gin.Context) {
	stats, err := h.services.Stats.Stats(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetStats, "stats_failed", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary      Complete dashboard payload
// @Description  Latest reading, recent readings/faults, stats and connection status in one request
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  models.DashboardData
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/dashboard [get]
// @Security     BearerAuth
func (h *Handler) getDashboard(c *gin.Context) {
	data, err := h.services.Stats.Dashboard(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetDashboard, "dashboard_failed", err)
		return
	}
	c.JSON(http.StatusOK, data)
}
