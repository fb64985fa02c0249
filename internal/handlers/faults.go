package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"itms_backend/internal/repository"
	"itms_backend/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errListFaults      = "failed to load fault logs"
	errResolveFault    = "failed to resolve fault"
	errFaultNotFound   = "fault not found"
	errResolvedInvalid = "invalid 'resolved'; use true or false"
)

// @Summary      List fault logs
// @Description  Fault events, newest first, filterable by resolved state and severity
// @Tags         faults
// @Produce      json
// @Param        limit     query  int     false  "Page size (default 50, max 500)"
// @Param        resolved  query  bool    false  "Filter by resolved state"
// @Param        severity  query  string  false  "Severity"  Enums(minor,major,critical)
// @Success      200  {array}   models.FaultLog
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/faults [get]
// @Security     BearerAuth
func (h *Handler) getFaults(c *gin.Context) {
	filter := service.FaultFilter{
		Severity: c.Query("severity"),
		Limit:    intQuery(c, "limit", 0),
	}

	if qs := c.Query("resolved"); qs != "" {
		v, err := strconv.ParseBool(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errResolvedInvalid})
			return
		}
		filter.Resolved = &v
	}

	faults, err := h.services.Faults.List(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSeverity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errListFaults, "faults_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, faults)
}

// @Summary      Resolve a fault
// @Tags         faults
// @Produce      json
// @Param        id   path  string  true  "Fault ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/faults/{id}/resolve [put]
// @Security     BearerAuth
func (h *Handler) resolveFault(c *gin.Context) {
	id := c.Param("id")

	if err := h.services.Faults.Resolve(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrFaultNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errFaultNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errResolveFault, "fault_resolve_failed", err, "fault_id", id)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Fault marked as resolved",
		"fault_id": id,
	})
}
