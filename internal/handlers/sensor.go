package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"itms_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/error constants to avoid magic strings and typos.
const (
	errInvalidSensorData = "invalid sensor data format"
	errProcessSensorData = "failed to process sensor data"
	errGetLatestReading  = "failed to load latest reading"
	errListReadings      = "failed to load readings"
	errInvalidBodyPref   = "invalid body: "

	errStartInvalid = "invalid 'start_date'; use RFC3339 or YYYY-MM-DD"
	errEndInvalid   = "invalid 'end_date'; use RFC3339 or YYYY-MM-DD"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// Request DTO for the NodeMCU submission. Field names match the device
// firmware payload.
type sensorDataInput struct {
	SensorData string `json:"sensorData" binding:"required"`
	Timestamp  string `json:"timestamp" binding:"required"`
}

// SensorDataInput is an exported model for Swagger docs of the ingest payload.
type SensorDataInput struct {
	// Raw telemetry string from the sensor unit
	SensorData string `json:"sensorData" example:"IR:1,VIB_RAW:435,DIST_ADJ:18,ACC:123,456,789,FAULT:1"`
	// ISO timestamp from the sensor unit
	Timestamp string `json:"timestamp" example:"2025-09-28T12:00:00Z"`
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Ingest sensor data
// @Description  Accepts one raw telemetry string plus the device timestamp
// @Tags         sensors
// @Accept       json
// @Produce      json
// @Param        body  body   SensorDataInput  true  "Telemetry payload"
// @Success      200   {object}  map[string]interface{}  "reading_id, faults_detected"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/sensor-data [post]
// @Security     BearerAuth
func (h *Handler) postSensorData(c *gin.Context) {
	var input sensorDataInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	ctx := c.Request.Context()
	reading, events, err := h.services.Ingest.Ingest(ctx, input.SensorData, input.Timestamp)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFormat) {
			if h.log != nil {
				h.log.Infow("sensor_data_rejected", "err", err)
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidSensorData})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errProcessSensorData, "sensor_ingest_failed", err)
		return
	}

	faultTypes := make([]string, 0, len(events))
	for _, e := range events {
		faultTypes = append(faultTypes, e.FaultType)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         "Sensor data received and stored",
		"reading_id":      reading.ID,
		"faults_detected": faultTypes,
		"timestamp":       reading.Timestamp.Format(time.RFC3339),
	})
}

// @Summary      Latest sensor reading
// @Tags         sensors
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/sensor-data/latest [get]
// @Security     BearerAuth
func (h *Handler) getLatestReading(c *gin.Context) {
	reading, err := h.services.Readings.Latest(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetLatestReading, "latest_reading_failed", err)
		return
	}
	c.JSON(http.StatusOK, reading)
}

// @Summary      List sensor readings
// @Description  Historical readings, newest first, with pagination and time-range filtering
// @Tags         sensors
// @Produce      json
// @Param        limit       query  int     false  "Page size (default 100, max 1000)"
// @Param        offset      query  int     false  "Offset into the result set"
// @Param        start_date  query  string  false  "Range start (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"
// @Param        end_date    query  string  false  "Range end; date-only treated as end of day"
// @Success      200  {array}   models.SensorReading
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/sensor-data [get]
// @Security     BearerAuth
func (h *Handler) listReadings(c *gin.Context) {
	var (
		filter service.ReadingFilter
		err    error
	)

	filter.Limit = intQuery(c, "limit", 0)
	filter.Offset = intQuery(c, "offset", 0)

	if qs := c.Query("start_date"); qs != "" {
		filter.From, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errStartInvalid})
			return
		}
	}
	if qs := c.Query("end_date"); qs != "" {
		filter.To, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errEndInvalid})
			return
		}
		// If the user didn't include a time component, treat end as end-of-day.
		if isDateOnly(qs) {
			filter.To = filter.To.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}

	// Validate range if both provided
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.From.After(filter.To) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'start_date' must be <= 'end_date'"})
		return
	}

	readings, err := h.services.Readings.List(c.Request.Context(), filter)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListReadings, "readings_list_failed", err,
			"from", filter.From, "to", filter.To)
		return
	}
	c.JSON(http.StatusOK, readings)
}

// intQuery reads an integer query param, falling back to def on absence or
// garbage.
func intQuery(c *gin.Context, name string, def int) int {
	if s := c.Query(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return def
}

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

func parseQueryTime(s string) (time.Time, error) {
	// Try multiple accepted formats, normalizing to UTC.
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
