package handlers

import (
	"itms_backend/internal/logger"
	"itms_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.corsMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Open endpoints
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Live dashboard stream (HTTP upgrade) — same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerSensorRoutes(api)
		h.registerFaultRoutes(api)
		h.registerDashboardRoutes(api)
	}
}

func (h *Handler) registerSensorRoutes(api *gin.RouterGroup) {
	sensors := api.Group("/sensor-data")
	{
		sensors.POST("", h.postSensorData)
		sensors.GET("", h.listReadings)
		sensors.GET("/latest", h.getLatestReading)
	}
}

func (h *Handler) registerFaultRoutes(api *gin.RouterGroup) {
	faults := api.Group("/faults")
	{
		faults.GET("", h.getFaults)
		faults.PUT("/:id/resolve", h.resolveFault)
	}
}

func (h *Handler) registerDashboardRoutes(api *gin.RouterGroup) {
	api.GET("/stats", h.getStats)
	api.GET("/dashboard", h.getDashboard)
	api.GET("/export", h.exportCSV)
	api.GET("/export/xlsx", h.exportXLSX)
}
