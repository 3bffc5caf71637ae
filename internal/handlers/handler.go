package handlers

import (
	"net/http"

	"room_climate/internal/logger"
	"room_climate/internal/models"
	"room_climate/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	enabled  map[models.System]bool
	metrics  http.Handler
}

// Option customises a Handler.
type Option func(*Handler)

// WithSystems registers control routes only for the enabled systems.
func WithSystems(cooling, heating, ventilation bool) Option {
	return func(h *Handler) {
		h.enabled = map[models.System]bool{
			models.SystemCooling:     cooling,
			models.SystemHeating:     heating,
			models.SystemVentilation: ventilation,
		}
	}
}

// WithMetrics serves m on /metrics.
func WithMetrics(m http.Handler) Option {
	return func(h *Handler) { h.metrics = m }
}

// NewHandler constructs a new HTTP handler with dependencies.
// All systems are enabled unless WithSystems says otherwise.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{services: services, log: log}
	WithSystems(true, true, true)(h)
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics))
	}

	router.GET("/info", h.getInfo)
	h.registerTemperatureRoutes(router)
	h.registerSystemRoutes(router)

	if h.services.EventLog != nil {
		router.GET("/events", h.getEvents)
	}

	return router
}

func (h *Handler) registerTemperatureRoutes(r *gin.Engine) {
	temperature := r.Group("/temperature")
	{
		temperature.GET("", h.getTemperature)
		temperature.GET("/observe", h.observeTemperature)
	}
}

func (h *Handler) registerSystemRoutes(r *gin.Engine) {
	systems := r.Group("/systems")
	systems.GET("", h.getSystems)

	for _, kind := range []models.ClimateStatus{models.StatusCooling, models.StatusHeating} {
		sys, _ := kind.System()
		if !h.enabled[sys] {
			continue
		}
		handle := h.switchClimate(kind)
		systems.POST("/"+string(sys), handle)
		systems.PUT("/"+string(sys), handle)
	}
	if h.enabled[models.SystemVentilation] {
		systems.POST("/ventilation", h.switchVentilation)
		systems.PUT("/ventilation", h.switchVentilation)
	}
}
