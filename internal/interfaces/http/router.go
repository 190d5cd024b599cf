// Package http serves the descriptor registry and in-memory batch
// computation over a JSON API, together with probes and Prometheus metrics.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/KeyIP-Descriptors/internal/interfaces/http/handlers"
	"github.com/turtacn/KeyIP-Descriptors/internal/interfaces/http/middleware"
	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

// RouterConfig holds the handlers and middleware settings of the router.
// Nil handlers leave their routes unregistered.
type RouterConfig struct {
	// Mode is the gin mode: "debug", "release" or "test". Empty keeps the
	// current mode.
	Mode string

	Logger         logging.Logger
	Metrics        *prometheus.AppMetrics
	MetricsHandler http.Handler
	Logging        middleware.LoggingConfig

	Health      *handlers.HealthHandler
	Descriptors *handlers.DescriptorHandler
}

// NewRouter builds the gin engine.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Metrics(cfg.Metrics),
		middleware.RequestLogging(logger.Named("http"), cfg.Logging),
		middleware.Recovery(logger.Named("http")),
	)

	if cfg.Health != nil {
		r.GET("/healthz", cfg.Health.Liveness)
		r.GET("/readyz", cfg.Health.Readiness)
	}
	if cfg.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	if cfg.Descriptors != nil {
		v1 := r.Group("/api/v1")
		v1.GET("/descriptors", cfg.Descriptors.List)
		v1.POST("/descriptors/compute", cfg.Descriptors.Compute)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.ErrorResponse{
			Code:      errors.ErrCodeNotFound.String(),
			Message:   "route not found",
			Detail:    c.Request.Method + " " + c.Request.URL.Path,
			RequestID: middleware.GetRequestID(c),
		})
	})
	return r
}

//Personal.AI order the ending
