package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/fieldvault/internal/metrics"
)

// MetricsServer serves /metrics on its own port, away from the persons API.
type MetricsServer struct {
	listener
	router *gin.Engine
}

// NewMetricsServer creates a metrics server for the provider's registry.
func NewMetricsServer(host string, port int, logger *slog.Logger, metricsProvider *metrics.Provider) *MetricsServer {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/metrics", gin.WrapH(metricsProvider.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	return &MetricsServer{
		listener: newListener("metrics server", host, port, logger),
		router:   router,
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *MetricsServer) GetHandler() http.Handler {
	return s.router
}

// Start serves metrics until Shutdown is called.
func (s *MetricsServer) Start(ctx context.Context) error {
	return s.serve(s.router)
}

// Shutdown gracefully shuts down the metrics server.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.shutdown(ctx)
}
