package config

import (
	"log/slog"
	"time"

	"capster-board/metrics"
	"capster-board/utils"

	"github.com/gin-gonic/gin"
)

const slowRequest = 200 * time.Millisecond

func PerformanceLogger(logger *slog.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		m.ObserveRequest(c.Request.Method, route, status, latency.Seconds())

		attrs := []any{
			"request_id", utils.RequestIDFrom(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", latency.Milliseconds(),
		}
		if latency > slowRequest {
			logger.Warn("slow request", attrs...)
			return
		}
		logger.Info("http request", attrs...)
	}
}

// Recovery turns a panic into the generic 500 body and logs the cause.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			"request_id", utils.RequestIDFrom(c),
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		utils.RespondWithError(c, 500, "internal server error")
	})
}
