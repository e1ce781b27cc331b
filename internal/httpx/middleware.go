package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	headerRequestID = "X-Request-Id"
	ctxRequestID    = "request_id"
)

// RequestIDMiddleware keeps a caller-supplied X-Request-Id or assigns one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(headerRequestID, id)
		c.Set(ctxRequestID, id)
		c.Next()
	}
}

func RequestID(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}

// LoggingMiddleware logs each request with structured fields.
func LoggingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"request_id", RequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}

// CORS allows the configured origins; a single "*" allows any origin.
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AddAllowHeaders("Authorization", headerRequestID)
	cfg.AddExposeHeaders(headerRequestID)
	return cors.New(cfg)
}

// NotFound answers unknown routes with a JSON body instead of gin's text.
func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "not found")
}
