package middleware

import (
	"time"

	"github.com/carpediction/server/internal/pkg/httplog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextKeyRequestID is the gin context key for the per-request id.
const ContextKeyRequestID = "request_id"

// Logger returns a Gin middleware that logs each request using zap. Query
// parameters named in the redaction config are masked before logging; auth
// headers and bodies are never logged at all.
func Logger(log *zap.Logger, red httplog.Redaction) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := uuid.NewString()
		c.Set(ContextKeyRequestID, reqID)

		safeQuery := c.Request.URL.Query()
		changed := false
		for _, param := range red.QueryParams {
			if safeQuery.Has(param) {
				safeQuery.Set(param, "[REDACTED]")
				changed = true
			}
		}
		path := c.Request.URL.Path
		if changed {
			path += "?" + safeQuery.Encode()
		} else if c.Request.URL.RawQuery != "" {
			path += "?" + c.Request.URL.RawQuery
		}

		c.Next()

		log.Info("request",
			zap.String("request_id", reqID),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		)
	}
}
