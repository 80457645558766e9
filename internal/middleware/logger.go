package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"tripmock/internal/logging"
)

// RequestLogger stores a request-scoped logger in the request context and
// logs one http_request line per request. It must run after RequestID.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqLogger := logger.With(slog.String("request_id", GetRequestID(c)))
		c.Request = c.Request.WithContext(logging.WithLogger(c.Request.Context(), reqLogger))

		c.Next()

		logging.LogHTTPRequest(reqLogger,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			float64(time.Since(start).Microseconds())/1000.0,
			slog.String("client_ip", c.ClientIP()),
		)
	}
}
