package webshell

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/labmall/storefront/internal/logging"
)

const requestIDHeader = "X-Request-Id"

// RequestIDMiddleware ensures every request has a stable request ID.
// An incoming X-Request-Id is kept, otherwise a new one is generated. The id
// is echoed back and carried into the request context so that outbound
// storefront calls reuse it.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set("request_id", rid)
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), rid))
		c.Writer.Header().Set(requestIDHeader, rid)

		start := time.Now()
		c.Next()

		logging.NewLogger(c.Request.Context()).
			With("method", c.Request.Method).
			With("path", c.Request.URL.Path).
			With("status", c.Writer.Status()).
			With("latency", time.Since(start).String()).
			LogDebugf("http", "served %s", c.FullPath())
	}
}
