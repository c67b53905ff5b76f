package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snap-point/social-api/logging"
	"github.com/snap-point/social-api/utils"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags the request with an id and writes one log line per
// request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = logging.GenerateRequestID()
		}
		ctx := logging.ContextWithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, id)

		c.Next()

		status := c.Writer.Status()
		log := logging.Ctx(ctx)
		event := log.Info()
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		}

		event = event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP())
		if user := utils.GetUser(c); user != nil {
			event = event.Uint("user_id", user.ID)
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}
		event.Msg("request")
	}
}
