package web

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rshade/holocron/internal/logging"
)

// HeaderRequestID carries the trace ID in requests and responses.
const HeaderRequestID = "X-Request-ID"

// CORSMiddleware allows GET requests from origins. "*" allows every origin.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:  []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Cache-Control", HeaderRequestID},
		ExposeHeaders: []string{"Content-Type", HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}

	return cors.New(config)
}

// RequestLogger attaches a trace ID and a request-scoped logger to each request and
// logs the outcome once the handler chain returns.
func RequestLogger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		traceID := c.GetHeader(HeaderRequestID)
		if traceID == "" {
			traceID = logging.NewID()
		}
		c.Header(HeaderRequestID, traceID)

		reqLogger := base.With().Str("trace_id", traceID).Logger()
		ctx := logging.ContextWithTraceID(c.Request.Context(), traceID)
		ctx = base.WithContext(ctx)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		evt := reqLogger.Info()
		switch {
		case status >= 500:
			evt = reqLogger.Error()
		case status >= 400:
			evt = reqLogger.Warn()
		}
		evt.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Str("client_ip", c.ClientIP()).
			Dur("latency_ms", time.Since(start)).
			Msg("request completed")
	}
}
