package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rshade/planetprint/internal/logging"
)

// RequestIDHeader carries the trace ID of a request in both directions.
const RequestIDHeader = "X-Request-ID"

// requestLogger attaches a trace-tagged logger to the request context and
// logs one line per request.
func requestLogger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		traceID := c.GetHeader(RequestIDHeader)
		if traceID == "" {
			traceID = logging.NewTraceID()
		}
		ctx := logging.ContextWithTraceID(c.Request.Context(), traceID)
		ctx = base.WithContext(ctx)
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, traceID)

		c.Next()

		status := c.Writer.Status()
		event := base.Info()
		switch {
		case status >= 500:
			event = base.Error()
		case status >= 400:
			event = base.Warn()
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}
		event.Ctx(ctx).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("route", c.FullPath()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	}
}

// instrument records the request duration histogram.
func instrument(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestDuration.
			WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
