package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	HeaderTraceID  = "X-Trace-Id"
	ContextTraceID = "traceID"
)

// TraceID returns Echo middleware that assigns each request a trace ID for
// observability. An incoming X-Trace-Id is honored so IDs propagate across
// the two services; the ID is echoed back in the response header.
func TraceID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(HeaderTraceID)
			if traceID == "" {
				traceID = uuid.NewString()
			}
			c.Set(ContextTraceID, traceID)
			c.Response().Header().Set(HeaderTraceID, traceID)
			return next(c)
		}
	}
}
