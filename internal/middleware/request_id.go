package middleware

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns each request an identifier (honoring an incoming
// X-Request-ID header), echoes it back in the response and emits one
// structured access log line per request.
func RequestID(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			started := time.Now()
			rid := strings.TrimSpace(c.Request().Header.Get(requestIDHeader))
			if rid == "" || len(rid) > 128 {
				rid = uuid.NewString()
			}
			c.Set("request_id", rid)
			c.Response().Header().Set(requestIDHeader, rid)

			err := next(c)

			log.Info().
				Str("request_id", rid).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(started)).
				Str("remote_ip", c.RealIP()).
				Msg("request")
			return err
		}
	}
}
