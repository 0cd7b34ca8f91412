package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"
)

// ContextKeyRequestID is where the request id is stashed on the echo context.
const ContextKeyRequestID = "request_id"

// RequestID honors an inbound X-Request-Id header or mints a ULID, and
// echoes the id back on the response.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = ulid.Make().String()
			}

			c.Set(ContextKeyRequestID, id)
			c.Response().Header().Set(echo.HeaderXRequestID, id)

			return next(c)
		}
	}
}

// GetRequestID returns the id set by RequestID, or "" outside it.
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(ContextKeyRequestID).(string)
	return id
}
