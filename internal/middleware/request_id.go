package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/shinyyama/teamchat-backend/internal/reqctx"
)

// RequestContext copies the echo request id into the request context so
// services can correlate their logs. Must run after middleware.RequestID.
func RequestContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		if rid != "" {
			c.SetRequest(c.Request().WithContext(reqctx.WithRID(c.Request().Context(), rid)))
		}
		return next(c)
	}
}
