package controller

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CanonicalHost redirects www.-prefixed hosts to the bare host with the
// same path and query. It runs before routing.
func CanonicalHost() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			host := ctx.Request().Host
			if !strings.HasPrefix(host, "www.") {
				return next(ctx)
			}
			target := ctx.Scheme() + "://" + strings.TrimPrefix(host, "www.") + ctx.Request().RequestURI
			return ctx.Redirect(http.StatusMovedPermanently, target)
		}
	}
}
