package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
	"github.com/smartdoc/smartdoc-api/internal/core/ports"
)

// ctxActor extracts the authenticated actor injected by the Auth middleware
// and performs a fast-fail check before any service call: both the account id
// and a known role must be present, proving the middleware ran.
func ctxActor(c echo.Context) (ports.Actor, error) {
	id, _ := c.Get("account_id").(string)
	role, _ := c.Get("role").(string)
	if id == "" || !domain.Role(role).Valid() {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Actor{ID: id, Role: domain.Role(role)}, nil
}
