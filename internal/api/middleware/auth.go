package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/smartdoc/smartdoc-api/internal/api/metrics"
	"github.com/smartdoc/smartdoc-api/internal/core/domain"
	"github.com/smartdoc/smartdoc-api/internal/core/ports"
)

// Auth resolves the bearer token to an account through the guard and injects
// it into context. The guard re-checks account status and, for doctors, the
// affiliated hospital's subscription on every request.
func Auth(guard ports.AccessGuard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			account, err := guard.Authenticate(c.Request().Context(), parts[1])
			if err != nil {
				return rejectAuth(err)
			}

			c.Set("account", account)
			c.Set("account_id", account.ID)
			c.Set("role", string(account.Role))

			return next(c)
		}
	}
}

func rejectAuth(err error) error {
	switch {
	case errors.Is(err, domain.ErrSubscriptionInactive):
		metrics.AuthRejectionsTotal.WithLabelValues("subscription_inactive").Inc()
		return echo.NewHTTPError(http.StatusForbidden, "hospital subscription is not active")
	case errors.Is(err, domain.ErrAccountNotActive):
		metrics.AuthRejectionsTotal.WithLabelValues("account_inactive").Inc()
		return echo.NewHTTPError(http.StatusForbidden, "account is not active")
	case errors.Is(err, domain.ErrInvalidToken):
		metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	default:
		return err
	}
}
