package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hospital/dashboard/internal/platform/apperr"
)

// RequireLevel checks that the request principal resolves to a staff member
// whose permission level is at least min. Lookup failures are returned as-is.
func RequireLevel(ctx context.Context, min int) error {
	p := FromContext(ctx)
	if p != nil && p.disabled {
		return nil
	}
	if p == nil || p.staffID == "" {
		return fmt.Errorf("%w: no staff identifier supplied", apperr.ErrUnauthenticated)
	}

	id, err := p.Identity(ctx)
	if err != nil {
		return err
	}
	if id == nil {
		return fmt.Errorf("%w: unknown staff identifier", apperr.ErrUnauthenticated)
	}
	if id.Level < min {
		return fmt.Errorf("%w: level %d is below the required %d", apperr.ErrForbidden, id.Level, min)
	}
	return nil
}

// RequireLevelMiddleware returns middleware that rejects requests whose
// principal is below min with 401 or 403.
func RequireLevelMiddleware(min int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := RequireLevel(c.Request().Context(), min)
			switch {
			case err == nil:
				return next(c)
			case errors.Is(err, apperr.ErrUnauthenticated):
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			case errors.Is(err, apperr.ErrForbidden):
				return echo.NewHTTPError(http.StatusForbidden, err.Error())
			default:
				return err
			}
		}
	}
}
