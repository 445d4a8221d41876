package auth

import (
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	// StaffIDHeader carries the staff identifier stored by the dashboard session.
	StaffIDHeader = "X-Staff-ID"
	// StaffIDParam is the query parameter form used by shared dashboard links.
	StaffIDParam = "staffId"
)

// StaffIdentity attaches a lazily-resolved Principal to every request. The
// header wins over the query parameter. A request without an identifier is
// not rejected here; restricted fields fail their own level check instead.
func StaffIdentity(resolver Resolver, disabled bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			staffID := strings.TrimSpace(c.Request().Header.Get(StaffIDHeader))
			if staffID == "" {
				staffID = strings.TrimSpace(c.QueryParam(StaffIDParam))
			}

			p := NewPrincipal(staffID, resolver, disabled)
			req := c.Request()
			c.SetRequest(req.WithContext(WithPrincipal(req.Context(), p)))
			if staffID != "" {
				c.Set("staff_id", staffID)
			}
			return next(c)
		}
	}
}
