package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	apiCSP = "default-src 'none'; frame-ancestors 'none'"

	// The explorer page is served with inline bootstrap code and assets from
	// public CDNs.
	explorerCSP = "default-src 'self'; " +
		"script-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net https://unpkg.com; " +
		"style-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net https://unpkg.com; " +
		"img-src 'self' data:; connect-src 'self'; frame-ancestors 'none'"
)

// SecurityHeaders sets defensive response headers. Browser GETs of an
// explorer path get a CSP that lets the GraphiQL page load.
func SecurityHeaders(explorerPaths ...string) echo.MiddlewareFunc {
	explorer := make(map[string]bool, len(explorerPaths))
	for _, p := range explorerPaths {
		explorer[p] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			req := c.Request()

			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("X-XSS-Protection", "0")
			h.Set("Referrer-Policy", "no-referrer")
			h.Set("Cache-Control", "no-store")

			if req.Method == http.MethodGet && explorer[req.URL.Path] &&
				strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMETextHTML) {
				h.Set("Content-Security-Policy", explorerCSP)
			} else {
				h.Set("Content-Security-Policy", apiCSP)
			}

			return next(c)
		}
	}
}
