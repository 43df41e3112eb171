package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	LoginPath = "/auth/login"
	HomePath  = "/feed"
)

// ProtectedPrefixes are the pages that need a session.
var ProtectedPrefixes = []string{"/feed", "/create", "/profile", "/explore", "/saved", "/notifications", "/settings"}

// AuthPrefixes are the pages a signed-in user is sent away from.
var AuthPrefixes = []string{"/auth/login", "/auth/sign-up"}

// RouteGuard redirects guests away from protected pages to the login page and
// signed-in users away from the auth pages to the feed. It must run after Session.
func RouteGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			signedIn := Identity(c) != nil

			if !signedIn && hasPrefix(path, ProtectedPrefixes) {
				return c.Redirect(http.StatusFound, LoginPath)
			}
			if signedIn && hasPrefix(path, AuthPrefixes) {
				return c.Redirect(http.StatusFound, HomePath)
			}
			return next(c)
		}
	}
}

// hasPrefix matches whole path segments, so /feed covers /feed/x but not /feedback.
func hasPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
