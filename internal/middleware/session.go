package middleware

import (
	"net/http"
	"strings"

	"github.com/anonto42/shayari-hub/backend/internal/auth"
	"github.com/labstack/echo/v4"
)

const identityKey = "identity"

// Session resolves the auth_token cookie, or a Bearer token when no cookie is
// sent, into the request identity. Requests without a valid token continue as
// guests; an invalid cookie is cleared.
func Session(tokens *auth.TokenManager, secureCookie bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ""
			fromCookie := false
			if cookie, err := c.Cookie(auth.CookieName); err == nil && cookie.Value != "" {
				token, fromCookie = cookie.Value, true
			} else if header := c.Request().Header.Get("Authorization"); header != "" {
				parts := strings.SplitN(header, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
					token = parts[1]
				}
			}

			if identity := tokens.Resolve(token); identity != nil {
				c.Set(identityKey, identity)
			} else if fromCookie {
				c.SetCookie(auth.ExpiredCookie(secureCookie))
			}
			return next(c)
		}
	}
}

// Identity returns the signed-in caller, or nil for guests.
func Identity(c echo.Context) *auth.Identity {
	identity, _ := c.Get(identityKey).(*auth.Identity)
	return identity
}

// SetIdentity attaches identity to the request.
func SetIdentity(c echo.Context, identity *auth.Identity) {
	c.Set(identityKey, identity)
}

// RequireAuth rejects guests with 401.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Identity(c) == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			return next(c)
		}
	}
}
