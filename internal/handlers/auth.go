package handlers

import (
	"net/http"
	"time"

	"github.com/anonto42/shayari-hub/backend/internal/auth"
	"github.com/anonto42/shayari-hub/backend/internal/models"
	"github.com/anonto42/shayari-hub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService  services.AuthService
	sessionTTL   time.Duration
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthService, sessionTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, sessionTTL: sessionTTL, secureCookie: secureCookie}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.POST("/signup", h.SignUp, m...)
	g.POST("/signin", h.SignIn, m...)
	g.POST("/signout", h.SignOut, m...)
	g.POST("/firebase-login", h.FirebaseLogin, m...)
}

// SignUp creates a local account and signs it in.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req models.SignUpRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	session, err := h.authService.SignUp(c.Request().Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return h.startSession(c, http.StatusCreated, session)
}

func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SignInRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	session, err := h.authService.SignIn(c.Request().Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return h.startSession(c, http.StatusOK, session)
}

func (h *AuthHandler) SignOut(c echo.Context) error {
	c.SetCookie(auth.ExpiredCookie(h.secureCookie))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// FirebaseLogin exchanges a Firebase ID token for a local session.
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req models.FirebaseLoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	session, err := h.authService.FirebaseLogin(c.Request().Context(), req.IDToken)
	if err != nil {
		return fail(c, err)
	}
	return h.startSession(c, http.StatusOK, session)
}

func (h *AuthHandler) startSession(c echo.Context, status int, session *services.Session) error {
	c.SetCookie(auth.SessionCookie(session.Token, h.sessionTTL, h.secureCookie))
	return c.JSON(status, echo.Map{"success": true, "user": session.User})
}
