package handlers

import (
	"net/http"

	"github.com/anonto42/shayari-hub/backend/internal/middleware"
	"github.com/anonto42/shayari-hub/backend/internal/models"
	"github.com/anonto42/shayari-hub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles profile requests
type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterPublicRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.GET("/profiles/:username", h.GetProfile, m...)
}

func (h *UserHandler) RegisterProfileRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.GET("/me", h.GetMe, m...)
	g.PUT("/me", h.UpdateProfile, m...)
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	profile, err := h.userService.GetProfile(c.Request().Context(), middleware.Identity(c), c.Param("username"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) GetMe(c echo.Context) error {
	user, err := h.userService.GetMe(c.Request().Context(), middleware.Identity(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), middleware.Identity(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Profile updated", "user": user})
}
