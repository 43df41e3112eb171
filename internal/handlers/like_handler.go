package handlers

import (
	"net/http"

	"github.com/anonto42/shayari-hub/backend/internal/middleware"
	"github.com/anonto42/shayari-hub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles like and save toggles
type LikeHandler struct {
	socialService services.SocialService
}

func NewLikeHandler(socialService services.SocialService) *LikeHandler {
	return &LikeHandler{socialService: socialService}
}

func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.POST("/shayaris/:id/like", h.ToggleLike, m...)
	g.POST("/shayaris/:id/save", h.ToggleSave, m...)
}

// ToggleLike flips the caller's like and returns the new state and likes count.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	state, err := h.socialService.ToggleLike(c.Request().Context(), middleware.Identity(c), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"liked": state.Active, "likes_count": state.Count})
}

func (h *LikeHandler) ToggleSave(c echo.Context) error {
	state, err := h.socialService.ToggleSave(c.Request().Context(), middleware.Identity(c), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"saved": state.Active})
}
