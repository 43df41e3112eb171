package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/shayari-hub/backend/internal/middleware"
	"github.com/anonto42/shayari-hub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow toggles
type FollowHandler struct {
	socialService services.SocialService
}

func NewFollowHandler(socialService services.SocialService) *FollowHandler {
	return &FollowHandler{socialService: socialService}
}

func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.POST("/users/:id/follow", h.ToggleFollow, m...)
}

func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || targetID == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}

	state, err := h.socialService.ToggleFollow(c.Request().Context(), middleware.Identity(c), uint(targetID))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"following": state.Active, "followers_count": state.Count})
}
