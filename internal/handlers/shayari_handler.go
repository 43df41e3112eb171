package handlers

import (
	"net/http"

	"github.com/anonto42/shayari-hub/backend/internal/middleware"
	"github.com/anonto42/shayari-hub/backend/internal/models"
	"github.com/anonto42/shayari-hub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ShayariHandler handles shayari CRUD requests
type ShayariHandler struct {
	shayariService services.ShayariService
}

func NewShayariHandler(shayariService services.ShayariService) *ShayariHandler {
	return &ShayariHandler{shayariService: shayariService}
}

// RegisterPublicRoutes registers the routes guests may call.
func (h *ShayariHandler) RegisterPublicRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.GET("/shayaris/:id", h.GetShayari, m...)
}

// RegisterShayariRoutes registers the routes that need a session; m guards each route.
func (h *ShayariHandler) RegisterShayariRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.POST("/shayaris", h.CreateShayari, m...)
	g.PUT("/shayaris/:id", h.UpdateShayari, m...)
	g.DELETE("/shayaris/:id", h.DeleteShayari, m...)
}

func (h *ShayariHandler) CreateShayari(c echo.Context) error {
	var req models.CreateShayariRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	view, err := h.shayariService.CreateShayari(c.Request().Context(), middleware.Identity(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, view)
}

// GetShayari returns the shayari with its comments.
func (h *ShayariHandler) GetShayari(c echo.Context) error {
	detail, err := h.shayariService.GetShayari(c.Request().Context(), middleware.Identity(c), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *ShayariHandler) UpdateShayari(c echo.Context) error {
	var req models.UpdateShayariRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	view, err := h.shayariService.UpdateShayari(c.Request().Context(), middleware.Identity(c), c.Param("id"), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *ShayariHandler) DeleteShayari(c echo.Context) error {
	if err := h.shayariService.DeleteShayari(c.Request().Context(), middleware.Identity(c), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
