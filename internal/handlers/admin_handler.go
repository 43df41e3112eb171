package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/anonto42/shayari-hub/backend/internal/middleware"
	"github.com/anonto42/shayari-hub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AdminHandler exposes the collection console
type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.GET("/db/:collection", h.Find, m...)
	g.POST("/db/:collection", h.Insert, m...)
	g.DELETE("/db/:collection", h.Delete, m...)
	g.PATCH("/db/:collection", h.Set, m...)
}

type consoleRequest struct {
	Doc    json.RawMessage `json:"doc"`
	Filter json.RawMessage `json:"filter"`
	Update json.RawMessage `json:"update"`
}

func (h *AdminHandler) Find(c echo.Context) error {
	docs, err := h.adminService.Find(c.Request().Context(), middleware.Identity(c),
		c.Param("collection"), c.QueryParam("filter"), c.QueryParam("fields"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, docs)
}

// Insert accepts {"doc": {...}} or {"doc": [{...}, ...]}.
func (h *AdminHandler) Insert(c echo.Context) error {
	var req consoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	ids, err := h.adminService.Insert(c.Request().Context(), middleware.Identity(c), c.Param("collection"), req.Doc)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"insertedCount": len(ids), "insertedIds": ids})
}

func (h *AdminHandler) Delete(c echo.Context) error {
	var req consoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	n, err := h.adminService.Delete(c.Request().Context(), middleware.Identity(c), c.Param("collection"), req.Filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deletedCount": n})
}

func (h *AdminHandler) Set(c echo.Context) error {
	var req consoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	n, err := h.adminService.Set(c.Request().Context(), middleware.Identity(c), c.Param("collection"), req.Filter, req.Update)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"modifiedCount": n})
}
