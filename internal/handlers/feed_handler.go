package handlers

import (
	"net/http"

	"github.com/anonto42/shayari-hub/backend/internal/middleware"
	"github.com/anonto42/shayari-hub/backend/internal/models"
	"github.com/anonto42/shayari-hub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the listing pages
type FeedHandler struct {
	listingService services.ListingService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(listingService services.ListingService) *FeedHandler {
	return &FeedHandler{listingService: listingService}
}

// RegisterPublicRoutes registers the listings guests may read.
func (h *FeedHandler) RegisterPublicRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.GET("/feed", h.GetFeed, m...)
	g.GET("/explore", h.Explore, m...)
	g.GET("/trending", h.TrendingPoets, m...)
}

func (h *FeedHandler) RegisterSavedRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.GET("/saved", h.GetSaved, m...)
}

func (h *FeedHandler) GetFeed(c echo.Context) error {
	views, err := h.listingService.Feed(c.Request().Context(), middleware.Identity(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"shayaris": views})
}

// Explore filters by mood, language and a content search term q.
func (h *FeedHandler) Explore(c echo.Context) error {
	var filter models.ExploreFilter
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &filter); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	page, err := h.listingService.Explore(c.Request().Context(), middleware.Identity(c), filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *FeedHandler) TrendingPoets(c echo.Context) error {
	poets, err := h.listingService.TrendingPoets(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"poets": poets})
}

func (h *FeedHandler) GetSaved(c echo.Context) error {
	views, err := h.listingService.Saved(c.Request().Context(), middleware.Identity(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"shayaris": views})
}
