package handlers

import (
	"net/http"

	"github.com/anonto42/shayari-hub/backend/internal/middleware"
	"github.com/anonto42/shayari-hub/backend/internal/models"
	"github.com/anonto42/shayari-hub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles comment-related HTTP requests
type CommentHandler struct {
	socialService services.SocialService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(socialService services.SocialService) *CommentHandler {
	return &CommentHandler{socialService: socialService}
}

func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.POST("/shayaris/:id/comments", h.CreateComment, m...)
}

func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	comment, err := h.socialService.AddComment(c.Request().Context(), middleware.Identity(c), c.Param("id"), req.Content)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}
