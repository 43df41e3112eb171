package handlers

import (
	"net/http"

	"github.com/anonto42/shayari-hub/backend/internal/middleware"
	"github.com/anonto42/shayari-hub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.GET("/notifications", h.GetNotifications, m...)
	g.GET("/notifications/unread-count", h.GetUnreadCount, m...)
}

// GetNotifications lists the newest notifications and marks them read.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	views, err := h.notificationService.ListNotifications(c.Request().Context(), middleware.Identity(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"notifications": views})
}

func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notificationService.UnreadCount(c.Request().Context(), middleware.Identity(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"unread_count": count})
}
