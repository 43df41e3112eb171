package router

import (
	"github.com/anonto42/shayari-hub/backend/internal/app"
	"github.com/anonto42/shayari-hub/backend/internal/handlers"
	"github.com/anonto42/shayari-hub/backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// SetupRoutes configures all application routes. Every request passes the
// session resolver first; the route guard then handles the page paths.
func SetupRoutes(e *echo.Echo, a *app.App) {
	e.Use(middleware.Session(a.Tokens, a.Config.IsProduction()))
	e.Use(middleware.RouteGuard())

	e.GET("/health", handlers.HealthCheck)

	authHandler := handlers.NewAuthHandler(a.Auth, a.Tokens.TTL(), a.Config.IsProduction())
	shayariHandler := handlers.NewShayariHandler(a.Shayaris)
	likeHandler := handlers.NewLikeHandler(a.Social)
	commentHandler := handlers.NewCommentHandler(a.Social)
	followHandler := handlers.NewFollowHandler(a.Social)
	feedHandler := handlers.NewFeedHandler(a.Listings)
	userHandler := handlers.NewUserHandler(a.Users)
	notificationHandler := handlers.NewNotificationHandler(a.Notifications)
	adminHandler := handlers.NewAdminHandler(a.Admin)

	authHandler.RegisterAuthRoutes(e.Group("/api/v1/auth"))

	// Guests may read the public routes; flags are filled in when a session
	// is present. The rest carry RequireAuth per route, so unknown paths
	// under /api/v1 stay 404.
	api := e.Group("/api/v1")
	feedHandler.RegisterPublicRoutes(api)
	shayariHandler.RegisterPublicRoutes(api)
	userHandler.RegisterPublicRoutes(api)

	requireAuth := middleware.RequireAuth()
	shayariHandler.RegisterShayariRoutes(api, requireAuth)
	likeHandler.RegisterLikeRoutes(api, requireAuth)
	commentHandler.RegisterCommentRoutes(api, requireAuth)
	followHandler.RegisterFollowRoutes(api, requireAuth)
	feedHandler.RegisterSavedRoutes(api, requireAuth)
	userHandler.RegisterProfileRoutes(api, requireAuth)
	notificationHandler.RegisterNotificationRoutes(api, requireAuth)
	adminHandler.RegisterAdminRoutes(e.Group("/api/v1/admin"), requireAuth)

	a.Logger.Info("All routes configured.")
}
