package app

import (
	"context"
	"fmt"

	"github.com/anonto42/shayari-hub/backend/internal/auth"
	"github.com/anonto42/shayari-hub/backend/internal/repositories"
	"github.com/anonto42/shayari-hub/backend/internal/services"
	"github.com/anonto42/shayari-hub/backend/pkg/config"
	"github.com/anonto42/shayari-hub/backend/pkg/firebase"
	"go.uber.org/zap"
)

// App is the process-wide object graph, built once from the open stores.
type App struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *config.DB
	Tokens *auth.TokenManager

	Auth          services.AuthService
	Shayaris      services.ShayariService
	Social        services.SocialService
	Listings      services.ListingService
	Users         services.UserService
	Notifications services.NotificationService
	Admin         services.AdminService
	Reconciler    *services.Reconciler

	shayariRepo *repositories.MongoShayariRepository
	cache       *repositories.RedisTrendingCache
}

// New wires repositories and services over db. Firebase and Redis are only
// connected when configured.
func New(ctx context.Context, cfg *config.Config, db *config.DB, logger *zap.Logger) (*App, error) {
	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	shayariRepo := repositories.NewMongoShayariRepository(db.Database)
	commentRepo := repositories.NewPostgresCommentRepository(db.Postgres)
	likeRepo := repositories.NewPostgresLikeRepository(db.Postgres)
	saveRepo := repositories.NewPostgresSaveRepository(db.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(db.Postgres)
	notificationRepo := repositories.NewPostgresNotificationRepository(db.Postgres)
	collectionRepo := repositories.NewMongoCollectionRepository(db.Database)

	cache, err := repositories.NewRedisTrendingCache(cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		return nil, err
	}
	if cfg.RedisURL != "" {
		logger.Info("Trending cache enabled", zap.Duration("ttl", cfg.CacheTTL))
	}

	var verifier services.IDTokenVerifier
	if cfg.FirebaseCredentialsPath != "" {
		fb, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, logger)
		if err != nil {
			_ = cache.Close()
			return nil, fmt.Errorf("failed to initialize Firebase: %w", err)
		}
		verifier = fb
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL)
	hydrator := services.NewHydrator(userRepo, likeRepo, saveRepo)

	return &App{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Tokens: tokens,

		Auth:          services.NewAuthService(userRepo, tokens, verifier, logger),
		Shayaris:      services.NewShayariService(shayariRepo, commentRepo, userRepo, hydrator, logger),
		Social:        services.NewSocialService(shayariRepo, likeRepo, saveRepo, followRepo, commentRepo, userRepo, logger),
		Listings:      services.NewListingService(shayariRepo, saveRepo, followRepo, userRepo, cache, hydrator, logger),
		Users:         services.NewUserService(userRepo, shayariRepo, followRepo, hydrator),
		Notifications: services.NewNotificationService(notificationRepo, userRepo, shayariRepo),
		Admin:         services.NewAdminService(collectionRepo, cfg.AdminUsernames, cfg.AdminCollections),
		Reconciler:    services.NewReconciler(shayariRepo, likeRepo, commentRepo, logger),

		shayariRepo: shayariRepo,
		cache:       cache,
	}, nil
}

// Migrate brings the relational schema and the Mongo indexes up to date.
func (a *App) Migrate(ctx context.Context) error {
	if err := repositories.AutoMigrate(a.DB.Postgres.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	if err := a.shayariRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to create shayari indexes: %w", err)
	}
	a.Logger.Info("Migrations completed")
	return nil
}

// Close releases the cache connection. The stores are closed by their owner.
func (a *App) Close() {
	if err := a.cache.Close(); err != nil {
		a.Logger.Error("Error closing Redis connection", zap.Error(err))
	}
}
