package repositories

import (
	"context"

	"github.com/anonto42/shayari-hub/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	// ToggleLike removes the like if present, else creates it together with
	// notify (when non-nil). It reports whether the shayari is liked afterwards.
	ToggleLike(ctx context.Context, userID uint, shayariID string, notify *models.Notification) (bool, error)
	CountByShayari(ctx context.Context, shayariID string) (int64, error)
	LikedShayariIDs(ctx context.Context, userID uint, shayariIDs []string) (map[string]bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

func (r *PostgresLikeRepository) ToggleLike(ctx context.Context, userID uint, shayariID string, notify *models.Notification) (bool, error) {
	return toggleEdge(ctx, r.db, &models.Like{},
		"user_id = ? AND shayari_id = ?", []any{userID, shayariID},
		&models.Like{UserID: userID, ShayariID: shayariID}, notify)
}

func (r *PostgresLikeRepository) CountByShayari(ctx context.Context, shayariID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("shayari_id = ?", shayariID).Count(&count).Error
	return count, err
}

func (r *PostgresLikeRepository) LikedShayariIDs(ctx context.Context, userID uint, shayariIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(shayariIDs) == 0 {
		return result, nil
	}
	var liked []string
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND shayari_id IN ?", userID, shayariIDs).
		Pluck("shayari_id", &liked).Error
	if err != nil {
		return nil, err
	}
	for _, id := range liked {
		result[id] = true
	}
	return result, nil
}
