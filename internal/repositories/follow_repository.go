package repositories

import (
	"context"

	"github.com/anonto42/shayari-hub/backend/internal/models"
	"gorm.io/gorm"
)

// FollowCount is a user together with how many followers they have.
type FollowCount struct {
	UserID uint  `gorm:"column:following_id"`
	Count  int64 `gorm:"column:count"`
}

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	// ToggleFollow reports whether followerID follows followingID afterwards.
	ToggleFollow(ctx context.Context, followerID, followingID uint, notify *models.Notification) (bool, error)
	IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
	GetFollowersCount(ctx context.Context, userID uint) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint) (int64, error)
	GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error)
	// MostFollowed ranks users by follower count, highest first.
	MostFollowed(ctx context.Context, limit int) ([]FollowCount, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

func (r *PostgresFollowRepository) ToggleFollow(ctx context.Context, followerID, followingID uint, notify *models.Notification) (bool, error) {
	return toggleEdge(ctx, r.db, &models.Follower{},
		"follower_id = ? AND following_id = ?", []any{followerID, followingID},
		&models.Follower{FollowerID: followerID, FollowingID: followingID}, notify)
}

func (r *PostgresFollowRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follower{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).Count(&count).Error
	return count > 0, err
}

func (r *PostgresFollowRepository) GetFollowersCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follower{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follower{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Follower{}).Where("follower_id = ?", userID).Pluck("following_id", &ids).Error
	return ids, err
}

func (r *PostgresFollowRepository) MostFollowed(ctx context.Context, limit int) ([]FollowCount, error) {
	var counts []FollowCount
	err := r.db.WithContext(ctx).Model(&models.Follower{}).
		Select("following_id, COUNT(*) AS count").
		Group("following_id").
		Order("count DESC").
		Limit(limit).
		Scan(&counts).Error
	return counts, err
}
