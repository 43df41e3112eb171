package repositories

import (
	"context"

	"github.com/anonto42/shayari-hub/backend/internal/models"
	"gorm.io/gorm"
)

// SaveRepository defines the interface for saved shayari operations
type SaveRepository interface {
	// ToggleSave reports whether the shayari is saved afterwards.
	ToggleSave(ctx context.Context, userID uint, shayariID string) (bool, error)
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.Save, error)
	SavedShayariIDs(ctx context.Context, userID uint, shayariIDs []string) (map[string]bool, error)
}

// PostgresSaveRepository implements SaveRepository
type PostgresSaveRepository struct {
	db *gorm.DB
}

func NewPostgresSaveRepository(db *gorm.DB) *PostgresSaveRepository {
	return &PostgresSaveRepository{db: db}
}

func (r *PostgresSaveRepository) ToggleSave(ctx context.Context, userID uint, shayariID string) (bool, error) {
	return toggleEdge(ctx, r.db, &models.Save{},
		"user_id = ? AND shayari_id = ?", []any{userID, shayariID},
		&models.Save{UserID: userID, ShayariID: shayariID}, nil)
}

func (r *PostgresSaveRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.Save, error) {
	var saved []models.Save
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Find(&saved).Error
	return saved, err
}

func (r *PostgresSaveRepository) SavedShayariIDs(ctx context.Context, userID uint, shayariIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(shayariIDs) == 0 {
		return result, nil
	}
	var saved []string
	err := r.db.WithContext(ctx).Model(&models.Save{}).
		Where("user_id = ? AND shayari_id IN ?", userID, shayariIDs).
		Pluck("shayari_id", &saved).Error
	if err != nil {
		return nil, err
	}
	for _, id := range saved {
		result[id] = true
	}
	return result, nil
}
