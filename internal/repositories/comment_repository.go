package repositories

import (
	"context"

	"github.com/anonto42/shayari-hub/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	// CreateComment inserts the comment and, when non-nil, notify in one transaction.
	CreateComment(ctx context.Context, comment *models.Comment, notify *models.Notification) error
	GetCommentsByShayariID(ctx context.Context, shayariID string) ([]models.Comment, error)
	CountByShayari(ctx context.Context, shayariID string) (int64, error)
	// DeleteShayariDependents removes the comments, likes and saves of a shayari.
	DeleteShayariDependents(ctx context.Context, shayariID string) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment, notify *models.Notification) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if notify != nil {
			return tx.Create(notify).Error
		}
		return nil
	})
	return translate(err)
}

// GetCommentsByShayariID returns the comments oldest first.
func (r *PostgresCommentRepository) GetCommentsByShayariID(ctx context.Context, shayariID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).Where("shayari_id = ?", shayariID).
		Order("created_at ASC, id ASC").Find(&comments).Error
	return comments, err
}

func (r *PostgresCommentRepository) CountByShayari(ctx context.Context, shayariID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("shayari_id = ?", shayariID).Count(&count).Error
	return count, err
}

func (r *PostgresCommentRepository) DeleteShayariDependents(ctx context.Context, shayariID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.Comment{}, &models.Like{}, &models.Save{}} {
			if err := tx.Where("shayari_id = ?", shayariID).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
