package repositories

import (
	"context"

	"github.com/anonto42/shayari-hub/backend/internal/models"
	"gorm.io/gorm"
)

// toggleEdge removes the edge matched by query if it exists, otherwise inserts
// create and, when notify is non-nil, the notification in the same transaction.
// It reports whether the edge exists afterwards.
func toggleEdge(ctx context.Context, db *gorm.DB, model any, query string, args []any, create any, notify *models.Notification) (bool, error) {
	created := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where(query, args...).Delete(model)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		if err := tx.Create(create).Error; err != nil {
			return err
		}
		created = true

		if notify != nil {
			return tx.Create(notify).Error
		}
		return nil
	})
	if err != nil {
		return false, translate(err)
	}
	return created, nil
}
