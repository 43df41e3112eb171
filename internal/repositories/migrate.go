package repositories

import (
	"github.com/anonto42/shayari-hub/backend/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the relational tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Comment{},
		&models.Like{},
		&models.Save{},
		&models.Follower{},
		&models.Notification{},
	)
}
