package models

import "time"

// Save represents a bookmarked shayari
type Save struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_save_user_shayari"`
	ShayariID string    `json:"shayari_id" gorm:"size:24;index;uniqueIndex:idx_save_user_shayari"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
