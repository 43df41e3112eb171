package models

import "time"

// Like is the edge between a user and a shayari they liked.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_like_user_shayari"`
	ShayariID string    `json:"shayari_id" gorm:"size:24;index;uniqueIndex:idx_like_user_shayari"`
	CreatedAt time.Time `json:"created_at"`
}
