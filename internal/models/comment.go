package models

import "time"

// Comment represents a comment on a shayari
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ShayariID string    `json:"shayari_id" gorm:"size:24;index;not null"` // MongoDB ObjectID hex
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

type CreateCommentRequest struct {
	Content string `json:"content" form:"content" validate:"required,max=500"`
}

type CommentView struct {
	ID        uint        `json:"id"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
	Author    UserCompact `json:"profiles"`
}
