package models

import "time"

type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationFollow  NotificationType = "follow"
)

// Notification represents a user notification (PostgreSQL)
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	RecipientID uint             `json:"user_id" gorm:"index"`
	ActorID     uint             `json:"actor_id" gorm:"index"`
	Type        NotificationType `json:"type" gorm:"size:20"`
	ShayariID   *string          `json:"shayari_id" gorm:"size:24"` // nil for follows
	IsRead      bool             `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time        `json:"created_at" gorm:"index"`
}

// ShayariSnippet is the shayari excerpt shown next to a notification.
type ShayariSnippet struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

type NotificationView struct {
	ID        uint             `json:"id"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
	Actor     UserCompact      `json:"actor"`
	Shayari   *ShayariSnippet  `json:"shayari"`
}
