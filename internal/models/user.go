package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	Password    string    `json:"-" gorm:"not null"` // bcrypt hash
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio"`
	AvatarURL   string    `json:"avatar_url"`
	FirebaseUID *string   `json:"-" gorm:"uniqueIndex"` // nil for local accounts
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserCompact is the public author projection attached to shayaris,
// comments and notifications.
type UserCompact struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
	}
}

type SignUpRequest struct {
	Username    string `json:"username" form:"username" validate:"required,min=3,max=30"`
	Email       string `json:"email" form:"email" validate:"required,email"`
	Password    string `json:"password" form:"password" validate:"required,min=6"`
	DisplayName string `json:"display_name" form:"displayName" validate:"omitempty,max=60"`
}

type SignInRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" form:"display_name" validate:"omitempty,max=60"`
	Bio         string `json:"bio" form:"bio" validate:"omitempty,max=300"`
	AvatarURL   string `json:"avatar_url" form:"avatar_url" validate:"omitempty,url"`
}

type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// SessionClaims is the payload of the auth_token cookie.
type SessionClaims struct {
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Profile is a user page: the user, their stats and the viewer's relation to them.
type Profile struct {
	User         *User         `json:"profile"`
	Stats        ProfileStats  `json:"stats"`
	IsFollowing  bool          `json:"is_following"`
	IsOwnProfile bool          `json:"is_own_profile"`
	Shayaris     []ShayariView `json:"shayaris"`
}

type ProfileStats struct {
	Shayaris  int64 `json:"shayaris"`
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// TrendingPoet is a user ranked by follower count on the explore page.
type TrendingPoet struct {
	UserCompact
	Bio            string `json:"bio"`
	FollowersCount int64  `json:"followers_count"`
}
