package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shayari is a short verse post stored in MongoDB. LikesCount and
// CommentsCount are caches of the relational like and comment rows.
type Shayari struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID        uint               `json:"user_id" bson:"user_id"`
	Content       string             `json:"content" bson:"content"`
	Mood          string             `json:"mood" bson:"mood"`
	Language      string             `json:"language" bson:"language"`
	LikesCount    int64              `json:"likes_count" bson:"likes_count"`
	CommentsCount int64              `json:"comments_count" bson:"comments_count"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

var Moods = []string{
	"romantic", "sad", "inspirational", "philosophical",
	"funny", "patriotic", "spiritual", "nature",
}

var Languages = []string{"hindi", "urdu", "english", "punjabi"}

const DefaultLanguage = "hindi"

func IsMood(s string) bool     { return contains(Moods, s) }
func IsLanguage(s string) bool { return contains(Languages, s) }

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

type CreateShayariRequest struct {
	Content  string `json:"content" form:"content" validate:"required,max=2000"`
	Mood     string `json:"mood" form:"mood" validate:"required,mood"`
	Language string `json:"language" form:"language" validate:"omitempty,language"`
}

type UpdateShayariRequest struct {
	Content  string `json:"content" form:"content" validate:"required,max=2000"`
	Mood     string `json:"mood" form:"mood" validate:"required,mood"`
	Language string `json:"language" form:"language" validate:"omitempty,language"`
}

// ExploreFilter narrows the explore listing. Empty fields do not filter.
type ExploreFilter struct {
	Mood     string `query:"mood"`
	Language string `query:"language"`
	Query    string `query:"q"`
}

// ShayariView is a shayari hydrated for one viewer.
type ShayariView struct {
	ID            string      `json:"id"`
	UserID        uint        `json:"user_id"`
	Content       string      `json:"content"`
	Mood          string      `json:"mood"`
	Language      string      `json:"language"`
	LikesCount    int64       `json:"likes_count"`
	CommentsCount int64       `json:"comments_count"`
	CreatedAt     time.Time   `json:"created_at"`
	Author        UserCompact `json:"profiles"`
	IsLiked       bool        `json:"is_liked"`
	IsSaved       bool        `json:"is_saved"`
}

// ShayariDetail is the single-shayari page: the shayari and its comments oldest first.
type ShayariDetail struct {
	Shayari  ShayariView   `json:"shayari"`
	Comments []CommentView `json:"comments"`
}

// ExplorePage is the filtered listing plus the most followed poets.
type ExplorePage struct {
	Shayaris      []ShayariView  `json:"shayaris"`
	TrendingPoets []TrendingPoet `json:"trending_poets"`
}

// ToggleState is the outcome of a like, save or follow toggle. Count is the
// likes count for likes, the target's followers for follows, and zero for saves.
type ToggleState struct {
	Active bool  `json:"active"`
	Count  int64 `json:"count"`
}
