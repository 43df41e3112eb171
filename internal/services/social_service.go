package services

import (
	"context"
	"strings"

	"github.com/anonto42/shayari-hub/backend/internal/auth"
	"github.com/anonto42/shayari-hub/backend/internal/models"
	"github.com/anonto42/shayari-hub/backend/internal/repositories"
	"go.uber.org/zap"
)

// SocialService holds the toggle actions and commenting.
type SocialService interface {
	ToggleLike(ctx context.Context, viewer *auth.Identity, shayariID string) (*models.ToggleState, error)
	ToggleSave(ctx context.Context, viewer *auth.Identity, shayariID string) (*models.ToggleState, error)
	ToggleFollow(ctx context.Context, viewer *auth.Identity, targetID uint) (*models.ToggleState, error)
	AddComment(ctx context.Context, viewer *auth.Identity, shayariID, content string) (*models.CommentView, error)
}

type socialService struct {
	shayaris repositories.ShayariRepository
	likes    repositories.LikeRepository
	saves    repositories.SaveRepository
	follows  repositories.FollowRepository
	comments repositories.CommentRepository
	users    repositories.UserRepository
	logger   *zap.Logger
}

func NewSocialService(
	shayaris repositories.ShayariRepository,
	likes repositories.LikeRepository,
	saves repositories.SaveRepository,
	follows repositories.FollowRepository,
	comments repositories.CommentRepository,
	users repositories.UserRepository,
	logger *zap.Logger,
) SocialService {
	return &socialService{
		shayaris: shayaris,
		likes:    likes,
		saves:    saves,
		follows:  follows,
		comments: comments,
		users:    users,
		logger:   logger,
	}
}

func (s *socialService) ToggleLike(ctx context.Context, viewer *auth.Identity, shayariID string) (*models.ToggleState, error) {
	if viewer == nil {
		return nil, errNotSignedIn
	}
	shayari, err := s.shayaris.GetShayariByID(ctx, shayariID)
	if err != nil {
		return nil, storeError("get shayari", err)
	}
	id := shayari.ID.Hex()

	var notify *models.Notification
	if shayari.UserID != viewer.ID {
		notify = &models.Notification{
			RecipientID: shayari.UserID,
			ActorID:     viewer.ID,
			Type:        models.NotificationLike,
			ShayariID:   &id,
		}
	}

	liked, err := s.likes.ToggleLike(ctx, viewer.ID, id, notify)
	if err != nil {
		return nil, storeError("toggle like", err)
	}

	count, err := s.likes.CountByShayari(ctx, id)
	if err != nil {
		return nil, storeError("count likes", err)
	}
	if err := s.shayaris.SetLikesCount(ctx, id, count); err != nil {
		s.logger.Warn("likes counter not updated", zap.String("shayari_id", id), zap.Error(err))
	}

	return &models.ToggleState{Active: liked, Count: count}, nil
}

func (s *socialService) ToggleSave(ctx context.Context, viewer *auth.Identity, shayariID string) (*models.ToggleState, error) {
	if viewer == nil {
		return nil, errNotSignedIn
	}
	shayari, err := s.shayaris.GetShayariByID(ctx, shayariID)
	if err != nil {
		return nil, storeError("get shayari", err)
	}

	saved, err := s.saves.ToggleSave(ctx, viewer.ID, shayari.ID.Hex())
	if err != nil {
		return nil, storeError("toggle save", err)
	}
	return &models.ToggleState{Active: saved}, nil
}

func (s *socialService) ToggleFollow(ctx context.Context, viewer *auth.Identity, targetID uint) (*models.ToggleState, error) {
	if viewer == nil {
		return nil, errNotSignedIn
	}
	if viewer.ID == targetID {
		return nil, invalid("Cannot follow self")
	}
	if _, err := s.users.GetUserByID(ctx, targetID); err != nil {
		return nil, storeError("get user", err)
	}

	notify := &models.Notification{
		RecipientID: targetID,
		ActorID:     viewer.ID,
		Type:        models.NotificationFollow,
	}
	following, err := s.follows.ToggleFollow(ctx, viewer.ID, targetID, notify)
	if err != nil {
		return nil, storeError("toggle follow", err)
	}

	followers, err := s.follows.GetFollowersCount(ctx, targetID)
	if err != nil {
		return nil, storeError("count followers", err)
	}
	return &models.ToggleState{Active: following, Count: followers}, nil
}

func (s *socialService) AddComment(ctx context.Context, viewer *auth.Identity, shayariID, content string) (*models.CommentView, error) {
	if viewer == nil {
		return nil, errNotSignedIn
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("Empty comment")
	}

	shayari, err := s.shayaris.GetShayariByID(ctx, shayariID)
	if err != nil {
		return nil, storeError("get shayari", err)
	}
	id := shayari.ID.Hex()

	var notify *models.Notification
	if shayari.UserID != viewer.ID {
		notify = &models.Notification{
			RecipientID: shayari.UserID,
			ActorID:     viewer.ID,
			Type:        models.NotificationComment,
			ShayariID:   &id,
		}
	}

	comment := &models.Comment{ShayariID: id, UserID: viewer.ID, Content: content}
	if err := s.comments.CreateComment(ctx, comment, notify); err != nil {
		return nil, storeError("create comment", err)
	}

	count, err := s.comments.CountByShayari(ctx, id)
	if err != nil {
		return nil, storeError("count comments", err)
	}
	if err := s.shayaris.SetCommentsCount(ctx, id, count); err != nil {
		s.logger.Warn("comments counter not updated", zap.String("shayari_id", id), zap.Error(err))
	}

	author := models.UserCompact{ID: viewer.ID, Username: viewer.Username}
	if user, err := s.users.GetUserByID(ctx, viewer.ID); err == nil {
		author = user.ToCompact()
	}
	return &models.CommentView{
		ID:        comment.ID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		Author:    author,
	}, nil
}
