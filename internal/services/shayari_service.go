package services

import (
	"context"
	"strings"

	"github.com/anonto42/shayari-hub/backend/internal/auth"
	"github.com/anonto42/shayari-hub/backend/internal/models"
	"github.com/anonto42/shayari-hub/backend/internal/repositories"
	"go.uber.org/zap"
)

// ListingLimit caps every listing.
const ListingLimit = 50

type ShayariService interface {
	CreateShayari(ctx context.Context, viewer *auth.Identity, req models.CreateShayariRequest) (*models.ShayariView, error)
	UpdateShayari(ctx context.Context, viewer *auth.Identity, id string, req models.UpdateShayariRequest) (*models.ShayariView, error)
	DeleteShayari(ctx context.Context, viewer *auth.Identity, id string) error
	GetShayari(ctx context.Context, viewer *auth.Identity, id string) (*models.ShayariDetail, error)
}

type shayariService struct {
	shayaris repositories.ShayariRepository
	comments repositories.CommentRepository
	users    repositories.UserRepository
	hydrator *Hydrator
	logger   *zap.Logger
}

func NewShayariService(
	shayaris repositories.ShayariRepository,
	comments repositories.CommentRepository,
	users repositories.UserRepository,
	hydrator *Hydrator,
	logger *zap.Logger,
) ShayariService {
	return &shayariService{
		shayaris: shayaris,
		comments: comments,
		users:    users,
		hydrator: hydrator,
		logger:   logger,
	}
}

func (s *shayariService) CreateShayari(ctx context.Context, viewer *auth.Identity, req models.CreateShayariRequest) (*models.ShayariView, error) {
	if viewer == nil {
		return nil, errNotSignedIn
	}
	content, mood, language, err := normalizeShayari(req.Content, req.Mood, req.Language)
	if err != nil {
		return nil, err
	}

	shayari := &models.Shayari{
		UserID:   viewer.ID,
		Content:  content,
		Mood:     mood,
		Language: language,
	}
	if err := s.shayaris.CreateShayari(ctx, shayari); err != nil {
		return nil, storeError("create shayari", err)
	}
	s.logger.Debug("shayari created", zap.String("shayari_id", shayari.ID.Hex()), zap.Uint("user_id", viewer.ID))

	return s.hydrator.HydrateOne(ctx, viewer, shayari)
}

func (s *shayariService) UpdateShayari(ctx context.Context, viewer *auth.Identity, id string, req models.UpdateShayariRequest) (*models.ShayariView, error) {
	if viewer == nil {
		return nil, errNotSignedIn
	}
	content, mood, language, err := normalizeShayari(req.Content, req.Mood, req.Language)
	if err != nil {
		return nil, err
	}

	shayari, err := s.ownedShayari(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	shayari.Content = content
	shayari.Mood = mood
	shayari.Language = language
	if err := s.shayaris.UpdateShayari(ctx, shayari); err != nil {
		return nil, storeError("update shayari", err)
	}

	return s.hydrator.HydrateOne(ctx, viewer, shayari)
}

// DeleteShayari removes the shayari and then its comments, likes and saves.
func (s *shayariService) DeleteShayari(ctx context.Context, viewer *auth.Identity, id string) error {
	if viewer == nil {
		return errNotSignedIn
	}
	shayari, err := s.ownedShayari(ctx, viewer, id)
	if err != nil {
		return err
	}

	hexID := shayari.ID.Hex()
	if err := s.shayaris.DeleteShayari(ctx, hexID); err != nil {
		return storeError("delete shayari", err)
	}
	if err := s.comments.DeleteShayariDependents(ctx, hexID); err != nil {
		return storeError("delete shayari dependents", err)
	}
	s.logger.Info("shayari deleted", zap.String("shayari_id", hexID), zap.Uint("user_id", viewer.ID))
	return nil
}

func (s *shayariService) GetShayari(ctx context.Context, viewer *auth.Identity, id string) (*models.ShayariDetail, error) {
	shayari, err := s.shayaris.GetShayariByID(ctx, id)
	if err != nil {
		return nil, storeError("get shayari", err)
	}

	view, err := s.hydrator.HydrateOne(ctx, viewer, shayari)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.GetCommentsByShayariID(ctx, id)
	if err != nil {
		return nil, storeError("list comments", err)
	}
	commentViews, err := s.commentViews(ctx, comments)
	if err != nil {
		return nil, err
	}

	return &models.ShayariDetail{Shayari: *view, Comments: commentViews}, nil
}

func (s *shayariService) commentViews(ctx context.Context, comments []models.Comment) ([]models.CommentView, error) {
	views := make([]models.CommentView, 0, len(comments))
	if len(comments) == 0 {
		return views, nil
	}

	authors, err := compactUsers(ctx, s.users, userIDsOf(comments, func(c models.Comment) uint { return c.UserID }))
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		views = append(views, models.CommentView{
			ID:        c.ID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			Author:    authorOrID(authors, c.UserID),
		})
	}
	return views, nil
}

// ownedShayari loads id and checks that viewer wrote it.
func (s *shayariService) ownedShayari(ctx context.Context, viewer *auth.Identity, id string) (*models.Shayari, error) {
	shayari, err := s.shayaris.GetShayariByID(ctx, id)
	if err != nil {
		return nil, storeError("get shayari", err)
	}
	if shayari.UserID != viewer.ID {
		return nil, unauthorized("Unauthorized")
	}
	return shayari, nil
}

// normalizeShayari trims the content and checks mood and language, defaulting
// an empty language.
func normalizeShayari(content, mood, language string) (string, string, string, error) {
	content = strings.TrimSpace(content)
	mood = strings.ToLower(strings.TrimSpace(mood))
	language = strings.ToLower(strings.TrimSpace(language))

	if content == "" || mood == "" {
		return "", "", "", invalid("Missing required fields")
	}
	if !models.IsMood(mood) {
		return "", "", "", invalid("Unknown mood: " + mood)
	}
	if language == "" {
		language = models.DefaultLanguage
	}
	if !models.IsLanguage(language) {
		return "", "", "", invalid("Unknown language: " + language)
	}
	return content, mood, language, nil
}

// compactUsers loads the public projections of ids keyed by user id.
func compactUsers(ctx context.Context, users repositories.UserRepository, ids []uint) (map[uint]models.UserCompact, error) {
	out := make(map[uint]models.UserCompact, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	found, err := users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, storeError("load users", err)
	}
	for i := range found {
		out[found[i].ID] = found[i].ToCompact()
	}
	return out, nil
}

func authorOrID(authors map[uint]models.UserCompact, id uint) models.UserCompact {
	if author, ok := authors[id]; ok {
		return author
	}
	return models.UserCompact{ID: id}
}

// userIDsOf collects the distinct user ids of items.
func userIDsOf[T any](items []T, id func(T) uint) []uint {
	seen := make(map[uint]bool, len(items))
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if uid := id(item); !seen[uid] {
			seen[uid] = true
			ids = append(ids, uid)
		}
	}
	return ids
}
