package services

import (
	"context"

	"github.com/anonto42/shayari-hub/backend/internal/auth"
	"github.com/anonto42/shayari-hub/backend/internal/models"
	"github.com/anonto42/shayari-hub/backend/internal/repositories"
	"golang.org/x/sync/errgroup"
)

// Hydrator turns stored shayaris into views for one viewer.
type Hydrator struct {
	users repositories.UserRepository
	likes repositories.LikeRepository
	saves repositories.SaveRepository
}

func NewHydrator(users repositories.UserRepository, likes repositories.LikeRepository, saves repositories.SaveRepository) *Hydrator {
	return &Hydrator{users: users, likes: likes, saves: saves}
}

// Hydrate attaches author projections and, for a signed-in viewer, the
// is_liked/is_saved flags. Output order matches input order. Authors that no
// longer exist are reduced to their id.
func (h *Hydrator) Hydrate(ctx context.Context, viewer *auth.Identity, shayaris []models.Shayari) ([]models.ShayariView, error) {
	views := make([]models.ShayariView, 0, len(shayaris))
	if len(shayaris) == 0 {
		return views, nil
	}

	ids := make([]string, len(shayaris))
	authorIDs := make([]uint, 0, len(shayaris))
	seen := make(map[uint]bool)
	for i := range shayaris {
		ids[i] = shayaris[i].ID.Hex()
		if uid := shayaris[i].UserID; !seen[uid] {
			seen[uid] = true
			authorIDs = append(authorIDs, uid)
		}
	}

	var (
		authors = make(map[uint]models.UserCompact, len(authorIDs))
		liked   = map[string]bool{}
		saved   = map[string]bool{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, err := h.users.GetUsersByIDs(gctx, authorIDs)
		if err != nil {
			return err
		}
		for i := range users {
			authors[users[i].ID] = users[i].ToCompact()
		}
		return nil
	})
	if viewer != nil {
		g.Go(func() error {
			var err error
			liked, err = h.likes.LikedShayariIDs(gctx, viewer.ID, ids)
			return err
		})
		g.Go(func() error {
			var err error
			saved, err = h.saves.SavedShayariIDs(gctx, viewer.ID, ids)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, storeError("hydrate shayaris", err)
	}

	for i := range shayaris {
		s := &shayaris[i]
		author, ok := authors[s.UserID]
		if !ok {
			author = models.UserCompact{ID: s.UserID}
		}
		views = append(views, models.ShayariView{
			ID:            ids[i],
			UserID:        s.UserID,
			Content:       s.Content,
			Mood:          s.Mood,
			Language:      s.Language,
			LikesCount:    nonNegative(s.LikesCount),
			CommentsCount: nonNegative(s.CommentsCount),
			CreatedAt:     s.CreatedAt,
			Author:        author,
			IsLiked:       liked[ids[i]],
			IsSaved:       saved[ids[i]],
		})
	}
	return views, nil
}

// HydrateOne is Hydrate for a single shayari.
func (h *Hydrator) HydrateOne(ctx context.Context, viewer *auth.Identity, shayari *models.Shayari) (*models.ShayariView, error) {
	views, err := h.Hydrate(ctx, viewer, []models.Shayari{*shayari})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func nonNegative(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
