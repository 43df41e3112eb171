package services

import (
	"context"
	"strings"

	"github.com/anonto42/shayari-hub/backend/internal/auth"
	"github.com/anonto42/shayari-hub/backend/internal/models"
	"github.com/anonto42/shayari-hub/backend/internal/repositories"
	"go.uber.org/zap"
)

// TrendingLimit is how many poets the explore page ranks.
const TrendingLimit = 5

// ListingService assembles the feed, explore and saved pages.
type ListingService interface {
	Feed(ctx context.Context, viewer *auth.Identity) ([]models.ShayariView, error)
	Explore(ctx context.Context, viewer *auth.Identity, filter models.ExploreFilter) (*models.ExplorePage, error)
	Saved(ctx context.Context, viewer *auth.Identity) ([]models.ShayariView, error)
	TrendingPoets(ctx context.Context) ([]models.TrendingPoet, error)
}

type listingService struct {
	shayaris repositories.ShayariRepository
	saves    repositories.SaveRepository
	follows  repositories.FollowRepository
	users    repositories.UserRepository
	cache    repositories.TrendingCache
	hydrator *Hydrator
	logger   *zap.Logger
}

func NewListingService(
	shayaris repositories.ShayariRepository,
	saves repositories.SaveRepository,
	follows repositories.FollowRepository,
	users repositories.UserRepository,
	cache repositories.TrendingCache,
	hydrator *Hydrator,
	logger *zap.Logger,
) ListingService {
	return &listingService{
		shayaris: shayaris,
		saves:    saves,
		follows:  follows,
		users:    users,
		cache:    cache,
		hydrator: hydrator,
		logger:   logger,
	}
}

// Feed lists the viewer's own and followed authors' shayaris, or every
// shayari for a guest.
func (s *listingService) Feed(ctx context.Context, viewer *auth.Identity) ([]models.ShayariView, error) {
	q := repositories.ShayariQuery{Limit: ListingLimit}
	if viewer != nil {
		following, err := s.follows.GetFollowingIDs(ctx, viewer.ID)
		if err != nil {
			return nil, storeError("list following", err)
		}
		q.AuthorIDs = append(following, viewer.ID)
	}

	shayaris, err := s.shayaris.ListShayaris(ctx, q)
	if err != nil {
		return nil, storeError("list feed", err)
	}
	return s.hydrator.Hydrate(ctx, viewer, shayaris)
}

func (s *listingService) Explore(ctx context.Context, viewer *auth.Identity, filter models.ExploreFilter) (*models.ExplorePage, error) {
	q := repositories.ShayariQuery{
		Mood:     strings.ToLower(strings.TrimSpace(filter.Mood)),
		Language: strings.ToLower(strings.TrimSpace(filter.Language)),
		Search:   strings.TrimSpace(filter.Query),
		Limit:    ListingLimit,
	}
	if q.Mood != "" && !models.IsMood(q.Mood) {
		return nil, invalid("Unknown mood: " + q.Mood)
	}
	if q.Language != "" && !models.IsLanguage(q.Language) {
		return nil, invalid("Unknown language: " + q.Language)
	}

	shayaris, err := s.shayaris.ListShayaris(ctx, q)
	if err != nil {
		return nil, storeError("list explore", err)
	}
	views, err := s.hydrator.Hydrate(ctx, viewer, shayaris)
	if err != nil {
		return nil, err
	}

	poets, err := s.TrendingPoets(ctx)
	if err != nil {
		return nil, err
	}
	return &models.ExplorePage{Shayaris: views, TrendingPoets: poets}, nil
}

// Saved lists the viewer's saves newest first. Saves of deleted shayaris are skipped.
func (s *listingService) Saved(ctx context.Context, viewer *auth.Identity) ([]models.ShayariView, error) {
	if viewer == nil {
		return nil, errNotSignedIn
	}

	saves, err := s.saves.ListByUser(ctx, viewer.ID, ListingLimit)
	if err != nil {
		return nil, storeError("list saves", err)
	}
	ids := make([]string, len(saves))
	for i := range saves {
		ids[i] = saves[i].ShayariID
	}

	found, err := s.shayaris.GetShayarisByIDs(ctx, ids)
	if err != nil {
		return nil, storeError("load saved shayaris", err)
	}
	byID := make(map[string]models.Shayari, len(found))
	for _, sh := range found {
		byID[sh.ID.Hex()] = sh
	}

	ordered := make([]models.Shayari, 0, len(found))
	for _, id := range ids {
		if sh, ok := byID[id]; ok {
			ordered = append(ordered, sh)
		}
	}

	views, err := s.hydrator.Hydrate(ctx, viewer, ordered)
	if err != nil {
		return nil, err
	}
	for i := range views {
		views[i].IsSaved = true
	}
	return views, nil
}

// TrendingPoets ranks users by follower count. A cache failure only costs a
// recomputation.
func (s *listingService) TrendingPoets(ctx context.Context) ([]models.TrendingPoet, error) {
	if poets, ok, err := s.cache.GetTrending(ctx); err != nil {
		s.logger.Warn("trending cache read failed", zap.Error(err))
	} else if ok {
		return poets, nil
	}

	ranked, err := s.follows.MostFollowed(ctx, TrendingLimit)
	if err != nil {
		return nil, storeError("rank poets", err)
	}
	ids := make([]uint, len(ranked))
	for i, r := range ranked {
		ids[i] = r.UserID
	}
	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, storeError("load poets", err)
	}
	byID := make(map[uint]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	poets := make([]models.TrendingPoet, 0, len(ranked))
	for _, r := range ranked {
		user, ok := byID[r.UserID]
		if !ok {
			continue
		}
		poets = append(poets, models.TrendingPoet{
			UserCompact:    user.ToCompact(),
			Bio:            user.Bio,
			FollowersCount: r.Count,
		})
	}

	if err := s.cache.SetTrending(ctx, poets); err != nil {
		s.logger.Warn("trending cache write failed", zap.Error(err))
	}
	return poets, nil
}
