package services

import (
	"context"
	"strings"

	"github.com/anonto42/shayari-hub/backend/internal/auth"
	"github.com/anonto42/shayari-hub/backend/internal/models"
	"github.com/anonto42/shayari-hub/backend/internal/repositories"
	"golang.org/x/sync/errgroup"
)

type UserService interface {
	GetProfile(ctx context.Context, viewer *auth.Identity, username string) (*models.Profile, error)
	GetMe(ctx context.Context, viewer *auth.Identity) (*models.User, error)
	UpdateProfile(ctx context.Context, viewer *auth.Identity, req models.UpdateProfileRequest) (*models.User, error)
}

type userService struct {
	users    repositories.UserRepository
	shayaris repositories.ShayariRepository
	follows  repositories.FollowRepository
	hydrator *Hydrator
}

func NewUserService(
	users repositories.UserRepository,
	shayaris repositories.ShayariRepository,
	follows repositories.FollowRepository,
	hydrator *Hydrator,
) UserService {
	return &userService{users: users, shayaris: shayaris, follows: follows, hydrator: hydrator}
}

// GetProfile loads a user page by username with stats and the author's shayaris.
func (s *userService) GetProfile(ctx context.Context, viewer *auth.Identity, username string) (*models.Profile, error) {
	user, err := s.users.GetUserByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return nil, storeError("get user", err)
	}

	profile := &models.Profile{
		User:         user,
		IsOwnProfile: viewer != nil && viewer.ID == user.ID,
	}
	var shayaris []models.Shayari

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		profile.Stats.Shayaris, err = s.shayaris.CountByAuthor(gctx, user.ID)
		return err
	})
	g.Go(func() (err error) {
		profile.Stats.Followers, err = s.follows.GetFollowersCount(gctx, user.ID)
		return err
	})
	g.Go(func() (err error) {
		profile.Stats.Following, err = s.follows.GetFollowingCount(gctx, user.ID)
		return err
	})
	if viewer != nil && !profile.IsOwnProfile {
		g.Go(func() (err error) {
			profile.IsFollowing, err = s.follows.IsFollowing(gctx, viewer.ID, user.ID)
			return err
		})
	}
	g.Go(func() (err error) {
		shayaris, err = s.shayaris.ListShayaris(gctx, repositories.ShayariQuery{
			AuthorIDs: []uint{user.ID},
			Limit:     ListingLimit,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, storeError("load profile", err)
	}

	profile.Shayaris, err = s.hydrator.Hydrate(ctx, viewer, shayaris)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *userService) GetMe(ctx context.Context, viewer *auth.Identity) (*models.User, error) {
	if viewer == nil {
		return nil, errNotSignedIn
	}
	user, err := s.users.GetUserByID(ctx, viewer.ID)
	if err != nil {
		return nil, storeError("get user", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, viewer *auth.Identity, req models.UpdateProfileRequest) (*models.User, error) {
	if viewer == nil {
		return nil, errNotSignedIn
	}
	user, err := s.users.GetUserByID(ctx, viewer.ID)
	if err != nil {
		return nil, storeError("get user", err)
	}

	user.DisplayName = strings.TrimSpace(req.DisplayName)
	if user.DisplayName == "" {
		user.DisplayName = user.Username
	}
	user.Bio = strings.TrimSpace(req.Bio)
	user.AvatarURL = strings.TrimSpace(req.AvatarURL)

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, storeError("update user", err)
	}
	return user, nil
}
