package handlers

import (
	"context"

	"github.com/anonto42/shayari-hub/backend/internal/auth"
	"github.com/anonto42/shayari-hub/backend/internal/models"
	"github.com/anonto42/shayari-hub/backend/internal/services"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, req models.SignUpRequest) (*services.Session, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Session), args.Error(1)
}

func (m *MockAuthService) SignIn(ctx context.Context, req models.SignInRequest) (*services.Session, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Session), args.Error(1)
}

func (m *MockAuthService) FirebaseLogin(ctx context.Context, idToken string) (*services.Session, error) {
	args := m.Called(idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Session), args.Error(1)
}

// MockSocialService mocks the SocialService interface
type MockSocialService struct {
	mock.Mock
}

func (m *MockSocialService) ToggleLike(ctx context.Context, viewer *auth.Identity, shayariID string) (*models.ToggleState, error) {
	args := m.Called(viewer, shayariID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ToggleState), args.Error(1)
}

func (m *MockSocialService) ToggleSave(ctx context.Context, viewer *auth.Identity, shayariID string) (*models.ToggleState, error) {
	args := m.Called(viewer, shayariID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ToggleState), args.Error(1)
}

func (m *MockSocialService) ToggleFollow(ctx context.Context, viewer *auth.Identity, targetID uint) (*models.ToggleState, error) {
	args := m.Called(viewer, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ToggleState), args.Error(1)
}

func (m *MockSocialService) AddComment(ctx context.Context, viewer *auth.Identity, shayariID, content string) (*models.CommentView, error) {
	args := m.Called(viewer, shayariID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CommentView), args.Error(1)
}

// MockShayariService mocks the ShayariService interface
type MockShayariService struct {
	mock.Mock
}

func (m *MockShayariService) CreateShayari(ctx context.Context, viewer *auth.Identity, req models.CreateShayariRequest) (*models.ShayariView, error) {
	args := m.Called(viewer, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShayariView), args.Error(1)
}

func (m *MockShayariService) UpdateShayari(ctx context.Context, viewer *auth.Identity, id string, req models.UpdateShayariRequest) (*models.ShayariView, error) {
	args := m.Called(viewer, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShayariView), args.Error(1)
}

func (m *MockShayariService) DeleteShayari(ctx context.Context, viewer *auth.Identity, id string) error {
	return m.Called(viewer, id).Error(0)
}

func (m *MockShayariService) GetShayari(ctx context.Context, viewer *auth.Identity, id string) (*models.ShayariDetail, error) {
	args := m.Called(viewer, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShayariDetail), args.Error(1)
}

// MockListingService mocks the ListingService interface
type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) Feed(ctx context.Context, viewer *auth.Identity) ([]models.ShayariView, error) {
	args := m.Called(viewer)
	return args.Get(0).([]models.ShayariView), args.Error(1)
}

func (m *MockListingService) Explore(ctx context.Context, viewer *auth.Identity, filter models.ExploreFilter) (*models.ExplorePage, error) {
	args := m.Called(viewer, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExplorePage), args.Error(1)
}

func (m *MockListingService) Saved(ctx context.Context, viewer *auth.Identity) ([]models.ShayariView, error) {
	args := m.Called(viewer)
	return args.Get(0).([]models.ShayariView), args.Error(1)
}

func (m *MockListingService) TrendingPoets(ctx context.Context) ([]models.TrendingPoet, error) {
	args := m.Called()
	return args.Get(0).([]models.TrendingPoet), args.Error(1)
}

// MockAdminService mocks the AdminService interface
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Find(ctx context.Context, viewer *auth.Identity, collection, filter, fields string) ([]bson.M, error) {
	args := m.Called(viewer, collection, filter, fields)
	return args.Get(0).([]bson.M), args.Error(1)
}

func (m *MockAdminService) Insert(ctx context.Context, viewer *auth.Identity, collection string, doc []byte) ([]any, error) {
	args := m.Called(viewer, collection, string(doc))
	return args.Get(0).([]any), args.Error(1)
}

func (m *MockAdminService) Delete(ctx context.Context, viewer *auth.Identity, collection string, filter []byte) (int64, error) {
	args := m.Called(viewer, collection, string(filter))
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAdminService) Set(ctx context.Context, viewer *auth.Identity, collection string, filter, update []byte) (int64, error) {
	args := m.Called(viewer, collection, string(filter), string(update))
	return args.Get(0).(int64), args.Error(1)
}
