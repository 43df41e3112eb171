package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anonto42/shayari-hub/backend/internal/auth"
	"github.com/anonto42/shayari-hub/backend/internal/middleware"
	"github.com/anonto42/shayari-hub/backend/internal/models"
	"github.com/anonto42/shayari-hub/backend/internal/services"
	"github.com/anonto42/shayari-hub/backend/internal/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

var asha = &auth.Identity{ID: 1, Username: "asha", Email: "asha@example.com"}

// setupRouter builds an echo instance whose requests run as viewer (nil for guests).
func setupRouter(viewer *auth.Identity, register func(g *echo.Group, m ...echo.MiddlewareFunc)) *echo.Echo {
	e := echo.New()
	e.Validator = validators.New()
	g := e.Group("", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if viewer != nil {
				middleware.SetIdentity(c, viewer)
			}
			return next(c)
		}
	})
	register(g)
	return e
}

func perform(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestSignUp_SetsSessionCookie(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, time.Hour, false)
	router := setupRouter(nil, handler.RegisterAuthRoutes)

	req := models.SignUpRequest{Username: "asha", Email: "asha@example.com", Password: "secret1"}
	user := &models.User{ID: 1, Username: "asha", Email: "asha@example.com", Password: "hash"}
	mockAuthService.On("SignUp", req).Return(&services.Session{User: user, Token: "tok"}, nil)

	w := perform(router, http.MethodPost, "/signup", `{"username":"asha","email":"asha@example.com","password":"secret1"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "asha", body["user"].(map[string]interface{})["username"])
	assert.NotContains(t, w.Body.String(), "hash")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.CookieName, cookies[0].Name)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	mockAuthService.AssertExpectations(t)
}

func TestSignUp_InvalidPayload(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupRouter(nil, NewAuthHandler(mockAuthService, time.Hour, false).RegisterAuthRoutes)

	w := perform(router, http.MethodPost, "/signup", `{"username":"asha"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, w.Result().Cookies())
	mockAuthService.AssertNotCalled(t, "SignUp", mock.Anything)
}

func TestSignIn_Failures(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupRouter(nil, NewAuthHandler(mockAuthService, time.Hour, false).RegisterAuthRoutes)

	mockAuthService.On("SignIn", mock.Anything).
		Return(nil, &services.Failure{Kind: services.ErrUnauthorized, Message: "Invalid credentials"})

	w := perform(router, http.MethodPost, "/signin", `{"email":"asha@example.com","password":"nope"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decode(t, w)["message"])
	assert.Empty(t, w.Result().Cookies())
}

func TestSignOut_ClearsCookie(t *testing.T) {
	router := setupRouter(asha, NewAuthHandler(new(MockAuthService), time.Hour, false).RegisterAuthRoutes)

	w := perform(router, http.MethodPost, "/signout", "")

	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.CookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestFirebaseLogin_Disabled(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupRouter(nil, NewAuthHandler(mockAuthService, time.Hour, false).RegisterAuthRoutes)
	mockAuthService.On("FirebaseLogin", "id-token").
		Return(nil, &services.Failure{Kind: services.ErrNotFound, Message: "Firebase login is not enabled"})

	w := perform(router, http.MethodPost, "/firebase-login", `{"idToken":"id-token"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFailStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		viewer *auth.Identity
		err    error
		status int
	}{
		{"guest unauthorized", nil, &services.Failure{Kind: services.ErrUnauthorized, Message: "Unauthorized"}, http.StatusUnauthorized},
		{"member forbidden", asha, &services.Failure{Kind: services.ErrUnauthorized, Message: "Unauthorized"}, http.StatusForbidden},
		{"invalid", asha, &services.Failure{Kind: services.ErrInvalid, Message: "Cannot like own shayari"}, http.StatusBadRequest},
		{"not found", asha, &services.Failure{Kind: services.ErrNotFound, Message: "Not found"}, http.StatusNotFound},
		{"conflict", asha, &services.Failure{Kind: services.ErrConflict, Message: "Already exists"}, http.StatusConflict},
		{"unexpected", asha, errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockSocialService := new(MockSocialService)
			router := setupRouter(tc.viewer, NewLikeHandler(mockSocialService).RegisterLikeRoutes)
			mockSocialService.On("ToggleLike", tc.viewer, "abc").Return(nil, tc.err)

			w := perform(router, http.MethodPost, "/shayaris/abc/like", "")

			assert.Equal(t, tc.status, w.Code)
			assert.NotContains(t, w.Body.String(), "connection reset")
		})
	}
}

func TestToggleLike_Response(t *testing.T) {
	mockSocialService := new(MockSocialService)
	router := setupRouter(asha, NewLikeHandler(mockSocialService).RegisterLikeRoutes)
	mockSocialService.On("ToggleLike", asha, "abc").Return(&models.ToggleState{Active: true, Count: 3}, nil)
	mockSocialService.On("ToggleSave", asha, "abc").Return(&models.ToggleState{Active: false}, nil)

	w := perform(router, http.MethodPost, "/shayaris/abc/like", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"liked":true,"likes_count":3}`, w.Body.String())

	w = perform(router, http.MethodPost, "/shayaris/abc/save", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"saved":false}`, w.Body.String())
}

func TestToggleFollow(t *testing.T) {
	mockSocialService := new(MockSocialService)
	router := setupRouter(asha, NewFollowHandler(mockSocialService).RegisterFollowRoutes)
	mockSocialService.On("ToggleFollow", asha, uint(2)).Return(&models.ToggleState{Active: true, Count: 1}, nil)

	w := perform(router, http.MethodPost, "/users/2/follow", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"following":true,"followers_count":1}`, w.Body.String())

	w = perform(router, http.MethodPost, "/users/bob/follow", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	mockSocialService.AssertNumberOfCalls(t, "ToggleFollow", 1)
}

func TestAddComment(t *testing.T) {
	mockSocialService := new(MockSocialService)
	router := setupRouter(asha, NewCommentHandler(mockSocialService).RegisterCommentRoutes)
	view := &models.CommentView{ID: 9, Content: "wah", Author: models.UserCompact{ID: 1, Username: "asha"}}
	mockSocialService.On("AddComment", asha, "abc", "wah").Return(view, nil)

	w := perform(router, http.MethodPost, "/shayaris/abc/comments", `{"content":"wah"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "wah", decode(t, w)["content"])
}

func TestCreateShayari(t *testing.T) {
	mockShayariService := new(MockShayariService)
	router := setupRouter(asha, NewShayariHandler(mockShayariService).RegisterShayariRoutes)
	req := models.CreateShayariRequest{Content: "dil", Mood: "sad"}
	mockShayariService.On("CreateShayari", asha, req).
		Return(&models.ShayariView{ID: "abc", Content: "dil", Mood: "sad", Language: "hindi"}, nil)

	w := perform(router, http.MethodPost, "/shayaris", `{"content":"dil","mood":"sad"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "abc", decode(t, w)["id"])

	w = perform(router, http.MethodPost, "/shayaris", `{"content":"dil","mood":"angry"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockShayariService.AssertNumberOfCalls(t, "CreateShayari", 1)
}

func TestDeleteShayari(t *testing.T) {
	mockShayariService := new(MockShayariService)
	router := setupRouter(asha, NewShayariHandler(mockShayariService).RegisterShayariRoutes)
	mockShayariService.On("DeleteShayari", asha, "abc").Return(nil)

	w := perform(router, http.MethodDelete, "/shayaris/abc", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestExplore_BindsQuery(t *testing.T) {
	mockListingService := new(MockListingService)
	router := setupRouter(nil, NewFeedHandler(mockListingService).RegisterPublicRoutes)
	filter := models.ExploreFilter{Mood: "sad", Language: "urdu", Query: "dil"}
	mockListingService.On("Explore", (*auth.Identity)(nil), filter).
		Return(&models.ExplorePage{Shayaris: []models.ShayariView{}, TrendingPoets: []models.TrendingPoet{}}, nil)

	w := perform(router, http.MethodGet, "/explore?mood=sad&language=urdu&q=dil", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"shayaris":[],"trending_poets":[]}`, w.Body.String())
	mockListingService.AssertExpectations(t)
}

func TestAdminConsole(t *testing.T) {
	mockAdminService := new(MockAdminService)
	router := setupRouter(asha, NewAdminHandler(mockAdminService).RegisterAdminRoutes)

	mockAdminService.On("Find", asha, "shayaris", `{"mood":"sad"}`, "content").
		Return([]bson.M{{"content": "dil"}}, nil)
	mockAdminService.On("Insert", asha, "shayaris", `{"content":"dil"}`).Return([]any{"id-1"}, nil)
	mockAdminService.On("Delete", asha, "shayaris", `{"mood":"sad"}`).Return(int64(2), nil)
	mockAdminService.On("Set", asha, "users", `{}`, `{"bio":"x"}`).
		Return(int64(0), &services.Failure{Kind: services.ErrUnauthorized, Message: "Unauthorized"})

	w := perform(router, http.MethodGet, `/db/shayaris?filter=%7B%22mood%22%3A%22sad%22%7D&fields=content`, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"content":"dil"}]`, w.Body.String())

	w = perform(router, http.MethodPost, "/db/shayaris", `{"doc":{"content":"dil"}}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"insertedCount":1,"insertedIds":["id-1"]}`, w.Body.String())

	w = perform(router, http.MethodDelete, "/db/shayaris", `{"filter":{"mood":"sad"}}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deletedCount":2}`, w.Body.String())

	w = perform(router, http.MethodPatch, "/db/users", `{"filter":{},"update":{"bio":"x"}}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	mockAdminService.AssertExpectations(t)
}
