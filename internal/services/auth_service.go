package services

import (
	"context"
	"errors"
	"strings"

	"github.com/anonto42/shayari-hub/backend/internal/auth"
	"github.com/anonto42/shayari-hub/backend/internal/models"
	"github.com/anonto42/shayari-hub/backend/internal/repositories"
	"github.com/anonto42/shayari-hub/backend/pkg/firebase"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// IDTokenVerifier verifies federated ID tokens.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebase.Identity, error)
}

// Session is a signed-in user together with their session token.
type Session struct {
	User  *models.User
	Token string
}

type AuthService interface {
	SignUp(ctx context.Context, req models.SignUpRequest) (*Session, error)
	SignIn(ctx context.Context, req models.SignInRequest) (*Session, error)
	FirebaseLogin(ctx context.Context, idToken string) (*Session, error)
}

type authService struct {
	users    repositories.UserRepository
	tokens   *auth.TokenManager
	verifier IDTokenVerifier
	logger   *zap.Logger
}

// NewAuthService builds the account service. verifier may be nil, which
// disables federated login.
func NewAuthService(users repositories.UserRepository, tokens *auth.TokenManager, verifier IDTokenVerifier, logger *zap.Logger) AuthService {
	return &authService{users: users, tokens: tokens, verifier: verifier, logger: logger}
}

func (s *authService) SignUp(ctx context.Context, req models.SignUpRequest) (*Session, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return nil, invalid("Missing required fields")
	}

	_, err := s.users.FindByEmailOrUsername(ctx, email, username)
	if err == nil {
		return nil, conflict("User with this email or username already exists")
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, storeError("find user", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = username
	}
	user := &models.User{
		Username:    username,
		Email:       email,
		Password:    string(hashed),
		DisplayName: displayName,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, conflict("User with this email or username already exists")
		}
		return nil, storeError("create user", err)
	}
	s.logger.Info("user signed up", zap.Uint("user_id", user.ID), zap.String("username", user.Username))

	return s.session(user)
}

func (s *authService) SignIn(ctx context.Context, req models.SignInRequest) (*Session, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, invalid("Missing required fields")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, unauthorized("Invalid credentials")
	}
	if err != nil {
		return nil, storeError("get user", err)
	}
	if user.Password == "" {
		return nil, unauthorized("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, unauthorized("Invalid credentials")
	}

	return s.session(user)
}

// FirebaseLogin links the token's account by Firebase UID, then by email, and
// creates a passwordless user when neither matches. Linking by email and
// creating an account both require a verified email.
func (s *authService) FirebaseLogin(ctx context.Context, idToken string) (*Session, error) {
	if s.verifier == nil {
		return nil, notFound("Firebase login is not enabled")
	}
	identity, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, &Failure{Kind: ErrUnauthorized, Message: "Invalid Firebase ID token", Err: err}
	}

	user, err := s.users.GetUserByFirebaseUID(ctx, identity.UID)
	if err == nil {
		return s.session(user)
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, storeError("get user", err)
	}

	if !identity.EmailVerified {
		return nil, unauthorized("Firebase email is not verified")
	}

	uid := identity.UID
	user, err = s.users.GetUserByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		user.FirebaseUID = &uid
		if user.AvatarURL == "" {
			user.AvatarURL = identity.Picture
		}
		if err := s.users.UpdateUser(ctx, user); err != nil {
			return nil, storeError("link firebase account", err)
		}
	case errors.Is(err, repositories.ErrNotFound):
		username, err := s.freeUsername(ctx, identity.Email)
		if err != nil {
			return nil, err
		}
		displayName := identity.Name
		if displayName == "" {
			displayName = username
		}
		user = &models.User{
			Username:    username,
			Email:       identity.Email,
			DisplayName: displayName,
			AvatarURL:   identity.Picture,
			FirebaseUID: &uid,
		}
		if err := s.users.CreateUser(ctx, user); err != nil {
			return nil, storeError("create user", err)
		}
		s.logger.Info("user created from firebase", zap.Uint("user_id", user.ID))
	default:
		return nil, storeError("get user", err)
	}

	return s.session(user)
}

// freeUsername derives a username from the email local part, suffixing it
// when already taken. The result keeps to [a-z0-9_.] and 3 to 30 characters.
func (s *authService) freeUsername(ctx context.Context, email string) (string, error) {
	base := usernameBase(email)

	_, err := s.users.GetUserByUsername(ctx, base)
	if errors.Is(err, repositories.ErrNotFound) {
		return base, nil
	}
	if err != nil {
		return "", storeError("get user", err)
	}
	return base + "_" + uuid.NewString()[:8], nil
}

// usernameBase lowercases the email local part, drops characters outside
// [a-z0-9_.] and caps it at 20 characters. Short results are prefixed with "poet".
func usernameBase(email string) string {
	local := strings.ToLower(email)
	if at := strings.IndexByte(local, '@'); at >= 0 {
		local = local[:at]
	}

	var b strings.Builder
	for _, r := range local {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '.' {
			b.WriteRune(r)
		}
	}
	base := b.String()
	if len(base) > 20 {
		base = base[:20]
	}

	switch {
	case base == "":
		return "poet"
	case len(base) < 3:
		return "poet_" + base
	}
	return base
}

func (s *authService) session(user *models.User) (*Session, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token}, nil
}
