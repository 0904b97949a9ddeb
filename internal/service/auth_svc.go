package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Mohamed-Rabiaa/alx-polly/internal/model"
	"github.com/Mohamed-Rabiaa/alx-polly/internal/repository"
)

// UserStore is the data-store surface the auth service depends on.
type UserStore interface {
	InsertUser(ctx context.Context, u model.User) error
	FindUserByUsername(ctx context.Context, username string) (*model.User, error)
	FindUserByID(ctx context.Context, userID string) (*model.User, error)
	InsertSession(ctx context.Context, s model.Session) error
	FindSession(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error
	PurgeExpiredSessions(ctx context.Context) error
	ProfileCounts(ctx context.Context, userID string) (pollCount, votesCast int, err error)
}

const minPasswordLen = 8

// AuthService issues and validates sessions. It is the in-process stand-in
// for a hosted auth provider: accounts and sessions live in Postgres,
// handlers only ever see the resolved user identity.
type AuthService struct {
	store      UserStore
	sessionTTL time.Duration
}

func NewAuthService(store UserStore, sessionTTL time.Duration) *AuthService {
	return &AuthService{store: store, sessionTTL: sessionTTL}
}

// Register creates a new account.
func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.store.InsertUser(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	user, err := s.store.FindUserByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !verifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	// Housekeeping; a failure here must not block the login.
	_ = s.store.PurgeExpiredSessions(ctx)

	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	session := model.Session{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.store.InsertSession(ctx, session); err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	return &model.LoginResponse{
		Token:     token,
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Logout revokes the session token. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.store.DeleteSession(ctx, token)
}

// CurrentUser resolves a session token to a user ID. An empty, unknown
// or expired token yields ErrUnauthenticated.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthenticated
	}
	session, err := s.store.FindSession(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrUnauthenticated
	}
	if err != nil {
		return "", err
	}
	return session.UserID, nil
}

// Profile returns the current user's profile with poll and vote counts.
func (s *AuthService) Profile(ctx context.Context, userID string) (*model.ProfileResponse, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	pollCount, votesCast, err := s.store.ProfileCounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &model.ProfileResponse{
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		PollCount: pollCount,
		VotesCast: votesCast,
	}, nil
}

// hashPassword returns a bcrypt hash of the password.
func hashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// verifyPassword checks a password against its stored bcrypt hash.
func verifyPassword(password, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// generateToken returns a URL-safe random session token (192 bits).
func generateToken() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}
