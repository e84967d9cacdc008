// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/cache"
	"github.com/tasknest/tasknest/internal/metrics"
	"github.com/tasknest/tasknest/internal/model"
	"github.com/tasknest/tasknest/internal/repository"
)

// Service errors for account operations.
var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const (
	minEmailLength    = 5
	minPasswordLength = 8
)

// UserService implements registration, login and session management over
// the credential store.
type UserService struct {
	repo    *repository.Repository
	cache   *cache.Cache
	hasher  *auth.Hasher
	tokens  *auth.TokenService
	metrics metrics.Recorder
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository, sessionCache *cache.Cache, hasher *auth.Hasher, tokens *auth.TokenService, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		repo:    repo,
		cache:   sessionCache,
		hasher:  hasher,
		tokens:  tokens,
		metrics: recorder,
	}
}

// ValidateEmail trims and validates a registration email. The address
// must be well formed and at least five characters long.
func ValidateEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if len(email) < minEmailLength {
		return "", ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}

	return email, nil
}

// Register validates the credentials, hashes the password and persists a
// new user. The password is hashed exactly once, here; nothing downstream
// ever sees the plaintext.
func (s *UserService) Register(ctx context.Context, email, password string) (*model.User, error) {
	email, err := ValidateEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Tokens:       []model.AuthToken{},
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.IncUserRegistered()

	return user, nil
}

// Login resolves credentials to a user. An unknown email and a wrong
// password both collapse into ErrInvalidCredentials so the response does
// not reveal whether the email exists.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLoginFailed()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil || !ok {
		s.metrics.IncLoginFailed()
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// IssueSession signs a token for the user and appends it to the stored
// token list. The stored copy is what keeps the token alive: removing it
// on logout revokes the token even though its signature stays valid.
func (s *UserService) IssueSession(ctx context.Context, user *model.User) (string, error) {
	token, err := s.tokens.Issue(user.ID, model.ScopeAuth)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	entry := model.AuthToken{Access: model.ScopeAuth, Token: token}
	if err := s.repo.AppendToken(ctx, user.ID, entry); err != nil {
		return "", fmt.Errorf("persist token: %w", err)
	}
	user.Tokens = append(user.Tokens, entry)

	s.metrics.IncSessionIssued()

	return token, nil
}

// RevokeSession removes the token from the user's stored list and drops
// the cached session. Removing an absent token is not an error.
func (s *UserService) RevokeSession(ctx context.Context, userID, token string) error {
	if err := s.repo.RemoveToken(ctx, userID, token); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}

	if s.cache != nil {
		// The cached entry must go too, or the guard could keep serving
		// the revoked token until the TTL runs out.
		if err := s.cache.DeleteSession(ctx, auth.TokenDigest(token)); err != nil {
			return fmt.Errorf("drop cached session: %w", err)
		}
	}

	s.metrics.IncSessionRevoked()

	return nil
}
