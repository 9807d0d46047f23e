package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cartshop/cartshop/internal/auth"
	"github.com/cartshop/cartshop/internal/metrics"
	"github.com/cartshop/cartshop/internal/model"
	"github.com/cartshop/cartshop/internal/repository"
)

// Auth service errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService handles credential verification.
type AuthService struct {
	repo    *repository.Repository
	metrics metrics.Recorder

	// dummyHash is verified against when the username is unknown,
	// so both failure paths cost one argon2 computation.
	dummyHash string
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *repository.Repository, recorder metrics.Recorder) (*AuthService, error) {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	dummyHash, err := auth.HashPassword("cartshop-dummy-credential")
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}

	return &AuthService{
		repo:      repo,
		metrics:   recorder,
		dummyHash: dummyHash,
	}, nil
}

// Authenticate verifies a username/password pair.
// Unknown usernames and wrong passwords fail identically with
// ErrInvalidCredentials - no enumeration signal either way.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Burn the same hashing cost as the known-user path.
			_, _ = auth.VerifyPassword(password, s.dummyHash)
			s.metrics.IncLoginFailure()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		s.metrics.IncLoginFailure()
		return nil, ErrInvalidCredentials
	}

	s.metrics.IncLoginSuccess()
	return user, nil
}

// FindUserByUsername looks up a user by username.
func (s *AuthService) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}
	return user, nil
}

// GetUser looks up a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}
	return user, nil
}
