package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"itemshare/internal/domain"
	"itemshare/internal/repository"
)

// UserService describes user lifecycle and authentication operations.
type UserService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Login verifies the password and issues a fresh session token,
	// unconditionally overwriting (and so invalidating) any prior token.
	Login(ctx context.Context, username, password string) (string, error)
	// ResolveToken is the single gate every protected operation passes
	// through. It fails with domain.ErrUnauthenticated when the token is
	// missing or no user currently holds it.
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)

	if username == "" {
		return nil, fmt.Errorf("username is required: %w", domain.ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("password is required: %w", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", fmt.Errorf("username and password are required: %w", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("user %q: %w", username, domain.ErrInvalidCredentials)
	}

	// Tokens are uuid-v4, generated from crypto/rand. Uniqueness is
	// statistical, not structurally enforced by the store.
	token := uuid.NewString()
	if err := s.users.SetSessionToken(ctx, user.ID, token); err != nil {
		return "", err
	}

	return token, nil
}

func (s *userService) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("token is missing: %w", domain.ErrUnauthenticated)
	}

	user, err := s.users.GetBySessionToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
