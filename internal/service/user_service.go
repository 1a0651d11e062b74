package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/expense-service/internal/auth"
	"github.com/spec-kit/expense-service/internal/domain"
	"github.com/spec-kit/expense-service/internal/repository"
)

// UserService manages the authenticated account's own profile. There is no
// path to another account's data; the id always comes from the principal.
type UserService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, hasher auth.PasswordHasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

// ProfileInput describes profile updates; empty fields are left unchanged.
type ProfileInput struct {
	Name     string
	Email    string
	Password string
}

// Get returns the principal's account.
func (s *UserService) Get(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// Update applies profile changes, rehashing the password when supplied.
func (s *UserService) Update(ctx context.Context, userID int64, input ProfileInput) (*domain.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}
	if email := strings.TrimSpace(input.Email); email != "" {
		user.Email = email
	}
	if input.Password != "" {
		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the principal's account. Outstanding tokens for it become
// unusable at validation time.
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	err := s.users.Delete(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}
