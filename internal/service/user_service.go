package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jskalc/vault-api/internal/domain"
	"github.com/jskalc/vault-api/internal/dto"
	"github.com/jskalc/vault-api/internal/repository"
	"github.com/jskalc/vault-api/internal/utils"
)

// userService implements UserService interface
type userService struct {
	userRepo   repository.UserRepository
	bcryptCost int
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, bcryptCost int) UserService {
	return &userService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

// Show returns the caller's own account
func (s *userService) Show(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// Update applies a partial profile edit. Name, surname and password are
// mutable here; the email address is not, it only changes through the
// verification flow.
func (s *userService) Update(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if req.Name != "" {
		user.Name = strings.TrimSpace(req.Name)
	}
	if req.Surname != "" {
		user.Surname = strings.TrimSpace(req.Surname)
	}
	if req.Password != "" {
		passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = passwordHash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Delete removes the caller's account together with everything it owns.
// The cascade is transactional; a partially deleted account is never left
// behind.
func (s *userService) Delete(ctx context.Context, userID string) error {
	if err := s.userRepo.DeleteCascade(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
