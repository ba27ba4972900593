package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jskalc/vault-api/internal/domain"
	"github.com/jskalc/vault-api/internal/dto"
	"github.com/jskalc/vault-api/internal/notify"
	"github.com/jskalc/vault-api/internal/repository"
	"github.com/jskalc/vault-api/internal/utils"
)

// resetService implements ResetService interface
type resetService struct {
	userRepo   repository.UserRepository
	resetRepo  repository.ResetTokenRepository
	mailer     notify.Mailer
	tokenTTL   time.Duration
	bcryptCost int
	logger     *zap.Logger
}

// NewResetService creates a new password reset service
func NewResetService(
	userRepo repository.UserRepository,
	resetRepo repository.ResetTokenRepository,
	mailer notify.Mailer,
	tokenTTL time.Duration,
	bcryptCost int,
	logger *zap.Logger,
) ResetService {
	return &resetService{
		userRepo:   userRepo,
		resetRepo:  resetRepo,
		mailer:     mailer,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Request issues a password reset token for the address and mails the reset
// link. An address holds at most one active reset token, reissuing replaces
// it and restarts the expiry clock.
func (s *resetService) Request(ctx context.Context, req *dto.PasswordCreateRequest) error {
	email := utils.SanitizeEmail(req.Email)

	if _, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	token, err := utils.RandomToken(utils.TokenLength)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	reset := &domain.PasswordReset{
		Email: email,
		Token: token,
	}
	if err := s.resetRepo.Upsert(ctx, reset); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.mailer.SendPasswordResetRequest(ctx, email, token, req.CallbackURL); err != nil {
		s.logger.Error("failed to send password reset email",
			zap.String("email", email), zap.Error(err))
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	return nil
}

// Reset consumes a reset token and sets the account's new password. The
// token must match both the submitted email and token value, and expires
// relative to its last reissue.
func (s *resetService) Reset(ctx context.Context, req *dto.PasswordResetRequest) error {
	email := utils.SanitizeEmail(req.Email)

	reset, err := s.resetRepo.GetByToken(ctx, req.Token, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to get reset token: %w", err)
	}

	if time.Since(reset.UpdatedAt) > s.tokenTTL {
		if err := s.resetRepo.DeleteByEmail(ctx, email); err != nil {
			s.logger.Warn("failed to delete expired reset token", zap.Error(err))
		}
		return ErrInvalidToken
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = passwordHash

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	if err := s.resetRepo.DeleteByEmail(ctx, email); err != nil {
		s.logger.Warn("failed to delete reset token", zap.Error(err))
	}

	if err := s.mailer.SendPasswordResetSuccess(ctx, email); err != nil {
		s.logger.Warn("failed to send password reset success email",
			zap.String("email", email), zap.Error(err))
	}

	return nil
}
