package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jskalc/vault-api/internal/domain"
	"github.com/jskalc/vault-api/internal/notify"
	"github.com/jskalc/vault-api/internal/repository"
	"github.com/jskalc/vault-api/internal/utils"
)

// verificationService implements VerificationService interface
type verificationService struct {
	userRepo         repository.UserRepository
	verificationRepo repository.VerificationTokenRepository
	accessTokenRepo  repository.AccessTokenRepository
	mailer           notify.Mailer
	tokenTTL         time.Duration
	logger           *zap.Logger
}

// NewVerificationService creates a new email verification service
func NewVerificationService(
	userRepo repository.UserRepository,
	verificationRepo repository.VerificationTokenRepository,
	accessTokenRepo repository.AccessTokenRepository,
	mailer notify.Mailer,
	tokenTTL time.Duration,
	logger *zap.Logger,
) VerificationService {
	return &verificationService{
		userRepo:         userRepo,
		verificationRepo: verificationRepo,
		accessTokenRepo:  accessTokenRepo,
		mailer:           mailer,
		tokenTTL:         tokenTTL,
		logger:           logger,
	}
}

// RequestChange issues a fresh verification token carrying the requested new
// address and mails it to that address. A user holds at most one pending
// verification, reissuing replaces the previous token.
func (s *verificationService) RequestChange(ctx context.Context, userID, emailUpdate string) error {
	emailUpdate = utils.SanitizeEmail(emailUpdate)

	if _, err := s.userRepo.GetByEmail(ctx, emailUpdate); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	token, err := utils.RandomToken(utils.TokenLength)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	verification := &domain.EmailVerification{
		UserID:      user.ID,
		Token:       token,
		EmailUpdate: emailUpdate,
	}
	if err := s.verificationRepo.Replace(ctx, verification); err != nil {
		return fmt.Errorf("failed to store verification token: %w", err)
	}

	if err := s.mailer.SendVerificationRequest(ctx, emailUpdate, token); err != nil {
		s.logger.Error("failed to send verification email",
			zap.String("user_id", user.ID), zap.Error(err))
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	return nil
}

// Verify consumes a verification token: the user's email becomes the address
// the token carries, the account is marked verified and every active session
// is revoked. Expired and already consumed tokens are both invalid.
func (s *verificationService) Verify(ctx context.Context, token string) error {
	verification, err := s.verificationRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to get verification token: %w", err)
	}

	if time.Since(verification.CreatedAt) > s.tokenTTL {
		if err := s.verificationRepo.Delete(ctx, verification.ID); err != nil {
			s.logger.Warn("failed to delete expired verification token", zap.Error(err))
		}
		return ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, verification.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	// Another account may have claimed the address while the token was
	// pending. The token is spent either way.
	if other, err := s.userRepo.GetByEmail(ctx, verification.EmailUpdate); err == nil && other.ID != user.ID {
		if err := s.verificationRepo.Delete(ctx, verification.ID); err != nil {
			s.logger.Warn("failed to delete verification token", zap.Error(err))
		}
		return ErrEmailTaken
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	now := time.Now()
	user.Email = verification.EmailUpdate
	user.EmailVerifiedAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	if err := s.verificationRepo.Delete(ctx, verification.ID); err != nil {
		s.logger.Warn("failed to delete verification token", zap.Error(err))
	}

	// Sessions issued before the change may carry the old email.
	if err := s.accessTokenRepo.DeleteByUserID(ctx, user.ID); err != nil {
		s.logger.Warn("failed to revoke access tokens",
			zap.String("user_id", user.ID), zap.Error(err))
	}

	if err := s.mailer.SendVerificationSuccess(ctx, user.Email); err != nil {
		s.logger.Warn("failed to send verification success email",
			zap.String("user_id", user.ID), zap.Error(err))
	}

	return nil
}
