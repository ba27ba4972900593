package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jskalc/vault-api/internal/domain"
	"github.com/jskalc/vault-api/internal/dto"
	"github.com/jskalc/vault-api/internal/notify"
	"github.com/jskalc/vault-api/internal/repository"
	"github.com/jskalc/vault-api/internal/utils"
	"go.uber.org/zap"
)

// authService implements AuthService interface
type authService struct {
	userRepo         repository.UserRepository
	verificationRepo repository.VerificationTokenRepository
	accessTokenRepo  repository.AccessTokenRepository
	jwtManager       *utils.JWTManager
	blacklist        TokenBlacklist
	mailer           notify.Mailer
	bcryptCost       int
	logger           *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	verificationRepo repository.VerificationTokenRepository,
	accessTokenRepo repository.AccessTokenRepository,
	jwtManager *utils.JWTManager,
	blacklist TokenBlacklist,
	mailer notify.Mailer,
	bcryptCost int,
	logger *zap.Logger,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		verificationRepo: verificationRepo,
		accessTokenRepo:  accessTokenRepo,
		jwtManager:       jwtManager,
		blacklist:        blacklist,
		mailer:           mailer,
		bcryptCost:       bcryptCost,
		logger:           logger,
	}
}

// Register creates an unverified user and issues their first email
// verification token.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error) {
	email := utils.SanitizeEmail(req.Email)

	// Uniqueness is checked before create; registration is not a
	// high-contention path, and the database constraint backs this up.
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Surname:      strings.TrimSpace(req.Surname),
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := utils.RandomToken(utils.TokenLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	verification := &domain.EmailVerification{
		UserID:      user.ID,
		Token:       token,
		EmailUpdate: user.Email,
	}
	if err := s.verificationRepo.Replace(ctx, verification); err != nil {
		return nil, fmt.Errorf("failed to store verification token: %w", err)
	}

	// The account exists at this point; a delivery failure should not
	// undo the registration, the user can re-request the email.
	if err := s.mailer.SendVerificationRequest(ctx, user.Email, token); err != nil {
		s.logger.Error("failed to send verification email",
			zap.String("user_id", user.ID), zap.Error(err))
	}

	return user, nil
}

// Login authenticates a user and issues a bearer token. Unknown email and
// wrong password are indistinguishable; an unverified address is only
// reported once the password has checked out.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	if !user.IsVerified() {
		return "", ErrEmailNotVerified
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	record := &domain.AccessToken{
		UserID:    user.ID,
		TokenHash: hashToken(token),
		ExpiresAt: time.Now().Add(s.jwtManager.TokenExpiry()),
	}
	if err := s.accessTokenRepo.Create(ctx, record); err != nil {
		return "", fmt.Errorf("failed to record access token: %w", err)
	}

	return token, nil
}

// Logout revokes the caller's current bearer token.
func (s *authService) Logout(ctx context.Context, userID, rawToken string) error {
	if err := s.blacklist.AddToken(ctx, rawToken, s.jwtManager.TokenExpiry()); err != nil {
		s.logger.Error("failed to blacklist token",
			zap.String("user_id", userID), zap.Error(err))
	}

	if err := s.accessTokenRepo.DeleteByHash(ctx, hashToken(rawToken)); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("failed to delete access token: %w", err)
		}
	}

	return nil
}

// ValidateToken checks a bearer token against the blacklist, its signature,
// and the issued-token table. A token revoked by user-wide deletion fails the
// table check even though its signature is still valid.
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	blacklisted, err := s.blacklist.IsTokenBlacklisted(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if blacklisted {
		return nil, ErrUnauthorized
	}

	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	if _, err := s.accessTokenRepo.GetByHash(ctx, hashToken(token)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to check issued token: %w", err)
	}

	return claims, nil
}

// hashToken hashes a raw bearer token for storage lookup
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
