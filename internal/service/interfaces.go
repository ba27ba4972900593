package service

import (
	"context"
	"time"

	"github.com/jskalc/vault-api/internal/domain"
	"github.com/jskalc/vault-api/internal/dto"
)

// AuthService defines registration, login and bearer token operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (string, error)
	Logout(ctx context.Context, userID, rawToken string) error
	ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error)
}

// UserService defines self-service account operations
type UserService interface {
	Show(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*domain.User, error)
	Delete(ctx context.Context, userID string) error
}

// LoginService defines owner-scoped credential record operations. Every
// method takes the authenticated principal and re-checks ownership against
// the stored record inside the same call.
type LoginService interface {
	Create(ctx context.Context, ownerID string, req *dto.CreateLoginRequest) (*domain.Login, error)
	Get(ctx context.Context, principalID, id string) (*domain.Login, error)
	List(ctx context.Context, principalID string, page, perPage int) ([]*domain.Login, int, error)
	Update(ctx context.Context, principalID, id string, req *dto.UpdateLoginRequest) (*domain.Login, error)
	Delete(ctx context.Context, principalID, id string) error
}

// VerificationService drives the email verification flow
type VerificationService interface {
	RequestChange(ctx context.Context, userID, emailUpdate string) error
	Verify(ctx context.Context, token string) error
}

// ResetService drives the password reset flow
type ResetService interface {
	Request(ctx context.Context, req *dto.PasswordCreateRequest) error
	Reset(ctx context.Context, req *dto.PasswordResetRequest) error
}

// TokenBlacklist marks raw bearer tokens as revoked ahead of their expiry
type TokenBlacklist interface {
	AddToken(ctx context.Context, token string, expiry time.Duration) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}
