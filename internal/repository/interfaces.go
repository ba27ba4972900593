package repository

import (
	"context"

	"github.com/jskalc/vault-api/internal/domain"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// DeleteCascade removes the user together with their logins, pending
	// verification and reset tokens, and issued access tokens, all in one
	// transaction. Either everything goes or nothing does.
	DeleteCascade(ctx context.Context, userID string) error
}

// LoginRepository defines methods for stored credential records
type LoginRepository interface {
	Create(ctx context.Context, login *domain.Login) error
	GetByID(ctx context.Context, id string) (*domain.Login, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Login, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	Update(ctx context.Context, login *domain.Login) error
	Delete(ctx context.Context, id string) error
}

// VerificationTokenRepository manages pending email verifications,
// at most one per user
type VerificationTokenRepository interface {
	// Replace deletes any pending verification for the same user before
	// storing the new one. The delete and insert are separate statements;
	// concurrent issuance for one user is a tolerated race.
	Replace(ctx context.Context, verification *domain.EmailVerification) error
	GetByToken(ctx context.Context, token string) (*domain.EmailVerification, error)
	Delete(ctx context.Context, id string) error
}

// ResetTokenRepository manages pending password resets, at most one per email
type ResetTokenRepository interface {
	// Upsert stores a reset token, replacing the token of an existing row
	// for the same email and refreshing its updated_at timestamp.
	Upsert(ctx context.Context, reset *domain.PasswordReset) error
	GetByToken(ctx context.Context, token, email string) (*domain.PasswordReset, error)
	DeleteByEmail(ctx context.Context, email string) error
}

// AccessTokenRepository defines methods for issued bearer token records
type AccessTokenRepository interface {
	Create(ctx context.Context, token *domain.AccessToken) error
	GetByHash(ctx context.Context, tokenHash string) (*domain.AccessToken, error)
	DeleteByHash(ctx context.Context, tokenHash string) error
	DeleteByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) error
}
