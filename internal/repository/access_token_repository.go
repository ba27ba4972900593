package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jskalc/vault-api/internal/domain"
	"github.com/jskalc/vault-api/pkg/database"
	"github.com/lib/pq"
)

// accessTokenRepository implements AccessTokenRepository interface
type accessTokenRepository struct {
	db *database.Postgres
}

// NewAccessTokenRepository creates a new access token repository
func NewAccessTokenRepository(db *database.Postgres) AccessTokenRepository {
	return &accessTokenRepository{db: db}
}

// Create records an issued bearer token
func (r *accessTokenRepository) Create(ctx context.Context, token *domain.AccessToken) error {
	query := `
		INSERT INTO access_tokens (id, user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		token.ID,
		token.UserID,
		token.TokenHash,
		token.ExpiresAt,
		token.CreatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("token with hash already exists: %w", ErrDuplicateToken)
			}
		}
		return fmt.Errorf("failed to create access token: %w", err)
	}

	return nil
}

// GetByHash retrieves an access token record by its hash
func (r *accessTokenRepository) GetByHash(ctx context.Context, tokenHash string) (*domain.AccessToken, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, created_at
		FROM access_tokens
		WHERE token_hash = $1
	`

	token := &domain.AccessToken{}
	err := r.db.DB.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("access token not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}

	return token, nil
}

// DeleteByHash deletes an access token record by its hash
func (r *accessTokenRepository) DeleteByHash(ctx context.Context, tokenHash string) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM access_tokens WHERE token_hash = $1`, tokenHash)
	if err != nil {
		return fmt.Errorf("failed to delete access token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("access token not found: %w", ErrNotFound)
	}

	return nil
}

// DeleteByUserID revokes every token issued to a user
func (r *accessTokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.DB.ExecContext(ctx, `DELETE FROM access_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete access tokens by user id: %w", err)
	}

	return nil
}

// DeleteExpired deletes all expired access token records
func (r *accessTokenRepository) DeleteExpired(ctx context.Context) error {
	_, err := r.db.DB.ExecContext(ctx, `DELETE FROM access_tokens WHERE expires_at < $1`, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete expired access tokens: %w", err)
	}

	return nil
}
