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

// verificationTokenRepository implements VerificationTokenRepository interface
type verificationTokenRepository struct {
	db *database.Postgres
}

// NewVerificationTokenRepository creates a new verification token repository
func NewVerificationTokenRepository(db *database.Postgres) VerificationTokenRepository {
	return &verificationTokenRepository{db: db}
}

// Replace deletes any pending verification for the user and stores the new one
func (r *verificationTokenRepository) Replace(ctx context.Context, verification *domain.EmailVerification) error {
	if _, err := r.db.DB.ExecContext(ctx,
		`DELETE FROM email_verifications WHERE user_id = $1`,
		verification.UserID,
	); err != nil {
		return fmt.Errorf("failed to clear previous verification: %w", err)
	}

	if verification.ID == "" {
		verification.ID = uuid.New().String()
	}
	if verification.CreatedAt.IsZero() {
		verification.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO email_verifications (id, user_id, token, email_update, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.DB.ExecContext(ctx, query,
		verification.ID,
		verification.UserID,
		verification.Token,
		verification.EmailUpdate,
		verification.CreatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("verification token already exists: %w", ErrDuplicateToken)
			}
		}
		return fmt.Errorf("failed to create verification token: %w", err)
	}

	return nil
}

// GetByToken retrieves a pending verification by its token string
func (r *verificationTokenRepository) GetByToken(ctx context.Context, token string) (*domain.EmailVerification, error) {
	query := `
		SELECT id, user_id, token, email_update, created_at
		FROM email_verifications
		WHERE token = $1
	`

	verification := &domain.EmailVerification{}
	err := r.db.DB.QueryRowContext(ctx, query, token).Scan(
		&verification.ID,
		&verification.UserID,
		&verification.Token,
		&verification.EmailUpdate,
		&verification.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("verification token not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get verification token: %w", err)
	}

	return verification, nil
}

// Delete deletes a pending verification by ID
func (r *verificationTokenRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM email_verifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete verification token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("verification token with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}
