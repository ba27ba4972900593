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
)

// resetTokenRepository implements ResetTokenRepository interface
type resetTokenRepository struct {
	db *database.Postgres
}

// NewResetTokenRepository creates a new reset token repository
func NewResetTokenRepository(db *database.Postgres) ResetTokenRepository {
	return &resetTokenRepository{db: db}
}

// Upsert stores a reset token keyed by email. Re-requesting a reset replaces
// the token in place and refreshes updated_at, which is what the TTL is
// measured against.
func (r *resetTokenRepository) Upsert(ctx context.Context, reset *domain.PasswordReset) error {
	if reset.ID == "" {
		reset.ID = uuid.New().String()
	}

	now := time.Now()
	if reset.CreatedAt.IsZero() {
		reset.CreatedAt = now
	}
	reset.UpdatedAt = now

	query := `
		INSERT INTO password_resets (id, email, token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE
		SET token = EXCLUDED.token, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.DB.ExecContext(ctx, query,
		reset.ID,
		reset.Email,
		reset.Token,
		reset.CreatedAt,
		reset.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert reset token: %w", err)
	}

	return nil
}

// GetByToken retrieves a pending reset matching both token and email
func (r *resetTokenRepository) GetByToken(ctx context.Context, token, email string) (*domain.PasswordReset, error) {
	query := `
		SELECT id, email, token, created_at, updated_at
		FROM password_resets
		WHERE token = $1 AND email = $2
	`

	reset := &domain.PasswordReset{}
	err := r.db.DB.QueryRowContext(ctx, query, token, email).Scan(
		&reset.ID,
		&reset.Email,
		&reset.Token,
		&reset.CreatedAt,
		&reset.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reset token not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}

	return reset, nil
}

// DeleteByEmail deletes the pending reset for an email
func (r *resetTokenRepository) DeleteByEmail(ctx context.Context, email string) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM password_resets WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("failed to delete reset token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("reset token for email not found: %w", ErrNotFound)
	}

	return nil
}
