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

// userRepository implements UserRepository interface
type userRepository struct {
	db *database.Postgres
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Postgres) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user in the database
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, surname, email, password_hash, email_verified_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}

	var verifiedAt sql.NullTime
	if user.EmailVerifiedAt != nil {
		verifiedAt = sql.NullTime{Time: *user.EmailVerifiedAt, Valid: true}
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Surname,
		user.Email,
		user.PasswordHash,
		verifiedAt,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("user with email %s already exists: %w", user.Email, ErrDuplicateEmail)
			}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, name, surname, email, password_hash, email_verified_at, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	return r.scanUser(r.db.DB.QueryRowContext(ctx, query, email), fmt.Sprintf("email %s", email))
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, name, surname, email, password_hash, email_verified_at, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	return r.scanUser(r.db.DB.QueryRowContext(ctx, query, id), fmt.Sprintf("id %s", id))
}

func (r *userRepository) scanUser(row *sql.Row, key string) (*domain.User, error) {
	user := &domain.User{}
	var verifiedAt sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Surname,
		&user.Email,
		&user.PasswordHash,
		&verifiedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with %s not found: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", key, err)
	}

	if verifiedAt.Valid {
		user.EmailVerifiedAt = &verifiedAt.Time
	}

	return user, nil
}

// Update updates an existing user
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = $2, surname = $3, email = $4, password_hash = $5, email_verified_at = $6, updated_at = $7
		WHERE id = $1
	`

	var verifiedAt sql.NullTime
	if user.EmailVerifiedAt != nil {
		verifiedAt = sql.NullTime{Time: *user.EmailVerifiedAt, Valid: true}
	}

	user.UpdatedAt = time.Now()

	result, err := r.db.DB.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Surname,
		user.Email,
		user.PasswordHash,
		verifiedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("user with email %s already exists: %w", user.Email, ErrDuplicateEmail)
			}
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user with id %s not found: %w", user.ID, ErrNotFound)
	}

	return nil
}

// DeleteCascade removes the user and everything they own in one transaction.
// Partial deletes must never be user-visible, so any failure rolls back the
// whole operation.
func (r *userRepository) DeleteCascade(ctx context.Context, userID string) error {
	tx, err := r.db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	statements := []string{
		`DELETE FROM logins WHERE user_id = $1`,
		`DELETE FROM email_verifications WHERE user_id = $1`,
		`DELETE FROM password_resets WHERE email = (SELECT email FROM users WHERE id = $1)`,
		`DELETE FROM access_tokens WHERE user_id = $1`,
	}

	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, userID); err != nil {
			return fmt.Errorf("failed to cascade user deletion: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user with id %s not found: %w", userID, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user deletion: %w", err)
	}

	return nil
}
