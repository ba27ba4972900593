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

// loginRepository implements LoginRepository interface
type loginRepository struct {
	db *database.Postgres
}

// NewLoginRepository creates a new login repository
func NewLoginRepository(db *database.Postgres) LoginRepository {
	return &loginRepository{db: db}
}

// Create creates a new login record in the database
func (r *loginRepository) Create(ctx context.Context, login *domain.Login) error {
	query := `
		INSERT INTO logins (id, user_id, website_name, website_address, domain, username, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	if login.ID == "" {
		login.ID = uuid.New().String()
	}

	now := time.Now()
	if login.CreatedAt.IsZero() {
		login.CreatedAt = now
	}
	if login.UpdatedAt.IsZero() {
		login.UpdatedAt = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		login.ID,
		login.UserID,
		login.WebsiteName,
		login.WebsiteAddress,
		login.Domain,
		login.Username,
		login.Password,
		login.CreatedAt,
		login.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create login: %w", err)
	}

	return nil
}

// GetByID retrieves a login record by ID
func (r *loginRepository) GetByID(ctx context.Context, id string) (*domain.Login, error) {
	query := `
		SELECT id, user_id, website_name, website_address, domain, username, password, created_at, updated_at
		FROM logins
		WHERE id = $1
	`

	login := &domain.Login{}
	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(
		&login.ID,
		&login.UserID,
		&login.WebsiteName,
		&login.WebsiteAddress,
		&login.Domain,
		&login.Username,
		&login.Password,
		&login.CreatedAt,
		&login.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("login with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get login by id: %w", err)
	}

	return login, nil
}

// ListByOwner retrieves a page of login records owned by a user
func (r *loginRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Login, error) {
	query := `
		SELECT id, user_id, website_name, website_address, domain, username, password, created_at, updated_at
		FROM logins
		WHERE user_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.DB.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list logins by owner: %w", err)
	}
	defer rows.Close()

	var logins []*domain.Login
	for rows.Next() {
		login := &domain.Login{}
		err := rows.Scan(
			&login.ID,
			&login.UserID,
			&login.WebsiteName,
			&login.WebsiteAddress,
			&login.Domain,
			&login.Username,
			&login.Password,
			&login.CreatedAt,
			&login.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan login: %w", err)
		}

		logins = append(logins, login)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate logins: %w", err)
	}

	return logins, nil
}

// CountByOwner counts login records owned by a user
func (r *loginRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	query := `SELECT COUNT(*) FROM logins WHERE user_id = $1`

	var count int
	if err := r.db.DB.QueryRowContext(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count logins by owner: %w", err)
	}

	return count, nil
}

// Update updates an existing login record. The owning user is deliberately
// not part of the statement: ownership never changes after creation.
func (r *loginRepository) Update(ctx context.Context, login *domain.Login) error {
	query := `
		UPDATE logins
		SET website_name = $2, website_address = $3, domain = $4, username = $5, password = $6, updated_at = $7
		WHERE id = $1
	`

	login.UpdatedAt = time.Now()

	result, err := r.db.DB.ExecContext(ctx, query,
		login.ID,
		login.WebsiteName,
		login.WebsiteAddress,
		login.Domain,
		login.Username,
		login.Password,
		login.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update login: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("login with id %s not found: %w", login.ID, ErrNotFound)
	}

	return nil
}

// Delete deletes a login record by ID
func (r *loginRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM logins WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete login: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("login with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}
