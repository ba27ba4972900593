package domain

import "time"

// TokenClaims represents the claims carried by a bearer access token.
type TokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Exp    int64  `json:"exp"`
	Iat    int64  `json:"iat"`
}

// IsExpired checks if the token is expired.
func (tc TokenClaims) IsExpired() bool {
	return time.Now().Unix() > tc.Exp
}

// AccessToken is the persisted record of an issued bearer token. Tokens are
// stored by SHA-256 hash so revoking every session of a user is a delete by
// user id.
type AccessToken struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	TokenHash string    `json:"-" db:"token_hash"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// EmailVerification is a pending email confirmation. At most one row exists
// per user; issuing a new one replaces the previous. EmailUpdate holds the
// address being confirmed (the registration email, or the requested new one).
type EmailVerification struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Token       string    `json:"-" db:"token"`
	EmailUpdate string    `json:"email_update" db:"email_update"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// PasswordReset is a pending password reset request, at most one per email.
// The TTL is measured from UpdatedAt: re-requesting a reset re-issues the
// token in place and restarts its clock.
type PasswordReset struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Token     string    `json:"-" db:"token"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
