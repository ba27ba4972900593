package domain

import "time"

// User represents a registered account. EmailVerifiedAt is nil until the
// verification flow confirms the address; unverified users cannot log in.
type User struct {
	ID              string     `json:"id" db:"id"`
	Name            string     `json:"name" db:"name"`
	Surname         string     `json:"surname" db:"surname"`
	Email           string     `json:"email" db:"email"`
	PasswordHash    string     `json:"-" db:"password_hash"`
	EmailVerifiedAt *time.Time `json:"email_verified_at" db:"email_verified_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// IsVerified reports whether the user's email address has been confirmed.
func (u *User) IsVerified() bool {
	return u.EmailVerifiedAt != nil
}
