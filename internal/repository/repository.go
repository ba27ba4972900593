package repository

import (
	"github.com/jskalc/vault-api/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User              UserRepository
	Login             LoginRepository
	VerificationToken VerificationTokenRepository
	ResetToken        ResetTokenRepository
	AccessToken       AccessTokenRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User:              NewUserRepository(db),
		Login:             NewLoginRepository(db),
		VerificationToken: NewVerificationTokenRepository(db),
		ResetToken:        NewResetTokenRepository(db),
		AccessToken:       NewAccessTokenRepository(db),
	}
}
