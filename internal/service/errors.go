package service

import "errors"

// Business-rule errors surfaced to the HTTP layer. Handlers translate these
// into the response envelope and status code each endpoint promises.
var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password; the two cases are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailNotVerified is only returned after the password has been
	// confirmed correct.
	ErrEmailNotVerified = errors.New("email address is not verified")

	// ErrEmailTaken signals an email uniqueness conflict.
	ErrEmailTaken = errors.New("email is already in use")

	// ErrUserNotFound signals a lookup miss by business key (email or id)
	// inside a flow.
	ErrUserNotFound = errors.New("user not found")

	// ErrNotFound signals a missing credential record.
	ErrNotFound = errors.New("resource does not exist")

	// ErrForbidden signals an authenticated caller acting on a record they
	// do not own.
	ErrForbidden = errors.New("caller does not own this resource")

	// ErrInvalidToken covers forged, consumed and expired flow tokens
	// indistinguishably.
	ErrInvalidToken = errors.New("token is invalid")

	// ErrNoLogins reports an owner with zero credential records.
	ErrNoLogins = errors.New("user does not own any logins")

	// ErrUnauthorized signals a missing or revoked bearer token.
	ErrUnauthorized = errors.New("unauthorized")
)
