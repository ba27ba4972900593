// Package notify delivers transactional emails for the verification and
// password reset flows.
package notify

import "context"

// Mailer sends the notification emails the token flows depend on. Delivery is
// synchronous; implementations decide what a missing SMTP configuration
// means (the SMTP mailer skips sending and logs instead of failing).
type Mailer interface {
	// SendVerificationRequest emails a verification link carrying the token
	// to the address being confirmed.
	SendVerificationRequest(ctx context.Context, toEmail, token string) error

	// SendVerificationSuccess confirms that the address has been verified.
	SendVerificationSuccess(ctx context.Context, toEmail string) error

	// SendPasswordResetRequest emails the reset token. callbackURL is an
	// opaque caller-supplied address embedded in the email body; it may be
	// empty.
	SendPasswordResetRequest(ctx context.Context, toEmail, token, callbackURL string) error

	// SendPasswordResetSuccess confirms that the password has been changed.
	SendPasswordResetSuccess(ctx context.Context, toEmail string) error
}
