package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/jskalc/vault-api/internal/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SMTPMailer implements Mailer over plain SMTP.
type SMTPMailer struct {
	cfg    *config.SMTPConfig
	logger *zap.Logger
}

// NewSMTPMailer creates a new SMTP mailer.
func NewSMTPMailer(cfg *config.SMTPConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		logger: logger,
	}
}

// SendVerificationRequest emails the verification link for a pending address.
func (m *SMTPMailer) SendVerificationRequest(ctx context.Context, toEmail, token string) error {
	link := strings.TrimSuffix(m.cfg.VerifyURL, "/") + "/" + token
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Verify your e-mail address</h2>
    <p>Click the link below to verify this e-mail address. The link is valid for 12 hours.</p>
    <p><a href="%s">%s</a></p>
    <p>If you did not request this, you can ignore this message.</p>
  </div>
</body>
</html>`, link, link)

	return m.send(toEmail, "Verify your e-mail address", body)
}

// SendVerificationSuccess confirms a completed verification.
func (m *SMTPMailer) SendVerificationSuccess(ctx context.Context, toEmail string) error {
	body := `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>E-mail verified</h2>
    <p>Your e-mail address has been verified. You can now log in.</p>
  </div>
</body>
</html>`

	return m.send(toEmail, "Your e-mail has been verified", body)
}

// SendPasswordResetRequest emails the reset token, optionally pointing the
// user at a caller-supplied callback address.
func (m *SMTPMailer) SendPasswordResetRequest(ctx context.Context, toEmail, token, callbackURL string) error {
	var callback string
	if callbackURL != "" {
		callback = fmt.Sprintf(`<p><a href="%s">Open the password reset page</a></p>`, callbackURL)
	}

	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Password reset requested</h2>
    <p>Use the token below to reset your password. It is valid for 12 hours.</p>
    <div style="font-size: 14px; font-weight: bold; word-break: break-all;">%s</div>
    %s
    <p>If you did not request a reset, you can ignore this message.</p>
  </div>
</body>
</html>`, token, callback)

	return m.send(toEmail, "Reset your password", body)
}

// SendPasswordResetSuccess confirms a completed password reset.
func (m *SMTPMailer) SendPasswordResetSuccess(ctx context.Context, toEmail string) error {
	body := `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Password changed</h2>
    <p>Your password has been reset. If this was not you, request a new reset immediately.</p>
  </div>
</body>
</html>`

	return m.send(toEmail, "Your password has been reset", body)
}

func (m *SMTPMailer) send(toEmail, subject, htmlBody string) error {
	if m.cfg.Host == "" || m.cfg.FromEmail == "" {
		m.logger.Warn("smtp config missing, skipping notification",
			zap.String("subject", subject))
		return nil
	}
	if strings.TrimSpace(toEmail) == "" {
		m.logger.Warn("email recipient empty, skipping notification",
			zap.String("subject", subject))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.FromEmail)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Info("notification email sent",
		zap.String("to", toEmail),
		zap.String("subject", subject))
	return nil
}
