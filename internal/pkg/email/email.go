package email

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

// NotificationService delivers generated credentials to their owner.
// Delivery is best-effort and fire-and-forget: a failure is reported to
// the caller but never reverses an admission decision.
type NotificationService interface {
	SendCredentials(toEmail, fullName, username, password, roleName string) bool
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// SMTPNotificationService implements NotificationService over SMTP
type SMTPNotificationService struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewNotificationService creates a new SMTP-backed NotificationService
func NewNotificationService(config SMTPConfig, logger zerolog.Logger) *SMTPNotificationService {
	return &SMTPNotificationService{
		config: config,
		logger: logger,
	}
}

// SendCredentials emails a username/password pair to a newly approved
// guardian or staff member. Returns true when the message was accepted
// for delivery.
func (s *SMTPNotificationService) SendCredentials(toEmail, fullName, username, password, roleName string) bool {
	// Without SMTP credentials configured, log the payload instead of
	// sending (development setups).
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("username", username).
			Msg("SMTP credentials not configured - credential email not sent. Use the username above for testing.")
		return true
	}

	subject := "Your Access Credentials - School Admission"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Welcome!</h2>
				<p>Hello %s,</p>
				<p>Your admission has been approved and an account with the role <strong>%s</strong> has been created for you.</p>

				<p>Username: <strong>%s</strong><br>
				Password: <strong>%s</strong></p>

				<p>Please change your password after your first login.</p>

				<p>Best regards,<br>The Admissions Office</p>
			</div>
		</body>
		</html>
	`, fullName, roleName, username, password)

	if err := s.sendHTMLEmail(toEmail, subject, body); err != nil {
		s.logger.Error().Err(err).Str("toEmail", toEmail).Msg("Failed to send credential email")
		return false
	}
	return true
}

// sendHTMLEmail sends an HTML email through the configured SMTP server
func (s *SMTPNotificationService) sendHTMLEmail(toEmail, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	from := fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		from, toEmail, subject, body,
	))

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{toEmail}, msg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}
