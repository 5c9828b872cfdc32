package mail

import (
	"fmt"

	"github.com/rs/zerolog"
	gomail "gopkg.in/gomail.v2"
)

// Senderは送信専用。失敗は呼び出し元の処理を止めない前提で使う
type Sender interface {
	SendVerificationEmail(to string, name string, token string) error
	SendResetPasswordEmail(to string, name string, token string) error
}

type SMTPSender struct {
	dialer      *gomail.Dialer
	from        string
	frontendURL string
	logger      zerolog.Logger
}

func NewSMTPSender(host string, port int, user string, pass string, frontendURL string, logger zerolog.Logger) *SMTPSender {
	return &SMTPSender{
		dialer:      gomail.NewDialer(host, port, user, pass),
		from:        user,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

func (s *SMTPSender) SendVerificationEmail(to string, name string, token string) error {
	url := fmt.Sprintf("%s/auth/verify-email?token=%s", s.frontendURL, token)
	body := fmt.Sprintf(`<h1>Welcome %s!</h1>
<p>Please click the link below to verify your email address:</p>
<a href="%s">Verify Email</a>
<p>Or copy and paste this link in your browser:</p>
<p>%s</p>
<p>This link will expire in 24 hours.</p>`, name, url, url)

	return s.send(to, "Verify Your Email - Food Delivery", body)
}

func (s *SMTPSender) SendResetPasswordEmail(to string, name string, token string) error {
	url := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)
	body := fmt.Sprintf(`<h1>Hello %s,</h1>
<p>We received a request to reset your password. Click the link below:</p>
<a href="%s">Reset Password</a>
<p>This link will expire in 15 minutes. If you did not request this, ignore this email.</p>`, name, url)

	return s.send(to, "Reset Your Password - Food Delivery", body)
}

func (s *SMTPSender) send(to string, subject string, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error().Err(err).Str("to", to).Str("subject", subject).Msg("failed to send email")
		return err
	}
	return nil
}
