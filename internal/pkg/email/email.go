package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"html"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Notifier delivers account notifications to lecturers and students
type Notifier interface {
	SendStudentRegistered(ctx context.Context, toEmail, toName string) error
	SendLecturerWelcome(ctx context.Context, toEmail, toName string) error
	SendLoginAlert(ctx context.Context, toEmail, toName string, at time.Time) error
	SendPasswordResetOTP(ctx context.Context, toEmail, toName, otp string, ttl time.Duration) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
}

// SMTPNotifier implements Notifier over SMTP
type SMTPNotifier struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPNotifier creates a new SMTP backed Notifier
func NewSMTPNotifier(config SMTPConfig, logger zerolog.Logger) *SMTPNotifier {
	if config.FromEmail == "" {
		config.FromEmail = config.Username
	}
	return &SMTPNotifier{
		config: config,
		logger: logger.With().Str("component", "smtp").Logger(),
	}
}

func (s *SMTPNotifier) configured() bool {
	return s.config.Host != "" && s.config.Username != "" && s.config.Password != ""
}

// SendStudentRegistered confirms a student registration
func (s *SMTPNotifier) SendStudentRegistered(ctx context.Context, toEmail, toName string) error {
	body := fmt.Sprintf(`<p>Hello %s,</p>
<p>Your details have been stored in the attendance system. You can now be enrolled on courses.</p>`,
		html.EscapeString(toName))
	return s.send(ctx, toEmail, "Registration successful", body)
}

// SendLecturerWelcome greets a lecturer after sign up
func (s *SMTPNotifier) SendLecturerWelcome(ctx context.Context, toEmail, toName string) error {
	body := fmt.Sprintf(`<p>Hello %s,</p>
<p>Your lecturer account has been created. You can now log in and manage your courses.</p>`,
		html.EscapeString(toName))
	return s.send(ctx, toEmail, "Welcome to the Attendance System", body)
}

// SendLoginAlert tells a lecturer their account was just used to log in
func (s *SMTPNotifier) SendLoginAlert(ctx context.Context, toEmail, toName string, at time.Time) error {
	body := fmt.Sprintf(`<p>Hello %s,</p>
<p>A new login to your account was recorded at %s. If this was not you, reset your password.</p>`,
		html.EscapeString(toName), at.UTC().Format(time.RFC1123))
	return s.send(ctx, toEmail, "New login to your account", body)
}

// SendPasswordResetOTP delivers the one-time passcode for a password reset
func (s *SMTPNotifier) SendPasswordResetOTP(ctx context.Context, toEmail, toName, otp string, ttl time.Duration) error {
	body := fmt.Sprintf(`<p>Hello %s,</p>
<p>Your password reset code is <strong>%s</strong>.</p>
<p>It expires in %d minutes. If you did not request a reset, ignore this email.</p>`,
		html.EscapeString(toName), html.EscapeString(otp), int(ttl.Minutes()))
	return s.send(ctx, toEmail, "Password reset code", body)
}

// send delivers an HTML email. Without credentials it only logs, so local setups work.
func (s *SMTPNotifier) send(ctx context.Context, toEmail, subject, htmlBody string) error {
	if !s.configured() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP credentials not configured - email not sent")
		return nil
	}

	message := s.buildMessage(toEmail, subject, htmlBody)
	if err := s.deliver(ctx, toEmail, message); err != nil {
		s.logger.Error().Err(err).Str("toEmail", toEmail).Str("subject", subject).Msg("Failed to send email")
		return err
	}

	s.logger.Debug().Str("toEmail", toEmail).Str("subject", subject).Msg("Email sent")
	return nil
}

func (s *SMTPNotifier) buildMessage(toEmail, subject, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", toEmail)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

func (s *SMTPNotifier) deliver(ctx context.Context, toEmail string, message []byte) error {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if s.config.UseTLS {
		conn = tls.Client(conn, &tls.Config{ServerName: s.config.Host})
	}

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if !s.config.UseTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: s.config.Host}); err != nil {
				return fmt.Errorf("failed to start TLS: %w", err)
			}
		}
	}

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err := client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(toEmail); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := w.Write(message); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}
