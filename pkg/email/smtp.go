package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

type smtpSender struct {
	config Config
	smtp   SMTPConfig
	auth   smtp.Auth
}

// NewSMTPSender creates a sender backed by a plain SMTP server, for
// deployments that deliver through their own relay instead of a provider API.
func NewSMTPSender(cfg Config, smtpCfg SMTPConfig) (Sender, error) {
	if smtpCfg.Host == "" {
		return nil, fmt.Errorf("%w: Host is required", ErrInvalidConfig)
	}
	if smtpCfg.Port <= 0 || smtpCfg.Port > 65535 {
		return nil, fmt.Errorf("%w: Port must be between 1 and 65535", ErrInvalidConfig)
	}
	if smtpCfg.Username == "" {
		return nil, fmt.Errorf("%w: Username is required", ErrInvalidConfig)
	}
	if smtpCfg.Password == "" {
		return nil, fmt.Errorf("%w: Password is required", ErrInvalidConfig)
	}
	if smtpCfg.TLSMode != "starttls" && smtpCfg.TLSMode != "tls" && smtpCfg.TLSMode != "plain" {
		return nil, fmt.Errorf("%w: TLSMode must be starttls, tls, or plain", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" || !emailRegex.MatchString(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	if cfg.ReplyToEmail == "" || !emailRegex.MatchString(cfg.ReplyToEmail) {
		return nil, fmt.Errorf("%w: ReplyToEmail must be a valid email address", ErrInvalidConfig)
	}

	return &smtpSender{
		config: cfg,
		smtp:   smtpCfg,
		auth:   smtp.PlainAuth("", smtpCfg.Username, smtpCfg.Password, smtpCfg.Host),
	}, nil
}

// Send delivers the message over SMTP. The transaction runs synchronously;
// context cancellation is honored only before the dial, matching the
// underlying net/smtp behavior.
func (s *smtpSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	if err := msg.Validate(); err != nil {
		return err
	}

	raw := s.buildMessage(msg)
	addr := net.JoinHostPort(s.smtp.Host, strconv.Itoa(s.smtp.Port))

	var err error
	switch s.smtp.TLSMode {
	case "tls":
		err = s.sendWithTLS(addr, msg.To, raw)
	case "starttls":
		err = s.sendWithSTARTTLS(addr, msg.To, raw)
	case "plain":
		err = s.sendPlain(addr, msg.To, raw)
	}
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

// buildMessage creates the MIME-formatted payload. Plain-text messages get
// minimal headers only; HTML messages carry the full set.
func (s *smtpSender) buildMessage(msg Message) []byte {
	replyTo := s.config.ReplyToEmail
	if msg.ReplyTo != "" {
		replyTo = msg.ReplyTo
	}

	var b strings.Builder
	writeHeader := func(k, v string) {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\r\n")
	}

	writeHeader("From", s.config.SenderEmail)
	writeHeader("To", msg.To)
	writeHeader("Reply-To", replyTo)
	writeHeader("Subject", msg.Subject)

	if msg.IsPlainText() {
		writeHeader("Content-Type", `text/plain; charset="UTF-8"`)
		b.WriteString("\r\n")
		b.WriteString(msg.BodyText)
		return []byte(b.String())
	}

	writeHeader("MIME-Version", "1.0")
	writeHeader("Content-Type", `text/html; charset="UTF-8"`)
	writeHeader("Date", time.Now().Format(time.RFC1123Z))
	writeHeader("Message-ID", fmt.Sprintf("<%d@%s>", time.Now().UnixNano(), s.smtp.Host))
	b.WriteString("\r\n")
	b.WriteString(msg.BodyHTML)
	return []byte(b.String())
}

func (s *smtpSender) sendWithTLS(addr, rcpt string, raw []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.smtp.Host})
	if err != nil {
		return fmt.Errorf("failed to connect with TLS: %w", err)
	}
	defer func() { _ = conn.Close() }()

	client, err := smtp.NewClient(conn, s.smtp.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer func() { _ = client.Close() }()

	return s.transact(client, rcpt, raw)
}

func (s *smtpSender) sendWithSTARTTLS(addr, rcpt string, raw []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() { _ = client.Close() }()

	if err := client.StartTLS(&tls.Config{ServerName: s.smtp.Host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	return s.transact(client, rcpt, raw)
}

func (s *smtpSender) sendPlain(addr, rcpt string, raw []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() { _ = client.Close() }()

	return s.transact(client, rcpt, raw)
}

func (s *smtpSender) transact(client *smtp.Client, rcpt string, raw []byte) error {
	if err := client.Auth(s.auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	if err := client.Mail(s.config.SenderEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(rcpt); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := writer.Write(raw); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	// Quit errors are non-fatal: the message is already accepted and some
	// servers drop the connection right after DATA.
	_ = client.Quit()
	return nil
}
