package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	mail "github.com/go-mail/mail"
	"github.com/wolfman30/review-rocket-leads/pkg/logging"
)

// SMTPConfig holds configuration for an SMTP relay.
type SMTPConfig struct {
	Host      string
	Port      int
	Secure    bool // implicit TLS (SMTPS); otherwise STARTTLS when offered
	Username  string
	Password  string
	FromEmail string
	FromName  string
	Timeout   time.Duration
}

type smtpDialer interface {
	DialAndSend(m ...*mail.Message) error
}

// SMTPSender sends emails through an SMTP relay. A fresh connection is
// dialed per message, so the sender holds no connection state.
type SMTPSender struct {
	cfg    SMTPConfig
	dialer smtpDialer
	logger *logging.Logger
}

// NewSMTPSender creates a new SMTP email sender. It returns nil without a host.
func NewSMTPSender(cfg SMTPConfig, logger *logging.Logger) *SMTPSender {
	if cfg.Host == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}

	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.Secure
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}
	if cfg.Timeout > 0 {
		d.Timeout = cfg.Timeout
	}

	return &SMTPSender{
		cfg:    cfg,
		dialer: d,
		logger: logger,
	}
}

// Send sends an email via SMTP.
func (s *SMTPSender) Send(ctx context.Context, msg EmailMessage) error {
	if s.dialer == nil {
		return fmt.Errorf("notify: smtp dialer not configured")
	}
	// go-mail has no context support; honor cancellation before dialing.
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("notify: smtp send aborted: %w", err)
	}

	m := s.buildMessage(msg)
	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("smtp send failed",
			"error", err,
			"reason", DiagnoseSend(err),
			"host", s.cfg.Host,
			"port", s.cfg.Port,
			"to", logging.MaskEmail(msg.To),
		)
		return fmt.Errorf("notify: smtp send failed: %w", err)
	}

	s.logger.Info("email sent via smtp", "to", logging.MaskEmail(msg.To), "subject", msg.Subject, "host", s.cfg.Host)
	return nil
}

func (s *SMTPSender) buildMessage(msg EmailMessage) *mail.Message {
	m := mail.NewMessage()
	if s.cfg.FromName != "" {
		m.SetAddressHeader("From", s.cfg.FromEmail, s.cfg.FromName)
	} else {
		m.SetHeader("From", s.cfg.FromEmail)
	}
	if msg.ToName != "" {
		m.SetAddressHeader("To", msg.To, msg.ToName)
	} else {
		m.SetHeader("To", msg.To)
	}
	m.SetHeader("Subject", msg.Subject)

	// multipart/alternative when both parts exist
	switch {
	case msg.Body != "" && msg.HTML != "":
		m.SetBody("text/plain", msg.Body)
		m.AddAlternative("text/html", msg.HTML)
	case msg.HTML != "":
		m.SetBody("text/html", msg.HTML)
	default:
		m.SetBody("text/plain", msg.Body)
	}
	return m
}

var _ EmailSender = (*SMTPSender)(nil)
