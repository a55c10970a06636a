package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/wolfman30/review-rocket-leads/pkg/logging"
)

type sendGridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridConfig holds the API key and from mailbox (MAIL_PROVIDER=sendgrid).
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// SendGridSender delivers lead emails through the SendGrid v3 API.
type SendGridSender struct {
	client sendGridClient
	from   Address
	logger *logging.Logger
}

// NewSendGridSender returns nil without an API key.
func NewSendGridSender(cfg SendGridConfig, logger *logging.Logger) *SendGridSender {
	if cfg.APIKey == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SendGridSender{
		client: sendgrid.NewSendClient(cfg.APIKey),
		from:   Address{Name: cfg.FromName, Email: cfg.FromEmail},
		logger: logger,
	}
}

func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) error {
	if s.client == nil {
		return fmt.Errorf("notify: sendgrid client not configured")
	}

	resp, err := s.client.SendWithContext(ctx, s.mailFor(msg))
	if err != nil {
		s.logger.Error("sendgrid send failed", "error", err, "to", logging.MaskEmail(msg.To))
		return fmt.Errorf("notify: sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		s.logger.Error("sendgrid rejected lead email",
			"status", resp.StatusCode,
			"body", resp.Body,
			"to", logging.MaskEmail(msg.To),
		)
		return fmt.Errorf("notify: sendgrid returned status %d", resp.StatusCode)
	}

	s.logger.Info("lead email sent via sendgrid", "to", logging.MaskEmail(msg.To), "subject", msg.Subject, "status", resp.StatusCode)
	return nil
}

// mailFor builds the v3 payload. SendGrid rejects an empty html part, so
// text-only messages repeat the body there.
func (s *SendGridSender) mailFor(msg EmailMessage) *mail.SGMailV3 {
	to := msg.Recipient()
	return mail.NewSingleEmail(
		mail.NewEmail(s.from.Name, s.from.Email),
		msg.Subject,
		mail.NewEmail(to.Name, to.Email),
		msg.Body,
		msg.htmlOrText(),
	)
}

var _ EmailSender = (*SendGridSender)(nil)
