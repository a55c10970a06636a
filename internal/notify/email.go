package notify

import (
	"context"
	"fmt"

	"github.com/wolfman30/review-rocket-leads/pkg/logging"
)

// EmailSender delivers one lead email. SMTP, SendGrid and SES implement it.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// Address is a mailbox with an optional display name.
type Address struct {
	Name  string
	Email string
}

// String renders "Name <email>", or the bare address without a name.
func (a Address) String() string {
	if a.Name == "" {
		return a.Email
	}
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// EmailMessage is a rendered lead email. The from address belongs to the
// sender's configuration.
type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	Body    string // plain text, always set
	HTML    string // optional alternative
}

// Recipient returns the To mailbox.
func (m EmailMessage) Recipient() Address {
	return Address{Name: m.ToName, Email: m.To}
}

// htmlOrText is the HTML part, or the plain body for messages rendered
// without one. Providers that require an HTML part use it.
func (m EmailMessage) htmlOrText() string {
	if m.HTML != "" {
		return m.HTML
	}
	return m.Body
}

// StubEmailSender logs lead emails instead of delivering them
// (MAIL_PROVIDER=stub).
type StubEmailSender struct {
	logger *logging.Logger
}

func NewStubEmailSender(logger *logging.Logger) *StubEmailSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubEmailSender{logger: logger}
}

func (s *StubEmailSender) Send(_ context.Context, msg EmailMessage) error {
	s.logger.Info("stub email sender: not delivering",
		"to", logging.MaskEmail(msg.To),
		"subject", msg.Subject,
		"html", msg.HTML != "",
	)
	return nil
}

var _ EmailSender = (*StubEmailSender)(nil)
