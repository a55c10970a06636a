package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	appconfig "github.com/wolfman30/review-rocket-leads/internal/config"
	"github.com/wolfman30/review-rocket-leads/internal/leads"
	"github.com/wolfman30/review-rocket-leads/internal/notify"
	"github.com/wolfman30/review-rocket-leads/internal/observability/metrics"
	"github.com/wolfman30/review-rocket-leads/pkg/logging"
)

// Mail providers accepted in MAIL_PROVIDER.
const (
	MailProviderSMTP     = "smtp"
	MailProviderSendGrid = "sendgrid"
	MailProviderSES      = "ses"
	MailProviderStub     = "stub"
)

// BuildEmailSender returns the transport selected by cfg.MailProvider.
// Credentials are passed through untouched; a misconfigured relay fails at
// send time.
func BuildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (notify.EmailSender, error) {
	if logger == nil {
		logger = logging.Default()
	}
	provider := strings.ToLower(strings.TrimSpace(cfg.MailProvider))
	if provider == "" {
		provider = MailProviderSMTP
	}
	logger = logger.With("mail_provider", provider)

	switch provider {
	case MailProviderSMTP:
		sender := notify.NewSMTPSender(notify.SMTPConfig{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			Secure:    cfg.SMTPSecure,
			Username:  cfg.SMTPUser,
			Password:  cfg.SMTPPass,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
			Timeout:   cfg.SMTPDialTimeout,
		}, logger)
		if sender == nil {
			return nil, fmt.Errorf("bootstrap: SMTP_HOST required for smtp provider")
		}
		return sender, nil

	case MailProviderSendGrid:
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, logger)
		if sender == nil {
			return nil, fmt.Errorf("bootstrap: SENDGRID_API_KEY required for sendgrid provider")
		}
		return sender, nil

	case MailProviderSES:
		awsCfg, err := LoadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: load aws config: %w", err)
		}
		client := sesv2.NewFromConfig(awsCfg, func(o *sesv2.Options) {
			if endpoint := strings.TrimSpace(cfg.AWSEndpointOverride); endpoint != "" {
				o.BaseEndpoint = aws.String(endpoint)
			}
		})
		return notify.NewSESSender(client, notify.SESConfig{
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, logger), nil

	case MailProviderStub:
		logger.Warn("email delivery disabled, using stub sender")
		return notify.NewStubEmailSender(logger), nil

	default:
		return nil, fmt.Errorf("bootstrap: unknown mail provider %q", cfg.MailProvider)
	}
}

// BuildLeadService wires the intake service from configuration.
func BuildLeadService(cfg *appconfig.Config, sender notify.EmailSender, m *metrics.LeadMetrics, logger *logging.Logger) (*leads.Service, error) {
	if logger == nil {
		logger = logging.Default()
	}
	loc, err := time.LoadLocation(cfg.LeadTimezone)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: LEAD_TIMEZONE: %w", err)
	}
	if strings.TrimSpace(cfg.OwnerEmail) == "" {
		logger.Warn("OWNER_EMAIL not set; owner notifications will fail")
	}
	return leads.NewService(sender, leads.ServiceConfig{
		OwnerEmail: cfg.OwnerEmail,
		Render: leads.RenderOptions{
			IncludeHTML:    cfg.OwnerEmailHTML,
			IncludeRawDump: cfg.OwnerEmailRawDump,
		},
		Location: loc,
	}, m, logger), nil
}
