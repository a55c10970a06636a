package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appconfig "github.com/wolfman30/review-rocket-leads/internal/config"
	"github.com/wolfman30/review-rocket-leads/internal/notify"
	"github.com/wolfman30/review-rocket-leads/pkg/logging"
)

func baseConfig() *appconfig.Config {
	return &appconfig.Config{
		MailProvider:    "smtp",
		SMTPHost:        "smtp.example.com",
		SMTPPort:        465,
		SMTPSecure:      true,
		FromEmail:       "hello@reviewrocket.ai",
		OwnerEmail:      "owner@reviewrocket.ai",
		AWSRegion:       "us-east-1",
		LeadTimezone:    "UTC",
		SMTPDialTimeout: time.Second,
	}
}

func TestBuildEmailSender_Providers(t *testing.T) {
	ctx := context.Background()
	logger := logging.Discard()

	t.Run("smtp", func(t *testing.T) {
		sender, err := BuildEmailSender(ctx, baseConfig(), logger)
		require.NoError(t, err)
		assert.IsType(t, &notify.SMTPSender{}, sender)
	})

	t.Run("empty defaults to smtp", func(t *testing.T) {
		cfg := baseConfig()
		cfg.MailProvider = ""
		sender, err := BuildEmailSender(ctx, cfg, logger)
		require.NoError(t, err)
		assert.IsType(t, &notify.SMTPSender{}, sender)
	})

	t.Run("smtp without host", func(t *testing.T) {
		cfg := baseConfig()
		cfg.SMTPHost = ""
		_, err := BuildEmailSender(ctx, cfg, logger)
		assert.Error(t, err)
	})

	t.Run("sendgrid", func(t *testing.T) {
		cfg := baseConfig()
		cfg.MailProvider = "sendgrid"
		cfg.SendGridAPIKey = "SG.test"
		sender, err := BuildEmailSender(ctx, cfg, logger)
		require.NoError(t, err)
		assert.IsType(t, &notify.SendGridSender{}, sender)
	})

	t.Run("sendgrid without key", func(t *testing.T) {
		cfg := baseConfig()
		cfg.MailProvider = "sendgrid"
		_, err := BuildEmailSender(ctx, cfg, logger)
		assert.Error(t, err)
	})

	t.Run("ses", func(t *testing.T) {
		cfg := baseConfig()
		cfg.MailProvider = "SES"
		cfg.AWSAccessKeyID = "test"
		cfg.AWSSecretAccessKey = "test"
		cfg.AWSEndpointOverride = "http://localhost:4566"
		sender, err := BuildEmailSender(ctx, cfg, logger)
		require.NoError(t, err)
		assert.IsType(t, &notify.SESSender{}, sender)
	})

	t.Run("stub", func(t *testing.T) {
		cfg := baseConfig()
		cfg.MailProvider = "stub"
		sender, err := BuildEmailSender(ctx, cfg, logger)
		require.NoError(t, err)
		assert.IsType(t, &notify.StubEmailSender{}, sender)
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := baseConfig()
		cfg.MailProvider = "pigeon"
		_, err := BuildEmailSender(ctx, cfg, logger)
		assert.ErrorContains(t, err, "pigeon")
	})
}

func TestBuildLeadService(t *testing.T) {
	logger := logging.Discard()

	svc, err := BuildLeadService(baseConfig(), notify.NewStubEmailSender(logger), nil, logger)
	require.NoError(t, err)
	assert.NotNil(t, svc)

	cfg := baseConfig()
	cfg.LeadTimezone = "Mars/Olympus_Mons"
	_, err = BuildLeadService(cfg, notify.NewStubEmailSender(logger), nil, logger)
	assert.Error(t, err)
}

func TestBuildLeadService_NilLoggerWithoutOwner(t *testing.T) {
	cfg := baseConfig()
	cfg.OwnerEmail = ""

	svc, err := BuildLeadService(cfg, notify.NewStubEmailSender(logging.Discard()), nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}
