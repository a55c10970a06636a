package leads

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/review-rocket-leads/internal/notify"
	"github.com/wolfman30/review-rocket-leads/internal/observability/metrics"
	"github.com/wolfman30/review-rocket-leads/pkg/logging"
)

var leadsTracer = otel.Tracer("reviewrocket.internal.leads")

// Submission outcomes, as reported in metrics.
const (
	OutcomeSent    = "sent"
	OutcomeInvalid = "invalid"
	OutcomeDropped = "dropped"
	OutcomeFailed  = "failed"
)

// ServiceConfig is the static configuration of the intake service.
type ServiceConfig struct {
	OwnerEmail string
	Render     RenderOptions
	Location   *time.Location
}

// Service validates lead submissions and sends the resulting emails.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	sender  notify.EmailSender
	cfg     ServiceConfig
	metrics *metrics.LeadMetrics
	logger  *logging.Logger
	now     func() time.Time
}

// NewService creates a lead intake service. metrics may be nil.
func NewService(sender notify.EmailSender, cfg ServiceConfig, m *metrics.LeadMetrics, logger *logging.Logger) *Service {
	if sender == nil {
		panic("leads: email sender required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Service{
		sender:  sender,
		cfg:     cfg,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// FollowUpOutcome reports what happened to the visitor follow-up. A failed
// follow-up never fails the submission.
type FollowUpOutcome struct {
	Kind      FollowUpKind
	Attempted bool
	Err       error
	Reason    string
}

// Sent reports whether the follow-up went out.
func (o FollowUpOutcome) Sent() bool {
	return o.Attempted && o.Err == nil
}

// Result describes a processed submission.
type Result struct {
	Lead     Lead
	Dropped  bool // honeypot hit; nothing was sent
	FollowUp FollowUpOutcome
}

// Submit processes one submission. It returns ErrNameRequired for invalid
// submissions and a wrapped transport error when the owner notification
// cannot be sent. Everything after the owner send is best-effort.
func (s *Service) Submit(ctx context.Context, sub *Submission, origin string) (*Result, error) {
	ctx, span := leadsTracer.Start(ctx, "leads.submit")
	defer span.End()

	source := metricSource(sub.Source.Text)
	span.SetAttributes(attribute.String("lead.source", source))

	if err := sub.Validate(); err != nil {
		s.metrics.ObserveSubmission(source, OutcomeInvalid)
		span.SetAttributes(attribute.String("lead.outcome", OutcomeInvalid))
		return nil, err
	}

	if sub.IsBot() {
		s.logger.Info("bot detected, ignoring submission", "source", source)
		s.metrics.ObserveSubmission(source, OutcomeDropped)
		span.SetAttributes(attribute.String("lead.outcome", OutcomeDropped))
		return &Result{Dropped: true}, nil
	}

	lead := NewLead(sub, s.now().In(s.cfg.Location), origin)

	if err := s.sendOwnerNotification(ctx, lead); err != nil {
		s.metrics.ObserveSubmission(source, OutcomeFailed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "owner notification failed")
		return nil, err
	}

	res := &Result{Lead: lead, FollowUp: s.sendFollowUp(ctx, lead)}

	s.metrics.ObserveSubmission(source, OutcomeSent)
	span.SetAttributes(
		attribute.String("lead.outcome", OutcomeSent),
		attribute.String("lead.follow_up", string(res.FollowUp.Kind)),
		attribute.Bool("lead.follow_up_sent", res.FollowUp.Sent()),
	)
	s.logger.Info("lead notification emails sent",
		"lead_name", lead.Name,
		"source", lead.Source,
		"follow_up", string(res.FollowUp.Kind),
		"follow_up_sent", res.FollowUp.Sent(),
	)
	return res, nil
}

func (s *Service) sendOwnerNotification(ctx context.Context, lead Lead) error {
	ctx, span := leadsTracer.Start(ctx, "leads.owner_notification")
	defer span.End()

	msg, err := RenderOwnerNotification(lead, s.cfg.OwnerEmail, s.cfg.Render)
	if err != nil {
		return err
	}
	if err := s.send(ctx, "owner", msg); err != nil {
		span.RecordError(err)
		return fmt.Errorf("leads: owner notification: %w", err)
	}
	return nil
}

// sendFollowUp sends at most one visitor email and reports the outcome
// instead of an error.
func (s *Service) sendFollowUp(ctx context.Context, lead Lead) FollowUpOutcome {
	kind := ChooseFollowUp(lead)
	msg, ok := RenderFollowUp(lead, kind)
	if !ok {
		return FollowUpOutcome{Kind: kind}
	}

	ctx, span := leadsTracer.Start(ctx, "leads.follow_up", trace.WithAttributes(
		attribute.String("lead.follow_up", string(kind)),
	))
	defer span.End()

	out := FollowUpOutcome{Kind: kind, Attempted: true}
	if err := s.send(ctx, "follow_up_"+string(kind), msg); err != nil {
		out.Err = err
		out.Reason = notify.DiagnoseSend(err)
		span.RecordError(err)
		s.logger.Warn("failed to send visitor email",
			"error", err,
			"reason", out.Reason,
			"follow_up", string(kind),
			"to", logging.MaskEmail(lead.Email),
		)
	}
	return out
}

func (s *Service) send(ctx context.Context, kind string, msg notify.EmailMessage) error {
	start := time.Now()
	err := s.sender.Send(ctx, msg)
	status := "sent"
	if err != nil {
		status = notify.DiagnoseSend(err)
	}
	s.metrics.ObserveSend(kind, status, time.Since(start).Seconds())
	return err
}

// metricSource keeps the source label bounded; source is free text.
func metricSource(source string) string {
	switch source {
	case SourceFeedback, SourceSetup:
		return source
	default:
		return SourceUnknown
	}
}
