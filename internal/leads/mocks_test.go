package leads

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wolfman30/review-rocket-leads/internal/notify"
	"github.com/wolfman30/review-rocket-leads/pkg/logging"
)

// mockEmailSender records sends and fails for the configured recipient.
type mockEmailSender struct {
	mu     sync.Mutex
	sent   []notify.EmailMessage
	calls  int
	failOn string // fail if To matches this
	err    error  // fail every call
}

func (m *mockEmailSender) Send(_ context.Context, msg notify.EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	if m.failOn != "" && msg.To == m.failOn {
		return errors.New("mock email error")
	}
	m.sent = append(m.sent, msg)
	return nil
}

const testOwner = "owner@reviewrocket.ai"

var fixedNow = time.Date(2026, 10, 18, 15, 4, 5, 0, time.UTC)

func newTestService(sender notify.EmailSender, opts RenderOptions) *Service {
	svc := NewService(sender, ServiceConfig{
		OwnerEmail: testOwner,
		Render:     opts,
		Location:   time.UTC,
	}, nil, logging.Discard())
	svc.now = func() time.Time { return fixedNow }
	return svc
}
