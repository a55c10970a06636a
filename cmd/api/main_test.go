package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSetupMetricsExposesLeadCounters(t *testing.T) {
	m, handler := setupMetrics(true)
	if handler == nil || m == nil {
		t.Fatalf("expected non-nil handler and metrics")
	}

	m.ObserveSubmission("setup", "sent")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "reviewrocket_leads_submissions_total") {
		t.Fatalf("expected submissions counter to be exported")
	}
}

func TestSetupMetricsDisabled(t *testing.T) {
	m, handler := setupMetrics(false)
	if m != nil || handler != nil {
		t.Fatalf("expected nil metrics when disabled")
	}
}
