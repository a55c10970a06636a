package leads

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/wolfman30/review-rocket-leads/pkg/logging"
)

// maxBodyBytes caps a lead form payload.
const maxBodyBytes = 64 << 10

// Submitter processes a decoded submission.
type Submitter interface {
	Submit(ctx context.Context, sub *Submission, origin string) (*Result, error)
}

// Handler handles HTTP requests for lead submissions
type Handler struct {
	service Submitter
	logger  *logging.Logger
}

// NewHandler creates a new leads handler
func NewHandler(service Submitter, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// SendLead handles POST /api/send-lead requests. Every other method gets a
// plain-text 405.
func (h *Handler) SendLead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusMethodNotAllowed)
		io.WriteString(w, "Method Not Allowed")
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("failed to send lead notification", "panic", rec)
			writeJSON(w, http.StatusInternalServerError, Response{OK: false, Error: MailFailureCode})
		}
	}()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.fail(w, err)
		return
	}

	sub, err := DecodeSubmission(body)
	if err != nil {
		h.fail(w, err)
		return
	}

	if _, err := h.service.Submit(r.Context(), sub, r.Header.Get("Origin")); err != nil {
		if errors.Is(err, ErrNameRequired) {
			writeJSON(w, http.StatusBadRequest, Response{OK: false, Error: NameRequiredMessage})
			return
		}
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{OK: true})
}

// fail answers every server-side failure the same way.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	h.logger.Error("failed to send lead notification", "error", err)
	writeJSON(w, http.StatusInternalServerError, Response{OK: false, Error: MailFailureCode})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
