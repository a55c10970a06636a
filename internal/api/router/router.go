package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpmiddleware "github.com/wolfman30/review-rocket-leads/internal/http/middleware"
	"github.com/wolfman30/review-rocket-leads/internal/leads"
	"github.com/wolfman30/review-rocket-leads/pkg/logging"
)

// DefaultLeadRoute is where lead forms post when no route is configured.
const DefaultLeadRoute = "/api/send-lead"

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	LeadsHandler       *leads.Handler
	LeadRoute          string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// The lead handler answers every method itself so non-POST requests get
	// its plain-text 405 rather than chi's.
	route := cfg.LeadRoute
	if route == "" {
		route = DefaultLeadRoute
	}
	r.HandleFunc(route, cfg.LeadsHandler.SendLead)

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
