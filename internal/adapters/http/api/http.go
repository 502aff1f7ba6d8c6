// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/baton/internal/domain/dedupe"
	"github.com/okian/baton/internal/domain/health"
	"github.com/okian/baton/internal/domain/model"
	"github.com/okian/baton/internal/domain/redistribution"
	"github.com/okian/baton/internal/domain/succession"
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to implementations in other
// packages.
type Dependencies interface {
	dedupe.Deduper

	// Enqueue pushes a client upsert for async processing.
	// Returns false on backpressure.
	Enqueue(ctx context.Context, e model.ClientUpsert) bool

	// Read operations expose the book and the engine.
	Clients(ctx context.Context) []model.Client
	Roster(ctx context.Context) []model.Partner
	HealthScore(ctx context.Context) health.Score
	PreviewTransition(ctx context.Context, departingIDs []string, strategy string, custom map[string]string) (redistribution.Preview, error)
	SuccessionReport(ctx context.Context, departingIDs []string) (succession.Report, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthzHandler    *HealthzHandler
	statsHandler      *StatsHandler
	clientsHandler    *ClientsHandler
	rosterHandler     *RosterHandler
	transitionHandler *TransitionHandler
	successionHandler *SuccessionHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthzHandler:    NewHealthzHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		clientsHandler:    NewClientsHandler(deps),
		rosterHandler:     NewRosterHandler(deps),
		transitionHandler: NewTransitionHandler(deps),
		successionHandler: NewSuccessionHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthzHandler.HandleHealthz, "healthz"))
	mux.HandleFunc("/metrics", s.healthzHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/clients", MetricsMiddleware(s.clientsHandler.Handle, "clients"))
	mux.HandleFunc("/roster", MetricsMiddleware(s.rosterHandler.HandleGetRoster, "roster"))
	mux.HandleFunc("/roster/health", MetricsMiddleware(s.rosterHandler.HandleGetHealth, "roster_health"))
	mux.HandleFunc("/transition/preview", MetricsMiddleware(s.transitionHandler.HandlePreview, "transition_preview"))
	mux.HandleFunc("/transition/succession", MetricsMiddleware(s.successionHandler.HandleGetReport, "transition_succession"))
}

type ackResponse struct {
	Status    string `json:"status"`
	ClientID  string `json:"client_id,omitempty"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404 without tight
// coupling to the packages that produce them.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}

// splitCSV expands repeated and comma-separated query values.
func splitCSV(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
