// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// RosterHandler handles roster and health score requests.
type RosterHandler struct {
	deps Dependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps Dependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

// HandleGetRoster handles GET /roster requests.
func (h *RosterHandler) HandleGetRoster(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Roster(r.Context()))
}

// healthResponse carries the composite score and its sub-scores. The
// diagnostic behind a degraded score is logged server-side only.
type healthResponse struct {
	Composite     int     `json:"composite"`
	RevenueScore  float64 `json:"revenue_score"`
	CapacityScore float64 `json:"capacity_score"`
	OverloadScore float64 `json:"overload_score"`
	Degraded      bool    `json:"degraded"`
}

// HandleGetHealth handles GET /roster/health requests.
func (h *RosterHandler) HandleGetHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	score := h.deps.HealthScore(r.Context())
	writeJSON(w, http.StatusOK, healthResponse{
		Composite:     score.Composite,
		RevenueScore:  score.RevenueScore,
		CapacityScore: score.CapacityScore,
		OverloadScore: score.OverloadScore,
		Degraded:      score.Degraded,
	})
}
