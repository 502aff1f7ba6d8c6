// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// SuccessionHandler handles succession report requests.
type SuccessionHandler struct {
	deps Dependencies
}

// NewSuccessionHandler creates a new succession handler.
func NewSuccessionHandler(deps Dependencies) *SuccessionHandler {
	return &SuccessionHandler{deps: deps}
}

// HandleGetReport handles GET /transition/succession requests.
// Departing partners are passed via repeated or comma-separated
// "departing" query parameters.
func (h *SuccessionHandler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.succession_report"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	departing := splitCSV(r.URL.Query()["departing"])

	report, err := h.deps.SuccessionReport(r.Context(), departing)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}
