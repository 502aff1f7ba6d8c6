// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/baton/internal/domain/redistribution"
)

// TransitionHandler handles redistribution preview requests.
type TransitionHandler struct {
	deps Dependencies
}

// NewTransitionHandler creates a new transition handler.
func NewTransitionHandler(deps Dependencies) *TransitionHandler {
	return &TransitionHandler{deps: deps}
}

// previewRequest mirrors the OpenAPI schema for POST /transition/preview.
type previewRequest struct {
	DepartingPartnerIDs []string          `json:"departing_partner_ids"`
	Strategy            string            `json:"strategy"`
	CustomAssignments   map[string]string `json:"custom_assignments,omitempty"`
}

func (p previewRequest) validate() error {
	if len(p.DepartingPartnerIDs) == 0 {
		return errors.New("missing departing_partner_ids")
	}
	if p.Strategy == "" {
		return errors.New("missing strategy")
	}
	return nil
}

// HandlePreview handles POST /transition/preview requests. The preview
// never commits a reassignment; it only reports what the chosen
// strategy would do.
func (h *TransitionHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	const op = "api.transition_preview"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	preview, err := h.deps.PreviewTransition(r.Context(), req.DepartingPartnerIDs, req.Strategy, req.CustomAssignments)
	if err != nil {
		switch {
		case errors.Is(err, redistribution.ErrUnknownStrategy):
			writeError(w, http.StatusBadRequest, "unknown_strategy", WrapKind(op, ErrBadRequest, err))
		case isNotFound(err):
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		}
		return
	}
	writeJSON(w, http.StatusOK, preview)
}
