// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/baton/internal/domain/model"
)

// ClientsHandler handles client book requests.
type ClientsHandler struct {
	deps Dependencies
}

// NewClientsHandler creates a new clients handler.
func NewClientsHandler(deps Dependencies) *ClientsHandler {
	return &ClientsHandler{deps: deps}
}

// Handle dispatches /clients by method.
func (h *ClientsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handlePost(w, r)
	case http.MethodGet:
		h.handleGet(w, r)
	default:
		http.NotFound(w, r)
	}
}

// upsertRequest mirrors the OpenAPI schema for POST /clients.
type upsertRequest struct {
	EventID string       `json:"event_id"`
	Client  model.Client `json:"client"`
}

func (u upsertRequest) validate() error {
	switch {
	case strings.TrimSpace(u.EventID) == "":
		return errors.New("missing event_id")
	case strings.TrimSpace(u.Client.Name) == "":
		return errors.New("missing client.name")
	}
	return nil
}

// handlePost enqueues a client upsert for asynchronous ingestion.
func (h *ClientsHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_client"
	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	// Idempotency check - mark as seen first.
	if h.deps.SeenAndRecord(r.Context(), req.EventID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}

	if ok := h.deps.Enqueue(r.Context(), model.ClientUpsert{EventID: req.EventID, Client: req.Client}); !ok {
		// Roll back the "seen" status since enqueue failed.
		h.deps.Unrecord(r.Context(), req.EventID)
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", ClientID: req.Client.ID, Duplicate: false})
}

// handleGet returns the current book snapshot in insertion order.
func (h *ClientsHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Clients(r.Context()))
}
