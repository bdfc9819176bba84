package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/trailquest/geohunt/internal/hunt"
)

func handleAdminListValidations(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session")
		if sessionID == "" {
			writeError(w, http.StatusBadRequest, "session query parameter required")
			return
		}

		pending, err := store.PendingValidations(r.Context(), sessionID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp := make([]ValidationResponse, 0, len(pending))
		for _, v := range pending {
			resp = append(resp, validationResponse(v))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// AdminResolveRequest approves or rejects a pending validation.
type AdminResolveRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// handleAdminResolveValidation drives the one-way pending → approved or
// rejected transition. Rejection does not revert any checkpoint state —
// reconciling is a separate manual unlock/reset. Acting on a stale id is a
// surfaced warning, not a crash.
func handleAdminResolveValidation(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminResolveRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		status := hunt.ValidationStatus(strings.TrimSpace(req.Status))
		if status != hunt.ValidationApproved && status != hunt.ValidationRejected {
			writeError(w, http.StatusBadRequest, "status must be approved or rejected")
			return
		}

		id := chi.URLParam(r, "validationID")
		v, err := store.ResolveValidation(r.Context(), id, status, req.Notes)
		if errors.Is(err, ErrValidationNotFound) {
			writeError(w, http.StatusNotFound, "validation request not found")
			return
		}
		if errors.Is(err, ErrValidationResolved) {
			writeError(w, http.StatusConflict, "validation request already resolved")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		broker.PublishTeam(v.TeamID, v.SessionID, Event{
			Type:         eventValidationResolved,
			CheckpointID: v.CheckpointID,
			ValidationID: v.ID,
		})

		writeJSON(w, http.StatusOK, validationResponse(v))
	}
}
