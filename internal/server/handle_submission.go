package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trailquest/geohunt/internal/hunt"
)

// SubmissionRequest creates a manual-validation request for a checkpoint.
// Data is a free-form payload reference (photo URL, text, ...).
type SubmissionRequest struct {
	CheckpointID int    `json:"checkpointId"`
	Data         string `json:"data"`
}

type SubmissionResponse struct {
	ValidationID string `json:"validationId"`
	Status       string `json:"status"`
}

// handleSubmission records a submission for admin review. Multiple pending
// requests for the same team/checkpoint pair may coexist — resubmitting is
// allowed and never deduplicated.
func handleSubmission(store Store, broker *Broker, catalog hunt.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := teamFromRequest(r, store)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing team token")
			return
		}

		var req SubmissionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Data = strings.TrimSpace(req.Data)

		cp, ok := catalog.ByID(req.CheckpointID)
		if !ok || !p.OnRoute(req.CheckpointID) {
			writeError(w, http.StatusNotFound, "checkpoint not found")
			return
		}
		if cp.ChallengeType == hunt.ChallengeRiddle {
			writeError(w, http.StatusConflict, "checkpoint does not take submissions")
			return
		}
		if p.StateOf(req.CheckpointID) == hunt.StateLocked {
			writeError(w, http.StatusConflict, "checkpoint is locked")
			return
		}

		v := hunt.ValidationRequest{
			ID:           uuid.NewString(),
			TeamID:       p.ID,
			CheckpointID: req.CheckpointID,
			Type:         cp.ChallengeType,
			Data:         req.Data,
			Status:       hunt.ValidationPending,
			SessionID:    p.SessionID,
			CreatedAt:    time.Now().UTC(),
		}
		if err := store.CreateValidation(r.Context(), v); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		broker.PublishTeam(p.ID, p.SessionID, Event{
			Type:         eventValidationCreated,
			CheckpointID: req.CheckpointID,
			ValidationID: v.ID,
		})

		writeJSON(w, http.StatusCreated, SubmissionResponse{
			ValidationID: v.ID,
			Status:       string(v.Status),
		})
	}
}
