package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/trailquest/geohunt/internal/hunt"
)

// AdminSnapshot is the admin console's full session view: every team
// (creation order) and all pending validations (newest first).
type AdminSnapshot struct {
	Teams              []TeamResponse       `json:"teams"`
	PendingValidations []ValidationResponse `json:"pendingValidations"`
}

func buildAdminSnapshot(ctx context.Context, store Store, positions *PositionCache, sessionID string) (AdminSnapshot, error) {
	teams, err := store.TeamsBySession(ctx, sessionID)
	if err != nil {
		return AdminSnapshot{}, err
	}
	pending, err := store.PendingValidations(ctx, sessionID)
	if err != nil {
		return AdminSnapshot{}, err
	}

	snap := AdminSnapshot{
		Teams:              make([]TeamResponse, 0, len(teams)),
		PendingValidations: make([]ValidationResponse, 0, len(pending)),
	}
	for _, t := range teams {
		resp := teamResponse(t)
		if pos, ok, err := positions.Get(ctx, t.ID); err == nil && ok {
			resp.Position = &pos
		}
		snap.Teams = append(snap.Teams, resp)
	}
	for _, v := range pending {
		snap.PendingValidations = append(snap.PendingValidations, validationResponse(v))
	}
	return snap, nil
}

// handleAdminEvents streams full session snapshots to the admin console on
// every change, mirroring the player stream's replace-don't-merge contract.
func handleAdminEvents(store Store, broker *Broker, positions *PositionCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session")
		if sessionID == "" {
			writeError(w, http.StatusBadRequest, "session query parameter required")
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		flusher.Flush()

		ch := broker.Subscribe(sessionTopic(sessionID))
		defer broker.Unsubscribe(sessionTopic(sessionID), ch)

		sendSnapshot := func() {
			snap, err := buildAdminSnapshot(r.Context(), store, positions, sessionID)
			if err != nil {
				return
			}
			data, _ := json.Marshal(snap)
			fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data)
			flusher.Flush()
		}

		sendSnapshot()

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-ch:
				sendSnapshot()
			case <-ping.C:
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}

// ValidationResponse is a validation request as returned to the admin UI.
type ValidationResponse struct {
	ID           string `json:"id"`
	TeamID       string `json:"teamId"`
	CheckpointID int    `json:"checkpointId"`
	Type         string `json:"type"`
	Data         string `json:"data"`
	Status       string `json:"status"`
	AdminNotes   string `json:"adminNotes,omitempty"`
	SessionID    string `json:"sessionId"`
	CreatedAt    string `json:"createdAt"`
	ValidatedAt  string `json:"validatedAt,omitempty"`
}

func validationResponse(v hunt.ValidationRequest) ValidationResponse {
	resp := ValidationResponse{
		ID:           v.ID,
		TeamID:       v.TeamID,
		CheckpointID: v.CheckpointID,
		Type:         string(v.Type),
		Data:         v.Data,
		Status:       string(v.Status),
		AdminNotes:   v.AdminNotes,
		SessionID:    v.SessionID,
		CreatedAt:    formatTime(v.CreatedAt),
	}
	if v.ValidatedAt != nil {
		resp.ValidatedAt = formatTime(*v.ValidatedAt)
	}
	return resp
}
