package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trailquest/geohunt/internal/hunt"
)

// handleAdminListTeams returns every team in a session, creation order,
// with last known positions merged in from the cache.
func handleAdminListTeams(store Store, positions *PositionCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session")
		if sessionID == "" {
			writeError(w, http.StatusBadRequest, "session query parameter required")
			return
		}

		teams, err := store.TeamsBySession(r.Context(), sessionID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp := make([]TeamResponse, 0, len(teams))
		for _, t := range teams {
			tr := teamResponse(t)
			if pos, ok, err := positions.Get(r.Context(), t.ID); err == nil && ok {
				tr.Position = &pos
			}
			resp = append(resp, tr)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// AdminUnlockRequest is the override unlock command.
type AdminUnlockRequest struct {
	CheckpointID int `json:"checkpointId"`
}

// handleAdminUnlock force-unlocks a checkpoint for a team. Idempotent: an
// already-unlocked checkpoint leaves the record unchanged and still
// returns 200.
func handleAdminUnlock(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := store.Team(r.Context(), chi.URLParam(r, "teamID"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "team not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		var req AdminUnlockRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		newly, err := p.Unlock(req.CheckpointID)
		if errors.Is(err, hunt.ErrNotOnRoute) {
			writeError(w, http.StatusNotFound, "checkpoint not on team route")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if newly {
			upd := ProgressUpdate{Unlocked: &p.Unlocked}
			if err := store.UpdateTeam(r.Context(), p.ID, upd); err != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			broker.PublishTeam(p.ID, p.SessionID, Event{
				Type:         eventCheckpointUnlocked,
				CheckpointID: req.CheckpointID,
			})
		}

		writeJSON(w, http.StatusOK, teamResponse(p))
	}
}

// handleAdminReset resets a team on the operator's behalf.
func handleAdminReset(store Store, broker *Broker, catalog hunt.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := store.Team(r.Context(), chi.URLParam(r, "teamID"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "team not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if err := resetTeam(r.Context(), store, broker, catalog, &p); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, teamResponse(p))
	}
}

// AdminStatusRequest flips a team between active and stuck.
type AdminStatusRequest struct {
	Status string `json:"status"`
}

func handleAdminSetStatus(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminStatusRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		status := hunt.TeamStatus(req.Status)
		if status != hunt.TeamActive && status != hunt.TeamStuck {
			writeError(w, http.StatusBadRequest, "status must be active or stuck")
			return
		}

		p, err := store.Team(r.Context(), chi.URLParam(r, "teamID"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "team not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		p.Status = status
		upd := ProgressUpdate{Status: &status}
		if err := store.UpdateTeam(r.Context(), p.ID, upd); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		broker.PublishTeam(p.ID, p.SessionID, Event{Type: eventStatusChanged})
		writeJSON(w, http.StatusOK, teamResponse(p))
	}
}

func handleAdminDeleteTeam(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := store.Team(r.Context(), chi.URLParam(r, "teamID"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "team not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if err := store.DeleteTeam(r.Context(), p.ID); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		broker.PublishTeam(p.ID, p.SessionID, Event{Type: eventTeamDeleted})
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
