package server

import (
	"context"
	"net/http"

	"github.com/trailquest/geohunt/internal/hunt"
)

// handleReset restarts the caller's hunt: found emptied, unlocked back to
// the initial set, current checkpoint back to the route head.
func handleReset(store Store, broker *Broker, catalog hunt.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := teamFromRequest(r, store)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing team token")
			return
		}

		if err := resetTeam(r.Context(), store, broker, catalog, &p); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, teamResponse(p))
	}
}

// resetTeam applies the reset transition and persists it. Shared by the
// player restart and the admin override.
func resetTeam(ctx context.Context, store Store, broker *Broker, catalog hunt.Catalog, p *hunt.TeamProgress) error {
	p.Reset(catalog)

	status := p.Status
	upd := ProgressUpdate{
		Found:             &p.Found,
		Unlocked:          &p.Unlocked,
		CurrentCheckpoint: &p.CurrentCheckpoint,
		Status:            &status,
	}
	if err := store.UpdateTeam(ctx, p.ID, upd); err != nil {
		return err
	}

	broker.PublishTeam(p.ID, p.SessionID, Event{Type: eventTeamReset})
	return nil
}
