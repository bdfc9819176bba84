package server

import (
	"net/http"
	"strings"

	"github.com/trailquest/geohunt/internal/hunt"
)

// AnswerRequest is a riddle answer for an unlocked checkpoint.
type AnswerRequest struct {
	CheckpointID int    `json:"checkpointId"`
	Answer       string `json:"answer"`
}

type AnswerResponse struct {
	Correct            bool   `json:"correct"`
	UnlockedCheckpoint *int   `json:"unlockedCheckpoint,omitempty"`
	Hint               string `json:"hint,omitempty"`
}

// handleAnswer checks a riddle answer. A correct answer unlocks the next
// checkpoint on the route; a wrong one surfaces the hint and changes
// nothing. There is no attempt limit.
func handleAnswer(store Store, broker *Broker, catalog hunt.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := teamFromRequest(r, store)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing team token")
			return
		}

		var req AnswerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Answer) == "" {
			writeError(w, http.StatusBadRequest, "answer is required")
			return
		}

		cp, ok := catalog.ByID(req.CheckpointID)
		if !ok || !p.OnRoute(req.CheckpointID) {
			writeError(w, http.StatusNotFound, "checkpoint not found")
			return
		}
		if cp.Clue.Question == "" {
			writeError(w, http.StatusConflict, "checkpoint has no riddle")
			return
		}
		if p.StateOf(req.CheckpointID) == hunt.StateLocked {
			writeError(w, http.StatusConflict, "checkpoint is locked")
			return
		}

		if !hunt.CheckAnswer(cp.Clue.Answer, req.Answer) {
			writeJSON(w, http.StatusUnprocessableEntity, AnswerResponse{
				Correct: false,
				Hint:    cp.Clue.Hint,
			})
			return
		}

		resp := AnswerResponse{Correct: true}

		next, hasNext := p.NextAfter(req.CheckpointID)
		if hasNext {
			newly, err := p.Unlock(next)
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
					CheckpointID: next,
				})
			}
			resp.UnlockedCheckpoint = &next
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
