package server

import (
	"net/http"

	"github.com/trailquest/geohunt/internal/hunt"
)

// CheckpointView is one checkpoint as the player sees it. Coordinates and
// clue are revealed only once the checkpoint is unlocked; riddle answers
// never leave the server.
type CheckpointView struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	State         string   `json:"state"`
	Lat           *float64 `json:"lat,omitempty"`
	Lng           *float64 `json:"lng,omitempty"`
	Radius        float64  `json:"radius,omitempty"`
	ClueText      string   `json:"clueText,omitempty"`
	Question      string   `json:"question,omitempty"`
	ChallengeType string   `json:"challengeType,omitempty"`
}

// GameStateResponse is the full player snapshot.
type GameStateResponse struct {
	Team        TeamResponse     `json:"team"`
	Checkpoints []CheckpointView `json:"checkpoints"`
	FoundCount  int              `json:"foundCount"`
	TotalCount  int              `json:"totalCount"`
	Completed   bool             `json:"completed"`
}

func checkpointViews(p hunt.TeamProgress, catalog hunt.Catalog, ev hunt.Evaluator) []CheckpointView {
	views := make([]CheckpointView, 0, len(p.Route))
	for _, cpID := range p.Route {
		cp, ok := catalog.ByID(cpID)
		if !ok {
			continue
		}
		state := p.StateOf(cpID)
		view := CheckpointView{
			ID:    cpID,
			Name:  cp.Name,
			State: string(state),
		}
		if state != hunt.StateLocked {
			lat, lng := cp.Coordinates.Lat, cp.Coordinates.Lng
			view.Lat = &lat
			view.Lng = &lng
			view.Radius = ev.Radius(cp)
			view.ClueText = cp.Clue.Text
			view.Question = cp.Clue.Question
			view.ChallengeType = string(cp.ChallengeType)
		}
		views = append(views, view)
	}
	return views
}

func gameState(p hunt.TeamProgress, catalog hunt.Catalog, ev hunt.Evaluator) GameStateResponse {
	return GameStateResponse{
		Team:        teamResponse(p),
		Checkpoints: checkpointViews(p, catalog, ev),
		FoundCount:  len(p.Found),
		TotalCount:  len(p.Route),
		Completed:   p.Completed(),
	}
}

func handleGameState(store Store, catalog hunt.Catalog, ev hunt.Evaluator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := teamFromRequest(r, store)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing team token")
			return
		}

		writeJSON(w, http.StatusOK, gameState(p, catalog, ev))
	}
}
