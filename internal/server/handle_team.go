package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trailquest/geohunt/internal/hunt"
)

// CreateTeamRequest is the request body for POST /api/teams.
type CreateTeamRequest struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	SessionID string `json:"sessionId"`
	Route     []int  `json:"route,omitempty"`
}

// TeamResponse is the team record as seen by both UI surfaces.
type TeamResponse struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Color             string        `json:"color"`
	Route             []int         `json:"route"`
	CurrentCheckpoint int           `json:"currentCheckpoint"`
	Found             []int         `json:"foundCheckpoints"`
	Unlocked          []int         `json:"unlockedCheckpoints"`
	Status            string        `json:"status"`
	Completed         bool          `json:"completed"`
	SessionID         string        `json:"sessionId"`
	Position          *TeamPosition `json:"position,omitempty"`
	CreatedAt         string        `json:"createdAt"`
	UpdatedAt         string        `json:"updatedAt"`
}

// CreateTeamResponse carries the bearer token used by all player calls.
type CreateTeamResponse struct {
	Token string       `json:"token"`
	Team  TeamResponse `json:"team"`
}

func teamResponse(p hunt.TeamProgress) TeamResponse {
	resp := TeamResponse{
		ID:                p.ID,
		Name:              p.Name,
		Color:             p.Color,
		Route:             p.Route,
		CurrentCheckpoint: p.CurrentCheckpoint,
		Found:             p.Found.IDs(),
		Unlocked:          p.Unlocked.IDs(),
		Status:            string(p.Status),
		Completed:         p.Completed(),
		SessionID:         p.SessionID,
		CreatedAt:         formatTime(p.CreatedAt),
		UpdatedAt:         formatTime(p.UpdatedAt),
	}
	return resp
}

func handleCreateTeam(store Store, broker *Broker, catalog hunt.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTeamRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		req.SessionID = strings.TrimSpace(req.SessionID)
		if req.Name == "" || req.SessionID == "" {
			writeError(w, http.StatusBadRequest, "name and sessionId are required")
			return
		}

		route := req.Route
		if len(route) == 0 {
			route = catalog.IDs()
		}

		p, err := hunt.NewTeamProgress(uuid.NewString(), req.Name, req.Color,
			req.SessionID, route, catalog, time.Now().UTC())
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := store.CreateTeam(r.Context(), p); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		broker.Publish(sessionTopic(p.SessionID), Event{Type: eventTeamCreated, TeamID: p.ID})

		writeJSON(w, http.StatusCreated, CreateTeamResponse{
			Token: p.ID,
			Team:  teamResponse(p),
		})
	}
}
