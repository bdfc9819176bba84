package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/trailquest/geohunt/internal/hunt"
)

// handleEvents is the player's live stream: a full game-state snapshot is
// sent on connect and again after every change to the team's record. Each
// snapshot fully replaces the client's view — there is no incremental merge
// on the read side.
func handleEvents(store Store, broker *Broker, catalog hunt.Catalog, ev hunt.Evaluator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, err := teamFromRequest(r, store)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing team token")
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

		ch := broker.Subscribe(teamTopic(team.ID))
		defer broker.Unsubscribe(teamTopic(team.ID), ch)

		sendSnapshot := func() {
			p, err := store.Team(r.Context(), team.ID)
			if err != nil {
				// Team deleted mid-stream; nothing left to deliver.
				return
			}
			data, _ := json.Marshal(gameState(p, catalog, ev))
			fmt.Fprintf(w, "event: state\ndata: %s\n\n", data)
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
