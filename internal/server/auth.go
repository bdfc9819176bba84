package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/trailquest/geohunt/internal/hunt"
)

var errNoSession = errors.New("no valid team token")

// teamFromRequest resolves the Bearer token to the caller's team record.
// The token is the team id handed out at creation time — the hunt has no
// per-player identity beyond that.
func teamFromRequest(r *http.Request, store Store) (hunt.TeamProgress, error) {
	auth := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found || token == "" {
		// SSE and WebSocket clients cannot set headers; allow a query param.
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		return hunt.TeamProgress{}, errNoSession
	}

	p, err := store.Team(r.Context(), token)
	if errors.Is(err, ErrNotFound) {
		return hunt.TeamProgress{}, errNoSession
	}
	return p, err
}
