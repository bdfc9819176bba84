package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/trailquest/geohunt/internal/hunt"
)

// PositionReport is one sample from the device-location facility on the
// player client.
type PositionReport struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Accuracy float64 `json:"accuracy,omitempty"`
}

// FoundNotice is sent back over the socket when a sample drives a
// checkpoint to found.
type FoundNotice struct {
	Type         string `json:"type"`
	CheckpointID int    `json:"checkpointId"`
	Completed    bool   `json:"completed"`
}

// handlePositions accepts a WebSocket over which the player client streams
// position samples. Each sample is cached for the admin live view and run
// through the proximity evaluator; newly found checkpoints are persisted,
// fanned out, and echoed back. Samples are processed in delivery order.
func handlePositions(logger *slog.Logger, store Store, broker *Broker, catalog hunt.Catalog, ev hunt.Evaluator, positions *PositionCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, err := teamFromRequest(r, store)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing team token")
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ctx := r.Context()

		// Browsers can emit geolocation updates faster than is useful;
		// excess samples are dropped, which is safe because evaluation is
		// idempotent for an unchanged position.
		limiter := rate.NewLimiter(rate.Every(200*time.Millisecond), 5)

		for {
			var report PositionReport
			if err := wsjson.Read(ctx, conn, &report); err != nil {
				logger.Debug("position stream ended", "team", team.ID, "error", err)
				return
			}
			if !limiter.Allow() {
				continue
			}

			if err := handleSample(ctx, logger, store, broker, catalog, ev, positions, team.ID, report, conn); err != nil {
				logger.Error("processing position sample", "team", team.ID, "error", err)
			}
		}
	}
}

func handleSample(ctx context.Context, logger *slog.Logger, store Store, broker *Broker, catalog hunt.Catalog, ev hunt.Evaluator, positions *PositionCache, teamID string, report PositionReport, conn *websocket.Conn) error {
	pos := TeamPosition{
		Lat:        report.Lat,
		Lng:        report.Lng,
		Accuracy:   report.Accuracy,
		ReportedAt: time.Now().UTC(),
	}
	if err := positions.Set(ctx, teamID, pos); err != nil {
		// The cache is display-only; a Redis hiccup must not stall detection.
		logger.Warn("position cache write failed", "team", teamID, "error", err)
	}

	// Re-read the record so admin overrides since the last sample are seen.
	p, err := store.Team(ctx, teamID)
	if err != nil {
		return err
	}

	broker.Publish(sessionTopic(p.SessionID), Event{Type: eventPositionUpdated, TeamID: p.ID})

	found := ev.Evaluate(hunt.Coordinates{Lat: report.Lat, Lng: report.Lng}, catalog, &p)
	if len(found) == 0 {
		return nil
	}

	upd := ProgressUpdate{
		Found:             &p.Found,
		CurrentCheckpoint: &p.CurrentCheckpoint,
	}
	if err := store.UpdateTeam(ctx, p.ID, upd); err != nil {
		return err
	}

	for _, cpID := range found {
		broker.PublishTeam(p.ID, p.SessionID, Event{
			Type:         eventCheckpointFound,
			CheckpointID: cpID,
		})
		notice := FoundNotice{
			Type:         eventCheckpointFound,
			CheckpointID: cpID,
			Completed:    p.Completed(),
		}
		if err := wsjson.Write(ctx, conn, notice); err != nil {
			return err
		}
	}
	return nil
}
