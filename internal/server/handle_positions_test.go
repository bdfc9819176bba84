package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

func TestPositionStreamDetectsCheckpoint(t *testing.T) {
	h, store := setupServer(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	team := createTeam(t, h)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wsURL := strings.Replace(srv.URL, "http://", "ws://", 1) +
		"/api/game/positions?token=" + team.Token
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()

	// Far from every checkpoint: nothing comes back.
	far := PositionReport{Lat: 48.8566, Lng: 2.3522}
	if err := wsjson.Write(ctx, conn, far); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Right on checkpoint 1.
	catalog := DemoCatalog()
	cp, _ := catalog.ByID(1)
	at := PositionReport{Lat: cp.Coordinates.Lat, Lng: cp.Coordinates.Lng, Accuracy: 5}
	if err := wsjson.Write(ctx, conn, at); err != nil {
		t.Fatalf("write: %v", err)
	}

	var notice FoundNotice
	if err := wsjson.Read(ctx, conn, &notice); err != nil {
		t.Fatalf("read notice: %v", err)
	}
	if notice.Type != eventCheckpointFound || notice.CheckpointID != 1 {
		t.Errorf("notice = %+v", notice)
	}
	if notice.Completed {
		t.Error("one find must not complete the hunt")
	}

	// The find is persisted and visible to plain reads.
	deadline := time.Now().Add(5 * time.Second)
	for {
		p, err := store.Team(ctx, team.Token)
		if err != nil {
			t.Fatalf("read team: %v", err)
		}
		if p.Found.Has(1) {
			if p.CurrentCheckpoint != 2 {
				t.Errorf("current = %d, want 2", p.CurrentCheckpoint)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("found checkpoint never persisted")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestPositionStreamRequiresToken(t *testing.T) {
	h, _ := setupServer(t)

	rec := doRequest(t, h, http.MethodGet, "/api/game/positions", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
