package server

import (
	"net/http"
	"testing"
)

func TestOpenAPISpec(t *testing.T) {
	spec := newOpenAPISpec()

	if spec.Info.Title != "GeoHunt API" {
		t.Errorf("title = %q", spec.Info.Title)
	}

	paths := []string{
		"/healthz",
		"/api/teams",
		"/api/game/state",
		"/api/game/answer",
		"/api/game/submission",
		"/api/game/reset",
		"/api/game/events",
		"/api/game/positions",
		"/api/admin/login",
		"/api/admin/teams",
		"/api/admin/teams/{teamID}/unlock",
		"/api/admin/validations/{validationID}",
		"/api/admin/events",
	}
	for _, p := range paths {
		if _, ok := spec.Paths.MapOfPathItemValues[p]; !ok {
			t.Errorf("path %s missing from spec", p)
		}
	}
}

func TestOpenAPIEndpoint(t *testing.T) {
	h, _ := setupServer(t)

	rec := doRequest(t, h, http.MethodGet, "/openapi.json", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content type = %q", ct)
	}
}
