package hunt

import (
	"strings"
	"testing"
)

func TestLoadCatalog(t *testing.T) {
	data := `[
		{"id": 1, "name": "Fountain", "coordinates": {"lat": 48.85, "lng": 2.29},
		 "clue": {"question": "How many arches?", "answer": "2", "hint": "Count again"},
		 "challengeType": "automatic-riddle"},
		{"id": 2, "name": "Chapel", "coordinates": {"lat": 48.86, "lng": 2.33},
		 "locked": true, "radiusOverride": 25,
		 "clue": {"text": "Show your find to the guide"},
		 "challengeType": "photo-submission"}
	]`

	c, err := LoadCatalog(strings.NewReader(data))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c) != 2 {
		t.Fatalf("got %d checkpoints, want 2", len(c))
	}

	cp, ok := c.ByID(2)
	if !ok {
		t.Fatal("checkpoint 2 not found")
	}
	if !cp.Locked || cp.RadiusOverride != 25 || cp.ChallengeType != ChallengePhoto {
		t.Errorf("checkpoint 2 decoded wrong: %+v", cp)
	}
}

func TestLoadCatalogRejectsDuplicateIDs(t *testing.T) {
	data := `[
		{"id": 1, "name": "A", "coordinates": {"lat": 0, "lng": 0}, "challengeType": "info-submission"},
		{"id": 1, "name": "B", "coordinates": {"lat": 0, "lng": 0}, "challengeType": "info-submission"}
	]`
	if _, err := LoadCatalog(strings.NewReader(data)); err == nil {
		t.Fatal("expected error for duplicate ids")
	}
}

func TestLoadCatalogRejectsRiddleWithoutAnswer(t *testing.T) {
	data := `[
		{"id": 1, "name": "A", "coordinates": {"lat": 0, "lng": 0},
		 "clue": {"question": "?"}, "challengeType": "automatic-riddle"}
	]`
	if _, err := LoadCatalog(strings.NewReader(data)); err == nil {
		t.Fatal("expected error for riddle without answer")
	}
}

func TestLoadCatalogRejectsOutOfRangeCoordinates(t *testing.T) {
	data := `[{"id": 1, "name": "A", "coordinates": {"lat": 91, "lng": 0}, "challengeType": "info-submission"}]`
	if _, err := LoadCatalog(strings.NewReader(data)); err == nil {
		t.Fatal("expected error for latitude out of range")
	}
}
