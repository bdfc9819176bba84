package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/trailquest/geohunt/internal/hunt"
)

// DemoSessionID groups the seeded demo teams.
const DemoSessionID = "demo"

// DemoCatalog is the built-in checkpoint catalog used when CATALOG_PATH is
// unset: a short hunt through central Lyon.
func DemoCatalog() hunt.Catalog {
	return hunt.Catalog{
		{
			ID:          1,
			Name:        "Place Bellecour",
			Coordinates: hunt.Coordinates{Lat: 45.7578, Lng: 4.8320},
			Clue: hunt.Clue{
				Question: "How many legs does the statue's horse keep on the ground?",
				Answer:   "2",
				Hint:     "Louis XIV is rearing up.",
			},
			ChallengeType: hunt.ChallengeRiddle,
		},
		{
			ID:          2,
			Name:        "Fontaine des Jacobins",
			Coordinates: hunt.Coordinates{Lat: 45.7609, Lng: 4.8336},
			Locked:      true,
			Clue: hunt.Clue{
				Question: "How many sculpted figures ride the fountain?",
				Answer:   "4",
				Hint:     "Count the horsemen, not the horses.",
			},
			ChallengeType: hunt.ChallengeRiddle,
		},
		{
			ID:             3,
			Name:           "Traboule de la Cour des Voraces",
			Coordinates:    hunt.Coordinates{Lat: 45.7709, Lng: 4.8332},
			Locked:         true,
			RadiusOverride: 30,
			Clue: hunt.Clue{
				Text: "Photograph the six-storey staircase and send it in.",
			},
			ChallengeType: hunt.ChallengePhoto,
		},
		{
			ID:          4,
			Name:        "Mur des Canuts",
			Coordinates: hunt.Coordinates{Lat: 45.7786, Lng: 4.8288},
			Locked:      true,
			Clue: hunt.Clue{
				Text: "Tell your guide which trade the mural celebrates.",
			},
			ChallengeType: hunt.ChallengeManual,
		},
	}
}

// SeedDemo creates two demo teams if the demo session is empty. Idempotent.
func SeedDemo(ctx context.Context, logger *slog.Logger, store Store, catalog hunt.Catalog) error {
	existing, err := store.TeamsBySession(ctx, DemoSessionID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()
	teams := []struct {
		id, name, color string
	}{
		{"d0000000-0000-4000-8000-000000000001", "Les Gones", "#d62828"},
		{"d0000000-0000-4000-8000-000000000002", "Croix-Rousse Crew", "#1d6fa5"},
	}
	for _, t := range teams {
		p, err := hunt.NewTeamProgress(t.id, t.name, t.color, DemoSessionID, catalog.IDs(), catalog, now)
		if err != nil {
			return err
		}
		if err := store.CreateTeam(ctx, p); err != nil {
			return err
		}
	}

	logger.Info("demo session seeded", "teams", len(teams))
	return nil
}
