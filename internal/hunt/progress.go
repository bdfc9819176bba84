package hunt

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// CheckpointState is a checkpoint's state relative to one team.
type CheckpointState string

const (
	StateLocked   CheckpointState = "locked"
	StateUnlocked CheckpointState = "unlocked"
	StateFound    CheckpointState = "found"
)

var (
	// ErrCheckpointLocked is returned when a found transition is attempted
	// on a checkpoint the team has not unlocked.
	ErrCheckpointLocked = errors.New("checkpoint is locked")

	// ErrNotOnRoute is returned for checkpoint ids outside the team's route.
	ErrNotOnRoute = errors.New("checkpoint not on route")
)

// NewTeamProgress creates a fresh record for a team. The first route
// checkpoint is always unlocked; the rest follow their static Locked flag.
func NewTeamProgress(id, name, color, sessionID string, route []int, catalog Catalog, now time.Time) (TeamProgress, error) {
	if len(route) == 0 {
		return TeamProgress{}, fmt.Errorf("route is empty")
	}
	for _, cpID := range route {
		if _, ok := catalog.ByID(cpID); !ok {
			return TeamProgress{}, fmt.Errorf("route references unknown checkpoint %d", cpID)
		}
	}

	p := TeamProgress{
		ID:                id,
		Name:              name,
		Color:             color,
		Route:             route,
		CurrentCheckpoint: route[0],
		Found:             NewIDSet(),
		Unlocked:          initialUnlocked(route, catalog),
		Status:            TeamActive,
		SessionID:         sessionID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	return p, nil
}

func initialUnlocked(route []int, catalog Catalog) IDSet {
	unlocked := NewIDSet(route[0])
	for _, cpID := range route {
		if cp, ok := catalog.ByID(cpID); ok && !cp.Locked {
			unlocked.Add(cpID)
		}
	}
	return unlocked
}

// StateOf reports the checkpoint's state for this team.
func (p *TeamProgress) StateOf(id int) CheckpointState {
	switch {
	case p.Found.Has(id):
		return StateFound
	case p.Unlocked.Has(id):
		return StateUnlocked
	default:
		return StateLocked
	}
}

// OnRoute reports whether the checkpoint id belongs to the team's route.
func (p *TeamProgress) OnRoute(id int) bool {
	for _, cpID := range p.Route {
		if cpID == id {
			return true
		}
	}
	return false
}

// Unlock makes a checkpoint visible. Idempotent: unlocking an already
// unlocked (or found) checkpoint reports false and changes nothing.
func (p *TeamProgress) Unlock(id int) (bool, error) {
	if !p.OnRoute(id) {
		return false, ErrNotOnRoute
	}
	return p.Unlocked.Add(id), nil
}

// MarkFound records a physical discovery. Only unlocked checkpoints can be
// found; re-finding is a no-op. On a new find the current checkpoint
// advances to the first route entry not yet found.
func (p *TeamProgress) MarkFound(id int) (bool, error) {
	if !p.OnRoute(id) {
		return false, ErrNotOnRoute
	}
	if p.Found.Has(id) {
		return false, nil
	}
	if !p.Unlocked.Has(id) {
		return false, ErrCheckpointLocked
	}
	p.Found.Add(id)
	p.advanceCurrent()
	return true, nil
}

func (p *TeamProgress) advanceCurrent() {
	for _, cpID := range p.Route {
		if !p.Found.Has(cpID) {
			p.CurrentCheckpoint = cpID
			return
		}
	}
	// Everything found — current stays on the last route checkpoint.
	p.CurrentCheckpoint = p.Route[len(p.Route)-1]
}

// Reset restores the initial state: found emptied, unlocked back to the
// starting set, current checkpoint back to the route head.
func (p *TeamProgress) Reset(catalog Catalog) {
	p.Found = NewIDSet()
	p.Unlocked = initialUnlocked(p.Route, catalog)
	p.CurrentCheckpoint = p.Route[0]
	p.Status = TeamActive
}

// Completed reports whether every route checkpoint has been found. Derived,
// never stored.
func (p *TeamProgress) Completed() bool {
	for _, cpID := range p.Route {
		if !p.Found.Has(cpID) {
			return false
		}
	}
	return true
}

// NextAfter returns the route entry following id, if any.
func (p *TeamProgress) NextAfter(id int) (int, bool) {
	for i, cpID := range p.Route {
		if cpID == id && i+1 < len(p.Route) {
			return p.Route[i+1], true
		}
	}
	return 0, false
}

// CheckAnswer compares a riddle answer: whitespace-trimmed, case-insensitive
// exact match.
func CheckAnswer(configured, given string) bool {
	return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(configured))
}
