// Package hunt defines the core domain types and game logic for the
// treasure hunt: the checkpoint catalog, per-team progress, the unlock
// state machine, and the proximity evaluator. Everything here is pure Go.
package hunt

import (
	"encoding/json"
	"sort"
	"time"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ChallengeType decides what a team must do once a checkpoint is found.
type ChallengeType string

const (
	ChallengeRiddle ChallengeType = "automatic-riddle"
	ChallengeManual ChallengeType = "manual-validation"
	ChallengePhoto  ChallengeType = "photo-submission"
	ChallengeObject ChallengeType = "object-submission"
	ChallengeInfo   ChallengeType = "info-submission"
)

// Clue is the reveal payload of a checkpoint. A checkpoint either reveals
// Text directly or poses a riddle (Question/Answer, with Hint shown on a
// wrong answer).
type Clue struct {
	Text     string `json:"text,omitempty"`
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`
	Hint     string `json:"hint,omitempty"`
}

// Checkpoint is a static catalog entry. Immutable after catalog load.
type Checkpoint struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	Coordinates    Coordinates   `json:"coordinates"`
	RadiusOverride float64       `json:"radiusOverride,omitempty"` // meters; 0 means evaluator default
	Locked         bool          `json:"locked"`                   // requires an explicit unlock
	Clue           Clue          `json:"clue"`
	ChallengeType  ChallengeType `json:"challengeType"`
}

// TeamStatus is the stored team state. Completed is never stored — it is
// derived from progress (see TeamProgress.Completed).
type TeamStatus string

const (
	TeamActive TeamStatus = "active"
	TeamStuck  TeamStatus = "stuck"
)

// TeamProgress is the shared mutable record tracking one team's advancement.
type TeamProgress struct {
	ID                string
	Name              string
	Color             string
	Route             []int
	CurrentCheckpoint int
	Found             IDSet
	Unlocked          IDSet
	Status            TeamStatus
	SessionID         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ValidationStatus is the lifecycle of a manual-submission review.
type ValidationStatus string

const (
	ValidationPending  ValidationStatus = "pending"
	ValidationApproved ValidationStatus = "approved"
	ValidationRejected ValidationStatus = "rejected"
)

// ValidationRequest is one manual-submission event awaiting admin review.
// Terminal once Status leaves pending.
type ValidationRequest struct {
	ID           string
	TeamID       string
	CheckpointID int
	Type         ChallengeType
	Data         string
	Status       ValidationStatus
	AdminNotes   string
	SessionID    string
	CreatedAt    time.Time
	ValidatedAt  *time.Time
}

// IDSet is a set of checkpoint ids. It marshals as a sorted JSON array so
// the persisted form is stable.
type IDSet map[int]struct{}

func NewIDSet(ids ...int) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id and reports whether it was newly added.
func (s IDSet) Add(id int) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

// IDs returns the members in ascending order.
func (s IDSet) IDs() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (s IDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

func (s *IDSet) UnmarshalJSON(data []byte) error {
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewIDSet(ids...)
	return nil
}
