package server

import (
	"context"
	"errors"

	"github.com/trailquest/geohunt/internal/hunt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidationNotFound = errors.New("validation request not found")
	ErrValidationResolved = errors.New("validation request already resolved")
)

// ProgressUpdate is a partial merge-update of a team record: only non-nil
// fields are written, and updated_at is always refreshed. Concurrent writers
// get last-write-wins per field; correctness relies on the transitions being
// idempotent.
type ProgressUpdate struct {
	Found             *hunt.IDSet
	Unlocked          *hunt.IDSet
	CurrentCheckpoint *int
	Status            *hunt.TeamStatus
}

// Store is the shared document store both the player client and the admin
// console synchronize through.
type Store interface {
	CreateTeam(ctx context.Context, p hunt.TeamProgress) error
	Team(ctx context.Context, id string) (hunt.TeamProgress, error)
	TeamsBySession(ctx context.Context, sessionID string) ([]hunt.TeamProgress, error)
	UpdateTeam(ctx context.Context, id string, upd ProgressUpdate) error
	DeleteTeam(ctx context.Context, id string) error

	CreateValidation(ctx context.Context, v hunt.ValidationRequest) error
	Validation(ctx context.Context, id string) (hunt.ValidationRequest, error)
	PendingValidations(ctx context.Context, sessionID string) ([]hunt.ValidationRequest, error)
	ResolveValidation(ctx context.Context, id string, status hunt.ValidationStatus, notes string) (hunt.ValidationRequest, error)

	CreateAdminSession(ctx context.Context) (string, error)
	AdminSessionExists(ctx context.Context, id string) (bool, error)
	DeleteAdminSession(ctx context.Context, id string) error
}
