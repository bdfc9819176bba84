package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/trailquest/geohunt/internal/hunt"
)

// SQLiteStore implements Store on a libSQL/SQLite database. Checkpoint id
// sets and routes are stored as JSON arrays; timestamps as RFC3339 text.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) CreateTeam(ctx context.Context, p hunt.TeamProgress) error {
	route, err := json.Marshal(p.Route)
	if err != nil {
		return fmt.Errorf("encoding route: %w", err)
	}
	found, _ := json.Marshal(p.Found)
	unlocked, _ := json.Marshal(p.Unlocked)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO teams (id, name, color, session_id, route, current_checkpoint, found, unlocked, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Color, p.SessionID, string(route), p.CurrentCheckpoint,
		string(found), string(unlocked), string(p.Status),
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting team: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Team(ctx context.Context, id string) (hunt.TeamProgress, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, color, session_id, route, current_checkpoint, found, unlocked, status, created_at, updated_at
		FROM teams WHERE id = ?
	`, id)
	return scanTeam(row)
}

func (s *SQLiteStore) TeamsBySession(ctx context.Context, sessionID string) ([]hunt.TeamProgress, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, color, session_id, route, current_checkpoint, found, unlocked, status, created_at, updated_at
		FROM teams WHERE session_id = ?
		ORDER BY created_at
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := []hunt.TeamProgress{}
	for rows.Next() {
		p, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, p)
	}
	return teams, rows.Err()
}

// UpdateTeam writes only the fields listed in upd, refreshing updated_at.
func (s *SQLiteStore) UpdateTeam(ctx context.Context, id string, upd ProgressUpdate) error {
	sets := []string{"updated_at = ?"}
	args := []any{formatTime(time.Now().UTC())}

	if upd.Found != nil {
		data, _ := json.Marshal(*upd.Found)
		sets = append(sets, "found = ?")
		args = append(args, string(data))
	}
	if upd.Unlocked != nil {
		data, _ := json.Marshal(*upd.Unlocked)
		sets = append(sets, "unlocked = ?")
		args = append(args, string(data))
	}
	if upd.CurrentCheckpoint != nil {
		sets = append(sets, "current_checkpoint = ?")
		args = append(args, *upd.CurrentCheckpoint)
	}
	if upd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*upd.Status))
	}
	args = append(args, id)

	result, err := s.db.ExecContext(ctx,
		"UPDATE teams SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("updating team: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) DeleteTeam(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) CreateValidation(ctx context.Context, v hunt.ValidationRequest) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO validations (id, team_id, checkpoint_id, type, data, status, admin_notes, session_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, v.ID, v.TeamID, v.CheckpointID, string(v.Type), v.Data, string(v.Status),
		v.AdminNotes, v.SessionID, formatTime(v.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting validation: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Validation(ctx context.Context, id string) (hunt.ValidationRequest, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, team_id, checkpoint_id, type, data, status, admin_notes, session_id, created_at, validated_at
		FROM validations WHERE id = ?
	`, id)
	v, err := scanValidation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return v, ErrValidationNotFound
	}
	return v, err
}

func (s *SQLiteStore) PendingValidations(ctx context.Context, sessionID string) ([]hunt.ValidationRequest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, team_id, checkpoint_id, type, data, status, admin_notes, session_id, created_at, validated_at
		FROM validations
		WHERE session_id = ? AND status = 'pending'
		ORDER BY created_at DESC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reqs := []hunt.ValidationRequest{}
	for rows.Next() {
		v, err := scanValidation(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, v)
	}
	return reqs, rows.Err()
}

// ResolveValidation is a one-way terminal transition: it only touches rows
// still pending, so a repeated or racing resolve cannot overwrite the first.
func (s *SQLiteStore) ResolveValidation(ctx context.Context, id string, status hunt.ValidationStatus, notes string) (hunt.ValidationRequest, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE validations SET status = ?, admin_notes = ?, validated_at = ?
		WHERE id = ? AND status = 'pending'
	`, string(status), notes, formatTime(time.Now().UTC()), id)
	if err != nil {
		return hunt.ValidationRequest{}, fmt.Errorf("resolving validation: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		// Distinguish a missing request from one already resolved.
		if _, err := s.Validation(ctx, id); err != nil {
			return hunt.ValidationRequest{}, err
		}
		return hunt.ValidationRequest{}, ErrValidationResolved
	}
	return s.Validation(ctx, id)
}

func (s *SQLiteStore) CreateAdminSession(ctx context.Context) (string, error) {
	var sessionID string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO admin_sessions DEFAULT VALUES
		RETURNING id
	`).Scan(&sessionID)
	return sessionID, err
}

func (s *SQLiteStore) AdminSessionExists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM admin_sessions WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (s *SQLiteStore) DeleteAdminSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTeam(row rowScanner) (hunt.TeamProgress, error) {
	var p hunt.TeamProgress
	var route, found, unlocked, status, createdAt, updatedAt string

	err := row.Scan(&p.ID, &p.Name, &p.Color, &p.SessionID, &route,
		&p.CurrentCheckpoint, &found, &unlocked, &status, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	if err != nil {
		return p, err
	}

	if err := json.Unmarshal([]byte(route), &p.Route); err != nil {
		return p, fmt.Errorf("decoding route: %w", err)
	}
	if err := json.Unmarshal([]byte(found), &p.Found); err != nil {
		return p, fmt.Errorf("decoding found set: %w", err)
	}
	if err := json.Unmarshal([]byte(unlocked), &p.Unlocked); err != nil {
		return p, fmt.Errorf("decoding unlocked set: %w", err)
	}
	p.Status = hunt.TeamStatus(status)
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return p, nil
}

func scanValidation(row rowScanner) (hunt.ValidationRequest, error) {
	var v hunt.ValidationRequest
	var typ, status, createdAt string
	var validatedAt sql.NullString

	err := row.Scan(&v.ID, &v.TeamID, &v.CheckpointID, &typ, &v.Data, &status,
		&v.AdminNotes, &v.SessionID, &createdAt, &validatedAt)
	if err != nil {
		return v, err
	}

	v.Type = hunt.ChallengeType(typ)
	v.Status = hunt.ValidationStatus(status)
	v.CreatedAt = parseTime(createdAt)
	if validatedAt.Valid {
		t := parseTime(validatedAt.String)
		v.ValidatedAt = &t
	}
	return v, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
