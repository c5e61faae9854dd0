package publish

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// StateRow is one normalized entity state observation.
type StateRow struct {
	// ID is the auto-incremented primary key, zero until stored.
	ID int64 `json:"id"`

	// PassID is the classification pass that produced the value.
	PassID string `json:"pass_id"`

	// HubID is the originating hub.
	HubID string `json:"hub_id"`

	// Platform is the entity platform name.
	Platform string `json:"platform"`

	// Address is the hub address of the entity (synthetic for programs
	// and variables).
	Address string `json:"address"`

	// Control is the auxiliary control name, "" for primary status.
	Control string `json:"control,omitempty"`

	// Kind is the normalized value kind (bool, number, label, unknown).
	Kind string `json:"kind"`

	// State is the published state payload.
	State string `json:"state"`

	// Unit is the friendly unit suffix, "" for unitless values.
	Unit string `json:"unit,omitempty"`

	// RecordedAt is the observation timestamp (UTC).
	RecordedAt time.Time `json:"recorded_at"`
}

// Recorder stores normalized state history in SQLite.
//
// One row is appended per entity per pass; rows are never updated.
// All methods are safe for concurrent use and store UTC timestamps.
type Recorder struct {
	db *sql.DB
}

// NewRecorder creates a state history recorder over an open database.
func NewRecorder(db *sql.DB) *Recorder {
	return &Recorder{db: db}
}

// RecordEntityState appends one state history row.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - row: Observation to persist; PassID, Platform, and Address are required
//
// Returns:
//   - error: nil on success, otherwise the validation or database error
func (r *Recorder) RecordEntityState(ctx context.Context, row StateRow) error {
	if row.PassID == "" {
		return fmt.Errorf("pass id is required")
	}
	if row.Platform == "" {
		return fmt.Errorf("platform is required")
	}
	if row.Address == "" {
		return fmt.Errorf("address is required")
	}
	recordedAt := row.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO state_history
		 (pass_id, hub_id, platform, address, control, kind, state, unit, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.PassID,
		row.HubID,
		row.Platform,
		row.Address,
		row.Control,
		row.Kind,
		row.State,
		row.Unit,
		recordedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting state history: %w", err)
	}
	return nil
}

// History returns recent observations for an address, newest first.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - address: Hub address to query
//   - limit: Maximum rows to return (default 50, max 200)
//
// Returns:
//   - []StateRow: Rows ordered by recorded_at DESC (may be empty)
//   - error: nil on success, otherwise the underlying query error
func (r *Recorder) History(ctx context.Context, address string, limit int) ([]StateRow, error) {
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, pass_id, hub_id, platform, address, control, kind, state, unit, recorded_at
		 FROM state_history
		 WHERE address = ?
		 ORDER BY recorded_at DESC, id DESC
		 LIMIT ?`,
		address,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying state history: %w", err)
	}
	defer rows.Close()

	entries := make([]StateRow, 0, limit)
	for rows.Next() {
		var entry StateRow
		var recordedAt string
		if err := rows.Scan(&entry.ID, &entry.PassID, &entry.HubID, &entry.Platform,
			&entry.Address, &entry.Control, &entry.Kind, &entry.State, &entry.Unit,
			&recordedAt); err != nil {
			return nil, fmt.Errorf("scanning state history: %w", err)
		}
		timestamp, err := time.Parse(time.RFC3339, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing recorded_at: %w", err)
		}
		entry.RecordedAt = timestamp
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating state history: %w", err)
	}
	return entries, nil
}

// Prune deletes observations older than the given retention.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - olderThan: Retention window; rows older than now-olderThan are deleted
//
// Returns:
//   - int64: Number of rows deleted
//   - error: nil on success, otherwise the underlying database error
func (r *Recorder) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, fmt.Errorf("olderThan must be positive")
	}

	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339)
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM state_history WHERE recorded_at < ?",
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting state history: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	return deleted, nil
}
