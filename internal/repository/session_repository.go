package repository // repository defines data access for seat-map sessions

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"time"         // time for the session timestamp
)

// SeatMapSession is a persisted, locally modified seat map for one
// formatura: the serialized layout snapshot produced after drag/click
// moves that were not confirmed by the backend.  The original allocation
// stays untouched on the backend; this row is the only record of local
// edits, and deleting it is what "reset" means.
type SeatMapSession struct {
	FormaturaID string    // seat_map_sessions.formatura_id
	Snapshot    []byte    // seat_map_sessions.snapshot (layout JSON)
	UpdatedAt   time.Time // seat_map_sessions.updated_at
}

// SessionRepo provides methods to work with seat-map sessions in the database.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo constructs a SessionRepo with the given DB handle.
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Save upserts the session snapshot for a formatura.  Last write wins;
// there is no optimistic locking because a seat map is edited by a single
// operator at a time.
func (r *SessionRepo) Save(ctx context.Context, formaturaID string, snapshot []byte) error {
	const q = `INSERT INTO seat_map_sessions (formatura_id, snapshot, updated_at)
	           VALUES (?, ?, NOW())
	           ON DUPLICATE KEY UPDATE snapshot = VALUES(snapshot), updated_at = NOW()`
	_, err := r.db.ExecContext(ctx, q, formaturaID, snapshot)
	return err
}

// Get returns the stored snapshot for a formatura, or ErrSessionNotFound.
func (r *SessionRepo) Get(ctx context.Context, formaturaID string) ([]byte, error) {
	const q = `SELECT snapshot FROM seat_map_sessions WHERE formatura_id = ?`
	var snapshot []byte
	if err := r.db.QueryRowContext(ctx, q, formaturaID).Scan(&snapshot); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return snapshot, nil
}

// Delete removes the session for a formatura.  Deleting a session that
// does not exist is not an error; reset is idempotent.
func (r *SessionRepo) Delete(ctx context.Context, formaturaID string) error {
	const q = `DELETE FROM seat_map_sessions WHERE formatura_id = ?`
	_, err := r.db.ExecContext(ctx, q, formaturaID)
	return err
}
