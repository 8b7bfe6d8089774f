// Package ledger mirrors the controller's event log into SQLite so a
// session's history can be filtered and queried. Rows are written once and
// never read back into the controller.
package ledger

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/smarthome/internal/eventlog"
)

// DefaultLimit caps query results when no limit is given
const DefaultLimit = 50

// Entry represents a single row in the ledger
type Entry struct {
	ID        int64
	SessionID string
	Seq       uint64
	Stimulus  eventlog.Stimulus
	Timestamp time.Time
	Message   string
}

// Ledger provides append-only journaling for one session
type Ledger struct {
	db        *sql.DB
	sessionID string
}

// New creates a new Ledger writing rows for sessionID
func New(db *sql.DB, sessionID string) *Ledger {
	return &Ledger{db: db, sessionID: sessionID}
}

// SessionID returns the session rows are written under
func (l *Ledger) SessionID() string {
	return l.sessionID
}

// Append writes an event log entry
func (l *Ledger) Append(e eventlog.Entry) error {
	_, err := l.db.Exec(
		`INSERT INTO event_ledger (session_id, seq, stimulus, timestamp, message) VALUES (?, ?, ?, ?, ?)`,
		l.sessionID, int64(e.Seq), string(e.Stimulus), e.Time.UTC().UnixMilli(), e.Message,
	)
	if err != nil {
		return fmt.Errorf("failed to append ledger entry %d: %w", e.Seq, err)
	}
	return nil
}

// Observer returns an event log observer that appends every entry.
// Write failures are logged and do not interrupt the stimulus.
func (l *Ledger) Observer() eventlog.Observer {
	return func(e eventlog.Entry) {
		if err := l.Append(e); err != nil {
			log.Warn().Err(err).Str("session", l.sessionID).Uint64("seq", e.Seq).Msg("Ledger write failed")
		}
	}
}

// Recent returns the latest entries of this session, oldest first
func (l *Ledger) Recent(limit int) ([]*Entry, error) {
	rows, err := l.db.Query(`
		SELECT id, session_id, seq, stimulus, timestamp, message FROM (
			SELECT id, session_id, seq, stimulus, timestamp, message
			FROM event_ledger
			WHERE session_id = ?
			ORDER BY seq DESC
			LIMIT ?
		) ORDER BY seq ASC
	`, l.sessionID, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ByStimulus returns the latest entries of this session for one stimulus, oldest first
func (l *Ledger) ByStimulus(stimulus eventlog.Stimulus, limit int) ([]*Entry, error) {
	rows, err := l.db.Query(`
		SELECT id, session_id, seq, stimulus, timestamp, message FROM (
			SELECT id, session_id, seq, stimulus, timestamp, message
			FROM event_ledger
			WHERE session_id = ? AND stimulus = ?
			ORDER BY seq DESC
			LIMIT ?
		) ORDER BY seq ASC
	`, l.sessionID, string(stimulus), normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Count returns the number of entries written in this session
func (l *Ledger) Count() (int, error) {
	var n int
	err := l.db.QueryRow(`SELECT COUNT(*) FROM event_ledger WHERE session_id = ?`, l.sessionID).Scan(&n)
	return n, err
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

func scanEntries(rows *sql.Rows) ([]*Entry, error) {
	var entries []*Entry
	for rows.Next() {
		var entry Entry
		var seq, timestamp int64
		var stimulus string

		if err := rows.Scan(&entry.ID, &entry.SessionID, &seq, &stimulus, &timestamp, &entry.Message); err != nil {
			return nil, err
		}

		entry.Seq = uint64(seq)
		entry.Stimulus = eventlog.Stimulus(stimulus)
		entry.Timestamp = time.UnixMilli(timestamp).UTC()
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
