// Package reminder persists scheduled reminders in SQLite and delivers them
// when due. Reminders survive restarts; overdue rows fire on the first sweep
// after startup.
package reminder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS reminders (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id    TEXT    NOT NULL,
	channel_id TEXT    NOT NULL,
	message    TEXT    NOT NULL,
	due_at_ms  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reminders_due_at ON reminders (due_at_ms);
`

// Reminder is one scheduled delivery.
type Reminder struct {
	ID        int64
	UserID    string
	ChannelID string
	Message   string
	DueAt     time.Time
}

// Store is the SQLite-backed reminder table.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the reminder database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("error creating reminder db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening reminder db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating reminder schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Add schedules a reminder and returns it with its assigned ID.
func (s *Store) Add(userID, channelID, message string, dueAt time.Time) (*Reminder, error) {
	res, err := s.db.Exec(
		`INSERT INTO reminders (user_id, channel_id, message, due_at_ms) VALUES (?, ?, ?, ?)`,
		userID, channelID, message, dueAt.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("error inserting reminder: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("error reading reminder id: %w", err)
	}

	return &Reminder{
		ID:        id,
		UserID:    userID,
		ChannelID: channelID,
		Message:   message,
		DueAt:     dueAt,
	}, nil
}

// Due returns all reminders due at or before now, oldest first.
func (s *Store) Due(now time.Time) ([]Reminder, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, channel_id, message, due_at_ms FROM reminders WHERE due_at_ms <= ? ORDER BY due_at_ms`,
		now.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("error querying due reminders: %w", err)
	}
	defer rows.Close()

	var due []Reminder
	for rows.Next() {
		var r Reminder
		var dueAtMs int64
		if err := rows.Scan(&r.ID, &r.UserID, &r.ChannelID, &r.Message, &dueAtMs); err != nil {
			return nil, fmt.Errorf("error scanning reminder: %w", err)
		}
		r.DueAt = time.UnixMilli(dueAtMs)
		due = append(due, r)
	}
	return due, rows.Err()
}

// Delete removes a reminder by ID. Reports whether a row was actually
// deleted, so concurrent sweeps can tell who won the race.
func (s *Store) Delete(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("error deleting reminder: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading affected rows: %w", err)
	}
	return affected > 0, nil
}

// Count returns the number of pending reminders.
func (s *Store) Count() (int64, error) {
	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM reminders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting reminders: %w", err)
	}
	return n, nil
}
