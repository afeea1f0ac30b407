// Package journal keeps an append-only sqlite audit log of billing
// confirmations. It records what was billed and whether the publish
// reached the endpoint; the cart itself is never rebuilt from it, so
// losing the journal loses history, not money logic.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one confirmation record.
type Entry struct {
	ID        int64     `json:"id"`
	Session   string    `json:"session"`
	ItemID    int       `json:"item_id"`
	Label     string    `json:"label"`
	Taken     int       `json:"taken"`
	Payable   float64   `json:"payable"`
	Published bool      `json:"published"`
	Error     string    `json:"error,omitempty"`
	At        time.Time `json:"at"`
}

// Journal is the sqlite-backed confirmation log.
type Journal struct {
	db *sql.DB
}

// Open opens (or creates) the journal database at path.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS confirmations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session TEXT NOT NULL,
			item_id INTEGER NOT NULL,
			label TEXT NOT NULL,
			taken INTEGER NOT NULL,
			payable REAL NOT NULL,
			published INTEGER NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			at DATETIME NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: create schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Record appends one confirmation.
func (j *Journal) Record(e Entry) (int64, error) {
	if e.At.IsZero() {
		e.At = time.Now()
	}

	result, err := j.db.Exec(`
		INSERT INTO confirmations (session, item_id, label, taken, payable, published, error, at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.Session, e.ItemID, e.Label, e.Taken, e.Payable, e.Published, e.Error, e.At)
	if err != nil {
		return 0, fmt.Errorf("journal: insert confirmation: %w", err)
	}
	return result.LastInsertId()
}

// Recent returns the latest confirmations, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := j.db.Query(`
		SELECT id, session, item_id, label, taken, payable, published, error, at
		FROM confirmations ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: query confirmations: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Session, &e.ItemID, &e.Label, &e.Taken,
			&e.Payable, &e.Published, &e.Error, &e.At); err != nil {
			return nil, fmt.Errorf("journal: scan confirmation: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}
