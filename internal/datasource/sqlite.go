package datasource

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists named documents in a single library database,
// keeping a bounded revision trail per document. The schema:
//
//	documents(name TEXT PRIMARY KEY, body TEXT, updated_at TIMESTAMP)
//	revisions(id INTEGER PK, name TEXT, body TEXT, saved_at TIMESTAMP)
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// revisionRetention bounds the number of old revisions kept per document.
const revisionRetention = 20

// OpenSQLiteStore opens (creating if needed) a document library.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			name TEXT PRIMARY KEY,
			body TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS revisions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			body TEXT NOT NULL,
			saved_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_revisions_name ON revisions(name, id)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("initializing schema: %w", err)
		}
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the library's file path.
func (s *SQLiteStore) Path() string { return s.path }

// LoadDocument returns the named document's text. A document that
// doesn't exist yet is empty, matching FileStore semantics.
func (s *SQLiteStore) LoadDocument(name string) (string, error) {
	var body string
	err := s.db.QueryRow("SELECT body FROM documents WHERE name = ?", name).Scan(&body)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading %q: %w", name, err)
	}
	return body, nil
}

// SaveDocument replaces the named document's text and records the
// previous body as a revision, pruning revisions past the retention
// bound.
func (s *SQLiteStore) SaveDocument(name, body string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("saving %q: %w", name, err)
	}
	defer tx.Rollback()

	var prev string
	err = tx.QueryRow("SELECT body FROM documents WHERE name = ?", name).Scan(&prev)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("saving %q: %w", name, err)
	}
	now := time.Now().UTC()
	if err == nil && prev != body {
		if _, err := tx.Exec(
			"INSERT INTO revisions (name, body, saved_at) VALUES (?, ?, ?)",
			name, prev, now); err != nil {
			return fmt.Errorf("recording revision of %q: %w", name, err)
		}
		if _, err := tx.Exec(
			`DELETE FROM revisions WHERE name = ? AND id NOT IN (
				SELECT id FROM revisions WHERE name = ? ORDER BY id DESC LIMIT ?
			)`, name, name, revisionRetention); err != nil {
			return fmt.Errorf("pruning revisions of %q: %w", name, err)
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO documents (name, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		name, body, now); err != nil {
		return fmt.Errorf("saving %q: %w", name, err)
	}

	return tx.Commit()
}

// List returns all document names, most recently updated first.
func (s *SQLiteStore) List() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM documents ORDER BY updated_at DESC")
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			continue
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return names, nil
}

// Revisions returns the stored revision bodies for a document, newest
// first. Best-effort: returns nil on any error.
func (s *SQLiteStore) Revisions(name string) []string {
	rows, err := s.db.Query("SELECT body FROM revisions WHERE name = ? ORDER BY id DESC", name)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var bodies []string
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			continue
		}
		bodies = append(bodies, body)
	}
	// Note: rows.Err() not checked here since Revisions is a best-effort
	// helper that returns what it has on any error.
	return bodies
}

// LastModified returns the most recent document update time.
func (s *SQLiteStore) LastModified() (time.Time, error) {
	var updatedAt sql.NullTime
	err := s.db.QueryRow("SELECT MAX(updated_at) FROM documents").Scan(&updatedAt)
	if err != nil {
		return time.Time{}, err
	}
	if !updatedAt.Valid {
		return time.Time{}, nil
	}
	return updatedAt.Time, nil
}

// DocumentStore adapts one named document in a library to the Store
// interface, so the editor can save through a library entry exactly as
// it saves through a file.
type DocumentStore struct {
	store *SQLiteStore
	name  string
}

// NewDocumentStore returns a Store bound to one document in the library.
func NewDocumentStore(store *SQLiteStore, name string) *DocumentStore {
	return &DocumentStore{store: store, name: name}
}

// Load returns the bound document's text.
func (d *DocumentStore) Load() (string, error) {
	return d.store.LoadDocument(d.name)
}

// Save replaces the bound document's text.
func (d *DocumentStore) Save(text string) error {
	return d.store.SaveDocument(d.name, text)
}

// Close closes the underlying library.
func (d *DocumentStore) Close() error {
	return d.store.Close()
}
