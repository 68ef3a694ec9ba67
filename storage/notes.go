package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Note is a user note. Content is HTML-formatted text produced by the
// model or the note editor.
type Note struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewNoteID allocates a fresh note identifier.
func NewNoteID() string {
	return uuid.New().String()
}

// NoteStore persists notes in a sqlite database under the data directory.
// Failures surface as errors; callers do not retry.
type NoteStore struct {
	db *sql.DB
}

func NewNoteStore(dataDir string) (*NoteStore, error) {
	dbPath := filepath.Join(dataDir, "notes.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &NoteStore{db: db}

	if err := store.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

func (ns *NoteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_notes_title ON notes(title);
	`

	_, err := ns.db.Exec(schema)
	return err
}

// Upsert inserts the note, or updates it when a note with the same id
// already exists. A note without an id is assigned a fresh one. Returns
// the note's id.
func (ns *NoteStore) Upsert(ctx context.Context, note *Note) (string, error) {
	if note.ID == "" {
		note.ID = NewNoteID()
	}

	now := time.Now()
	note.UpdatedAt = now
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}

	_, err := ns.db.ExecContext(ctx, `
		INSERT INTO notes (id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			updated_at = excluded.updated_at`,
		note.ID, note.Title, note.Content, note.CreatedAt, note.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to upsert note: %w", err)
	}

	return note.ID, nil
}

// SearchByTitle returns notes whose title contains the given text,
// case-insensitively, most recently updated first. An empty substring
// matches every note.
func (ns *NoteStore) SearchByTitle(ctx context.Context, substring string) ([]Note, error) {
	rows, err := ns.db.QueryContext(ctx, `
		SELECT id, title, content, created_at, updated_at
		FROM notes
		WHERE lower(title) LIKE '%' || lower(?) || '%'
		ORDER BY updated_at DESC`,
		substring)
	if err != nil {
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

// All returns every note, most recently updated first.
func (ns *NoteStore) All(ctx context.Context) ([]Note, error) {
	rows, err := ns.db.QueryContext(ctx, `
		SELECT id, title, content, created_at, updated_at
		FROM notes
		ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

func scanNotes(rows *sql.Rows) ([]Note, error) {
	var notes []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}
	return notes, nil
}

func (ns *NoteStore) Close() error {
	return ns.db.Close()
}
