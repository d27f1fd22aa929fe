package data

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb/v2"
)

const schema = `
CREATE TABLE IF NOT EXISTS library (
	id       VARCHAR NOT NULL,
	kind     VARCHAR NOT NULL,
	url      VARCHAR PRIMARY KEY,
	name     VARCHAR NOT NULL,
	note     VARCHAR NOT NULL DEFAULT '',
	saved_at TIMESTAMP NOT NULL
)`

// InitDuckDB opens the database at path, creating parent directories and the
// library table when missing.
func InitDuckDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return db, nil
}

// Repository stores library bookmarks. It never holds API payloads.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// OpenRepository opens (or creates) the library database at path.
func OpenRepository(path string) (*Repository, error) {
	db, err := InitDuckDB(path)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// SaveEntry inserts the entry or updates the one with the same URL. A missing
// ID or SavedAt is filled in.
func (r *Repository) SaveEntry(e *Entry) error {
	if e.URL == "" {
		return fmt.Errorf("entry url cannot be empty")
	}
	if !e.Kind.Valid() {
		return fmt.Errorf("invalid entry kind %q", e.Kind)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.SavedAt.IsZero() {
		e.SavedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(`
		INSERT INTO library (id, kind, url, name, note, saved_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (url) DO UPDATE SET
			name = excluded.name,
			note = excluded.note,
			saved_at = excluded.saved_at`,
		e.ID, string(e.Kind), e.URL, e.Name, e.Note, e.SavedAt)
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	return nil
}

// GetEntry returns the entry for url, or nil when there is none.
func (r *Repository) GetEntry(url string) (*Entry, error) {
	row := r.db.QueryRow(`SELECT id, kind, url, name, note, saved_at FROM library WHERE url = ?`, url)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return e, nil
}

// ListEntries returns saved entries, newest first. An empty kind lists all.
func (r *Repository) ListEntries(kind Kind) ([]*Entry, error) {
	query := `SELECT id, kind, url, name, note, saved_at FROM library`
	var args []any
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY saved_at DESC, name`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	entries := []*Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteEntry removes the entry for url. Deleting a missing entry is not an error.
func (r *Repository) DeleteEntry(url string) error {
	if _, err := r.db.Exec(`DELETE FROM library WHERE url = ?`, url); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*Entry, error) {
	var e Entry
	var kind string
	if err := s.Scan(&e.ID, &kind, &e.URL, &e.Name, &e.Note, &e.SavedAt); err != nil {
		return nil, err
	}
	e.Kind = Kind(kind)
	return &e, nil
}
