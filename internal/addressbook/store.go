// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package addressbook persists senders, recipients, and cc-recipients so
// they can be reused across letters. Parties live in a SQLite database with
// an FTS5 trigram index over name and address.
package addressbook

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/squarer/letter-generator/pkg/types"
)

const (
	dbFile            = "addressbook.db"
	defaultMaxResults = 20
	// minTrigramQuery is the shortest query the trigram index can match.
	minTrigramQuery = 3
)

// ErrNotFound is returned when no party has the requested ID.
var ErrNotFound = errors.New("party not found")

// Entry is a party stored in the address book.
type Entry struct {
	types.Party `yaml:",inline"`
	Category    types.Category `json:"category" yaml:"category"`
	CreatedAt   time.Time      `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" yaml:"updated_at"`
}

// Store manages the address book database.
type Store struct {
	db         *sql.DB
	maxResults int
	now        func() time.Time
	newID      func() string
}

// NewStore opens or creates the address book at cfg.DataDir/addressbook.db.
func NewStore(cfg types.AddressBookConfig) (*Store, error) {
	dir := cfg.DataDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{
		db:         db,
		maxResults: maxResults,
		now:        time.Now,
		newID:      uuid.NewString,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS parties (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			category TEXT NOT NULL CHECK (category IN ('sender', 'recipient', 'cc')),
			name TEXT NOT NULL,
			address TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_parties_category ON parties(category)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='parties_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE parties_fts USING fts5(name, address, content=parties, content_rowid=rowid, tokenize='trigram')`,
			`CREATE TRIGGER parties_ai AFTER INSERT ON parties BEGIN
				INSERT INTO parties_fts(rowid, name, address) VALUES (new.rowid, new.name, new.address);
			END`,
			`CREATE TRIGGER parties_ad AFTER DELETE ON parties BEGIN
				INSERT INTO parties_fts(parties_fts, rowid, name, address) VALUES('delete', old.rowid, old.name, old.address);
			END`,
			`CREATE TRIGGER parties_au AFTER UPDATE ON parties BEGIN
				INSERT INTO parties_fts(parties_fts, rowid, name, address) VALUES('delete', old.rowid, old.name, old.address);
				INSERT INTO parties_fts(rowid, name, address) VALUES (new.rowid, new.name, new.address);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Save inserts e, or updates the entry with the same ID. Name and address
// are trimmed and must not be blank. An empty ID gets a new UUID. The
// stored entry is returned.
func (s *Store) Save(ctx context.Context, e Entry) (Entry, error) {
	e.Name = strings.TrimSpace(e.Name)
	e.Address = strings.TrimSpace(e.Address)
	if e.Name == "" || e.Address == "" {
		return Entry{}, fmt.Errorf("saving party: name and address are required")
	}
	c, err := types.ParseCategory(string(e.Category))
	if err != nil {
		return Entry{}, err
	}
	e.Category = c
	if e.ID == "" {
		e.ID = s.newID()
	}

	now := s.now().UTC().Truncate(time.Second)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO parties (id, category, name, address, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			category=excluded.category, name=excluded.name,
			address=excluded.address, updated_at=excluded.updated_at`,
		e.ID, string(e.Category), e.Name, e.Address,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("saving party %s: %w", e.ID, err)
	}
	return s.Get(ctx, e.ID)
}

// Get returns the entry with the given ID.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, category, name, address, created_at, updated_at FROM parties WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("looking up party: %w", err)
	}
	return e, nil
}

// Delete removes the entry with the given ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM parties WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting party: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting party: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Parties resolves IDs to parties in the given order, for adding
// address-book entries to a letter.
func (s *Store) Parties(ctx context.Context, ids []string) ([]types.Party, error) {
	parties := make([]types.Party, 0, len(ids))
	for _, id := range ids {
		e, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		parties = append(parties, e.Party)
	}
	return parties, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (Entry, error) {
	var (
		e                    Entry
		category             string
		createdAt, updatedAt string
	)
	if err := sc.Scan(&e.ID, &category, &e.Name, &e.Address, &createdAt, &updatedAt); err != nil {
		return Entry{}, err
	}
	e.Category = types.Category(category)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return e, nil
}
