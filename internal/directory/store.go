// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package directory is the institution's internal person directory: persons,
// their identifiers and their time-scoped organization affiliations, held in
// a SQL database (SQLite by default, PostgreSQL via pgx).
package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pure-import/pkg/types"
)

var (
	// ErrNotFound is returned by Lookup when no person is internal as of the date.
	ErrNotFound = errors.New("person not found")

	// ErrAmbiguous is returned by Lookup when a name matches several internal
	// persons and no identifier settles it.
	ErrAmbiguous = errors.New("person match ambiguous")
)

// Store is the person directory database.
type Store struct {
	db *sqlx.DB
}

type personRow struct {
	UUID         string `db:"uuid"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	EmployedFrom string `db:"employed_from"`
	EmployedTo   string `db:"employed_to"`
}

type affiliationRow struct {
	OrganizationUUID string `db:"organization_uuid"`
	ValidFrom        string `db:"valid_from"`
	ValidTo          string `db:"valid_to"`
}

// Open connects to the directory database and creates the schema if it does
// not exist.
func Open(cfg types.DirectoryConfig) (*Store, error) {
	dsn := cfg.DSN
	if cfg.Driver == "sqlite3" {
		if dir := filepath.Dir(dsn); dsn != ":memory:" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating directory database dir: %w", err)
			}
		}
		if !strings.Contains(dsn, "?") {
			dsn += "?_journal_mode=WAL&_foreign_keys=on"
		}
	}

	db, err := sqlx.Connect(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening person directory: %w", err)
	}
	if cfg.Driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db}
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
		`CREATE TABLE IF NOT EXISTS persons (
			uuid TEXT PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			name_key TEXT NOT NULL,
			employed_from TEXT NOT NULL DEFAULT '',
			employed_to TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_persons_name_key ON persons(name_key)`,
		`CREATE TABLE IF NOT EXISTS person_identifiers (
			person_uuid TEXT NOT NULL REFERENCES persons(uuid) ON DELETE CASCADE,
			identifier TEXT NOT NULL,
			PRIMARY KEY (person_uuid, identifier)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_person_identifiers_identifier ON person_identifiers(identifier)`,
		`CREATE TABLE IF NOT EXISTS affiliations (
			person_uuid TEXT NOT NULL REFERENCES persons(uuid) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			organization_uuid TEXT NOT NULL,
			valid_from TEXT NOT NULL DEFAULT '',
			valid_to TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (person_uuid, seq)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Upsert inserts or replaces a person with its identifiers and affiliations.
// Affiliation order is kept as given.
func (s *Store) Upsert(ctx context.Context, p types.PersonRecord) error {
	if p.UUID == "" {
		return fmt.Errorf("person %q %q has no uuid", p.FirstName, p.LastName)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO persons (uuid, first_name, last_name, name_key, employed_from, employed_to)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (uuid) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			name_key = excluded.name_key,
			employed_from = excluded.employed_from,
			employed_to = excluded.employed_to`),
		p.UUID, p.FirstName, p.LastName, FullNameKey(p.FirstName, p.LastName),
		formatDate(p.EmployedFrom), formatDate(p.EmployedTo))
	if err != nil {
		return fmt.Errorf("upserting person %s: %w", p.UUID, err)
	}

	for _, table := range []string{"person_identifiers", "affiliations"} {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM `+table+` WHERE person_uuid = ?`), p.UUID); err != nil {
			return fmt.Errorf("clearing %s for %s: %w", table, p.UUID, err)
		}
	}

	seen := make(map[string]bool)
	for _, id := range p.Identifiers {
		n := NormalizeIdentifier(id)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		if _, err := tx.ExecContext(ctx, tx.Rebind(
			`INSERT INTO person_identifiers (person_uuid, identifier) VALUES (?, ?)`), p.UUID, n); err != nil {
			return fmt.Errorf("inserting identifier %s: %w", id, err)
		}
	}

	for i, a := range p.Affiliations {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO affiliations (person_uuid, seq, organization_uuid, valid_from, valid_to)
			VALUES (?, ?, ?, ?, ?)`),
			p.UUID, i, a.OrganizationUUID, formatDate(a.ValidFrom), formatDate(a.ValidTo)); err != nil {
			return fmt.Errorf("inserting affiliation %s: %w", a.OrganizationUUID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing person %s: %w", p.UUID, err)
	}
	return nil
}

// Count returns the number of persons in the directory.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT count(*) FROM persons`); err != nil {
		return 0, fmt.Errorf("counting persons: %w", err)
	}
	return n, nil
}

// Get loads a person with all identifiers and affiliations.
func (s *Store) Get(ctx context.Context, uuid string) (*types.PersonRecord, error) {
	var row personRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(
		`SELECT uuid, first_name, last_name, employed_from, employed_to FROM persons WHERE uuid = ?`), uuid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading person %s: %w", uuid, err)
	}

	p := &types.PersonRecord{UUID: row.UUID, FirstName: row.FirstName, LastName: row.LastName}
	if p.EmployedFrom, err = parseDate(row.EmployedFrom); err != nil {
		return nil, err
	}
	if p.EmployedTo, err = parseDate(row.EmployedTo); err != nil {
		return nil, err
	}

	if err := s.db.SelectContext(ctx, &p.Identifiers, s.db.Rebind(
		`SELECT identifier FROM person_identifiers WHERE person_uuid = ? ORDER BY identifier`), uuid); err != nil {
		return nil, fmt.Errorf("loading identifiers of %s: %w", uuid, err)
	}

	var affs []affiliationRow
	if err := s.db.SelectContext(ctx, &affs, s.db.Rebind(
		`SELECT organization_uuid, valid_from, valid_to FROM affiliations WHERE person_uuid = ? ORDER BY seq`), uuid); err != nil {
		return nil, fmt.Errorf("loading affiliations of %s: %w", uuid, err)
	}
	for _, a := range affs {
		aff := types.Affiliation{OrganizationUUID: a.OrganizationUUID}
		if aff.ValidFrom, err = parseDate(a.ValidFrom); err != nil {
			return nil, err
		}
		if aff.ValidTo, err = parseDate(a.ValidTo); err != nil {
			return nil, err
		}
		p.Affiliations = append(p.Affiliations, aff)
	}
	return p, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(types.DateLayout)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(types.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored date %q: %w", s, err)
	}
	return t, nil
}
