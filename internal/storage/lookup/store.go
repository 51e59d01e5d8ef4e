// Package lookup installs the generated vocabulary tables into SQLite so
// stored rows can be checked against the same closed sets as the Go code.
package lookup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/louisbranch/goconst/internal/domain/access"
	"github.com/louisbranch/goconst/internal/domain/event"
	apperrors "github.com/louisbranch/goconst/internal/platform/errors"
	sqlitemigrate "github.com/louisbranch/goconst/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/goconst/internal/storage/lookup/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Lookup table names, as derived by goconst from the union names.
const (
	TableEventTypes = "event_types"
	TableRoles      = "roles"
)

var tables = map[string]bool{
	TableEventTypes: true,
	TableRoles:      true,
}

// pragmas uses the modernc.org/sqlite _pragma syntax; the driver applies
// them to every pooled connection.
const pragmas = "_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

// Entry is one row of a lookup table.
type Entry struct {
	Value       string
	Position    int
	Description string
}

// Store reads the lookup tables.
type Store struct {
	sqlDB   *sql.DB
	applied []string
}

// Open opens the SQLite database at path, installs every lookup table whose
// script changed and verifies the tables against the Go vocabularies.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?" + pragmas
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	applied, err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, "")
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	store := &Store{sqlDB: sqlDB, applied: applied}
	if err := store.Verify(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Applied lists the scripts executed by Open.
func (s *Store) Applied() []string {
	return append([]string(nil), s.applied...)
}

// DB exposes the handle for tables that reference the lookups.
func (s *Store) DB() *sql.DB {
	return s.sqlDB
}

// Entries returns the rows of table in position order.
func (s *Store) Entries(ctx context.Context, table string) ([]Entry, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if !tables[table] {
		return nil, fmt.Errorf("unknown lookup table %q", table)
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT value, position, description FROM "+table+" ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.Value, &entry.Position, &entry.Description); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return entries, nil
}

// EventTypes returns the stored event types in declaration order.
func (s *Store) EventTypes(ctx context.Context) ([]event.Type, error) {
	entries, err := s.Entries(ctx, TableEventTypes)
	if err != nil {
		return nil, err
	}
	values := make([]event.Type, 0, len(entries))
	for _, entry := range entries {
		value, err := event.ParseType(entry.Value)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

// Roles returns the stored roles in declaration order.
func (s *Store) Roles(ctx context.Context) ([]access.Role, error) {
	entries, err := s.Entries(ctx, TableRoles)
	if err != nil {
		return nil, err
	}
	values := make([]access.Role, 0, len(entries))
	for _, entry := range entries {
		value, err := access.ParseRole(entry.Value)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

// Verify fails with CodeLookupDrift when a table no longer lists exactly the
// declared tokens, in order, with their descriptions.
func (s *Store) Verify(ctx context.Context) error {
	declared := map[string][]Entry{
		TableEventTypes: entriesOf(event.Types(), event.Type.Description),
		TableRoles:      entriesOf(access.Roles(), access.Role.Description),
	}
	for _, table := range []string{TableEventTypes, TableRoles} {
		stored, err := s.Entries(ctx, table)
		if err != nil {
			return err
		}
		if err := compare(table, declared[table], stored); err != nil {
			return err
		}
	}
	return nil
}

func entriesOf[T ~string](values []T, describe func(T) string) []Entry {
	entries := make([]Entry, len(values))
	for i, value := range values {
		entries[i] = Entry{Value: string(value), Position: i + 1, Description: describe(value)}
	}
	return entries
}

func compare(table string, want, got []Entry) error {
	drift := func(detail string) error {
		return apperrors.WithMetadata(apperrors.CodeLookupDrift,
			fmt.Sprintf("lookup table %s is stale: %s; run go generate ./...", table, detail),
			map[string]string{"table": table})
	}
	if len(got) != len(want) {
		return drift(fmt.Sprintf("%d rows, want %d", len(got), len(want)))
	}
	for i := range want {
		switch {
		case got[i].Value != want[i].Value || got[i].Position != want[i].Position:
			return drift(fmt.Sprintf("row %d is %q, want %q", i+1, got[i].Value, want[i].Value))
		case got[i].Description != want[i].Description:
			return drift(fmt.Sprintf("description of %s differs", want[i].Value))
		}
	}
	return nil
}

// IsCheckViolation reports whether err is a rejected out-of-vocabulary value.
func IsCheckViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_CHECK
	}
	return strings.Contains(strings.ToLower(err.Error()), "check constraint failed")
}
