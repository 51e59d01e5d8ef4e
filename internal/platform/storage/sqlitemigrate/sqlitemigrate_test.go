package sqlitemigrate

import (
	"context"
	"database/sql"
	"reflect"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

const createItems = "-- +migrate Up\nCREATE TABLE items(id TEXT PRIMARY KEY);"

func TestApplyMigrationsRecordsChecksum(t *testing.T) {
	db := openInMemoryDB(t)
	migrations := fstest.MapFS{
		"001_create.sql": &fstest.MapFile{Data: []byte(createItems)},
	}

	applied, err := ApplyMigrations(context.Background(), db, migrations, "")
	if err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if !reflect.DeepEqual(applied, []string{"001_create.sql"}) {
		t.Fatalf("applied = %v", applied)
	}
	if got := queryString(t, db, "SELECT checksum FROM schema_migrations WHERE name = '001_create.sql'"); got != Checksum([]byte(createItems)) {
		t.Fatalf("checksum = %q", got)
	}
	if !tableExists(t, db, "items") {
		t.Fatal("expected applied table to exist")
	}
}

func TestApplyMigrationsSkipsUnchangedFiles(t *testing.T) {
	db := openInMemoryDB(t)
	migrations := fstest.MapFS{
		"001_create.sql": &fstest.MapFile{Data: []byte(createItems)},
	}
	if _, err := ApplyMigrations(context.Background(), db, migrations, ""); err != nil {
		t.Fatalf("apply initial migrations: %v", err)
	}

	applied, err := ApplyMigrations(context.Background(), db, migrations, "")
	if err != nil {
		t.Fatalf("replay migrations: %v", err)
	}
	if len(applied) != 0 {
		t.Fatalf("expected nothing applied on replay, got %v", applied)
	}
	if rows := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); rows != 1 {
		t.Fatalf("expected single migration row after replay, got %d", rows)
	}
}

func TestApplyMigrationsReappliesChangedFiles(t *testing.T) {
	db := openInMemoryDB(t)
	first := fstest.MapFS{
		"001_roles.sql": &fstest.MapFile{Data: []byte(
			"DROP TABLE IF EXISTS roles;\nCREATE TABLE roles(value TEXT PRIMARY KEY);\nINSERT INTO roles VALUES ('ADMIN');",
		)},
	}
	if _, err := ApplyMigrations(context.Background(), db, first, ""); err != nil {
		t.Fatalf("apply first version: %v", err)
	}

	second := fstest.MapFS{
		"001_roles.sql": &fstest.MapFile{Data: []byte(
			"DROP TABLE IF EXISTS roles;\nCREATE TABLE roles(value TEXT PRIMARY KEY);\nINSERT INTO roles VALUES ('ADMIN'), ('MEMBER');",
		)},
	}
	applied, err := ApplyMigrations(context.Background(), db, second, "")
	if err != nil {
		t.Fatalf("apply second version: %v", err)
	}
	if !reflect.DeepEqual(applied, []string{"001_roles.sql"}) {
		t.Fatalf("applied = %v", applied)
	}
	if rows := queryInt64(t, db, "SELECT COUNT(*) FROM roles"); rows != 2 {
		t.Fatalf("expected regenerated table with 2 rows, got %d", rows)
	}
	if rows := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); rows != 1 {
		t.Fatalf("expected checksum update in place, got %d rows", rows)
	}
}

func TestApplyMigrationsDoesNotRecordFailedMigration(t *testing.T) {
	db := openInMemoryDB(t)

	bad := fstest.MapFS{
		"001_bad.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREAT table things(id INT);")},
	}
	if _, err := ApplyMigrations(context.Background(), db, bad, ""); err == nil {
		t.Fatalf("expected bad migration to fail")
	}
	if rows := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); rows != 0 {
		t.Fatalf("expected failed migration to stay unrecorded, got %d rows", rows)
	}

	good := fstest.MapFS{
		"001_bad.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREATE TABLE things(id INTEGER PRIMARY KEY);")},
	}
	if _, err := ApplyMigrations(context.Background(), db, good, ""); err != nil {
		t.Fatalf("apply fixed migration: %v", err)
	}
	if rows := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); rows != 1 {
		t.Fatalf("expected fixed migration to be recorded, got %d rows", rows)
	}
}

func TestApplyMigrationsRespectsRoot(t *testing.T) {
	db := openInMemoryDB(t)
	migrations := fstest.MapFS{
		"events/001_events.sql": &fstest.MapFile{Data: []byte("CREATE TABLE event_rows(id TEXT PRIMARY KEY);")},
		"roles/001_roles.sql":   &fstest.MapFile{Data: []byte("CREATE TABLE role_rows(id TEXT PRIMARY KEY);")},
	}

	if _, err := ApplyMigrations(context.Background(), db, migrations, "events"); err != nil {
		t.Fatalf("apply migrations with root: %v", err)
	}
	if key := queryString(t, db, "SELECT name FROM schema_migrations LIMIT 1"); key != "events/001_events.sql" {
		t.Fatalf("expected migration key with root path, got %q", key)
	}
	if !tableExists(t, db, "event_rows") {
		t.Fatal("expected migrated table in root-based migration")
	}
	if tableExists(t, db, "role_rows") {
		t.Fatal("expected sibling directory to be ignored")
	}
}

func TestApplyMigrationsRequiresDB(t *testing.T) {
	if _, err := ApplyMigrations(context.Background(), nil, fstest.MapFS{}, ""); err == nil {
		t.Fatal("expected error for nil db")
	}
}

func TestExtractUpMigration(t *testing.T) {
	tests := map[string]struct {
		content string
		want    string
	}{
		"no markers": {content: "CREATE TABLE a(id INT);", want: "CREATE TABLE a(id INT);"},
		"up only":    {content: "-- +migrate Up\nCREATE TABLE a(id INT);", want: "\nCREATE TABLE a(id INT);"},
		"up and down": {
			content: "-- +migrate Up\nCREATE TABLE a(id INT);\n-- +migrate Down\nDROP TABLE a;",
			want:    "\nCREATE TABLE a(id INT);\n",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := ExtractUpMigration(tc.content); got != tc.want {
				t.Fatalf("ExtractUpMigration = %q, want %q", got, tc.want)
			}
		})
	}
}

func openInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	// Every pooled connection would otherwise see its own empty database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("close db: %v", err)
		}
	})
	return db
}

func queryInt64(t *testing.T, db *sql.DB, query string) int64 {
	t.Helper()
	var value int64
	if err := db.QueryRow(query).Scan(&value); err != nil {
		t.Fatalf("query int value: %v", err)
	}
	return value
}

func queryString(t *testing.T, db *sql.DB, query string) string {
	t.Helper()
	var value string
	if err := db.QueryRow(query).Scan(&value); err != nil {
		t.Fatalf("query string value: %v", err)
	}
	return value
}

func tableExists(t *testing.T, db *sql.DB, tableName string) bool {
	t.Helper()
	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", tableName).Scan(&name)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		t.Fatalf("check table exists: %v", err)
	}
	return name == tableName
}
