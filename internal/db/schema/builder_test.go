package schema_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/quillsql/quill/internal/db"
	"github.com/quillsql/quill/internal/db/schema"
)

// newConn wraps a fresh file-backed SQLite store in a façade.
func newConn(t *testing.T, prefix string) *db.Conn {
	t.Helper()

	handle, err := sqlx.Open("sqlite3", filepath.Join(t.TempDir(), "schema.db"))
	if err != nil {
		t.Fatalf("opening sqlite handle: %v", err)
	}
	handle.SetMaxOpenConns(1)
	t.Cleanup(func() { handle.Close() }) //nolint:errcheck // Test cleanup

	return db.New(handle, db.Options{Database: "schema-test", Prefix: prefix})
}

var userColumns = []schema.Column{
	{Name: "id", Type: "INTEGER", Constraints: "PRIMARY KEY"},
	{Name: "name", Type: "TEXT", Constraints: "NOT NULL"},
	{Name: "active", Type: "INTEGER", Constraints: "NOT NULL DEFAULT 0"},
}

// TestBuilderLifecycle verifies create/exists/drop round trips.
func TestBuilderLifecycle(t *testing.T) {
	ctx := context.Background()
	conn := newConn(t, "")

	builder := conn.SchemaBuilder()

	// The schema grammar defaults to the query grammar on first use.
	if conn.SchemaGrammar() != conn.Grammar() {
		t.Error("SchemaBuilder() did not adopt the query grammar as default")
	}

	exists, err := builder.HasTable(ctx, "users")
	if err != nil {
		t.Fatalf("HasTable() error = %v", err)
	}
	if exists {
		t.Fatal("HasTable(users) = true before creation")
	}

	if err := builder.CreateTable(ctx, "users", userColumns); err != nil {
		t.Fatalf("CreateTable() error = %v", err)
	}

	exists, err = builder.HasTable(ctx, "users")
	if err != nil {
		t.Fatalf("HasTable() error = %v", err)
	}
	if !exists {
		t.Fatal("HasTable(users) = false after creation")
	}

	// The created table accepts writes through the façade.
	if _, err := conn.Insert(ctx, "INSERT INTO users (id, name) VALUES (?, ?)", 1, "ada"); err != nil {
		t.Fatalf("Insert() into created table error = %v", err)
	}

	if err := builder.DropTableIfExists(ctx, "users"); err != nil {
		t.Fatalf("DropTableIfExists() error = %v", err)
	}

	exists, err = builder.HasTable(ctx, "users")
	if err != nil {
		t.Fatalf("HasTable() error = %v", err)
	}
	if exists {
		t.Fatal("HasTable(users) = true after drop")
	}
}

// TestBuilderPrefix verifies the table prefix reaches the physical
// table name.
func TestBuilderPrefix(t *testing.T) {
	ctx := context.Background()
	conn := newConn(t, "app_")

	builder := conn.SchemaBuilder()

	if err := builder.CreateTable(ctx, "items", userColumns); err != nil {
		t.Fatalf("CreateTable() error = %v", err)
	}

	row, err := conn.SelectOne(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", "app_items")
	if err != nil {
		t.Fatalf("SelectOne() error = %v", err)
	}
	if row == nil {
		t.Fatal("prefixed table app_items not found in sqlite_master")
	}

	exists, err := builder.HasTable(ctx, "items")
	if err != nil {
		t.Fatalf("HasTable() error = %v", err)
	}
	if !exists {
		t.Error("HasTable(items) = false for prefixed table")
	}
}

// TestBuilderPretendCapturesDDL verifies DDL flows through the dry-run
// pipeline like any other statement.
func TestBuilderPretendCapturesDDL(t *testing.T) {
	ctx := context.Background()
	conn := newConn(t, "")

	builder := conn.SchemaBuilder()

	log, err := conn.Pretend(func(_ *db.Conn) error {
		return builder.CreateTable(ctx, "users", userColumns)
	})
	if err != nil {
		t.Fatalf("Pretend() error = %v", err)
	}

	if len(log) != 1 {
		t.Fatalf("Pretend() captured %d entries, want 1", len(log))
	}
	if !strings.HasPrefix(log[0].Query, "CREATE TABLE") {
		t.Errorf("captured query = %q, want CREATE TABLE ...", log[0].Query)
	}

	exists, err := builder.HasTable(ctx, "users")
	if err != nil {
		t.Fatalf("HasTable() error = %v", err)
	}
	if exists {
		t.Error("pretend mode created the table")
	}
}
