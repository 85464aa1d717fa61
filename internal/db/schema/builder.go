package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/quillsql/quill/internal/db/grammar"
)

// Connection is the slice of the façade the schema builder needs.
// Statements issued here flow through the connection's execution
// pipeline, so pretend mode captures DDL like any other statement.
type Connection interface {
	Select(ctx context.Context, query string, bindings ...any) ([]any, error)
	Statement(ctx context.Context, query string, bindings ...any) (bool, error)
}

// Column describes one column of a table being created.
type Column struct {
	// Name is the unquoted column name.
	Name string

	// Type is the dialect column type (e.g., "INTEGER", "TEXT").
	Type string

	// Constraints is an optional trailing clause
	// (e.g., "PRIMARY KEY", "NOT NULL DEFAULT 0").
	Constraints string
}

// Builder performs schema operations through a connection façade,
// compiling DDL with a schema grammar.
type Builder struct {
	conn    Connection
	grammar grammar.Grammar
}

// NewBuilder creates a schema builder around a connection and grammar.
func NewBuilder(conn Connection, g grammar.Grammar) *Builder {
	return &Builder{conn: conn, grammar: g}
}

// HasTable reports whether the named table exists.
//
// The table prefix is applied before the lookup, matching what
// grammar-generated SQL would reference.
func (b *Builder) HasTable(ctx context.Context, table string) (bool, error) {
	rows, err := b.conn.Select(ctx, b.grammar.CompileTableExists(), b.grammar.TablePrefix()+table)
	if err != nil {
		return false, fmt.Errorf("checking table %s: %w", table, err)
	}
	return len(rows) > 0, nil
}

// CreateTable creates a table with the given columns.
func (b *Builder) CreateTable(ctx context.Context, table string, columns []Column) error {
	defs := make([]string, len(columns))
	for i, col := range columns {
		def := b.grammar.Wrap(col.Name) + " " + col.Type
		if col.Constraints != "" {
			def += " " + col.Constraints
		}
		defs[i] = def
	}

	query := fmt.Sprintf("CREATE TABLE %s (%s)", b.grammar.WrapTable(table), strings.Join(defs, ", "))
	if _, err := b.conn.Statement(ctx, query); err != nil {
		return fmt.Errorf("creating table %s: %w", table, err)
	}
	return nil
}

// DropTableIfExists drops the named table when present.
func (b *Builder) DropTableIfExists(ctx context.Context, table string) error {
	if _, err := b.conn.Statement(ctx, "DROP TABLE IF EXISTS "+b.grammar.WrapTable(table)); err != nil {
		return fmt.Errorf("dropping table %s: %w", table, err)
	}
	return nil
}
