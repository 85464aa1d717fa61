package grammar

import "strconv"

// Postgres implements Grammar for PostgreSQL databases.
type Postgres struct {
	base
}

// NewPostgres creates a PostgreSQL grammar with no table prefix.
func NewPostgres() *Postgres {
	return &Postgres{base{openQuote: `"`, closeQuote: `"`}}
}

// Placeholder returns the numbered placeholder PostgreSQL expects
// ("$1", "$2", ...).
func (g *Postgres) Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// CompileTableExists returns the pg_catalog lookup for a table name in
// the current schema.
func (g *Postgres) CompileTableExists() string {
	return "SELECT tablename FROM pg_catalog.pg_tables WHERE schemaname = current_schema() AND tablename = $1"
}
