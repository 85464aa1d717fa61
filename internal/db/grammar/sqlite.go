package grammar

// SQLite implements Grammar for SQLite databases.
type SQLite struct {
	base
}

// NewSQLite creates a SQLite grammar with no table prefix.
func NewSQLite() *SQLite {
	return &SQLite{base{openQuote: `"`, closeQuote: `"`}}
}

// CompileTableExists returns the sqlite_master lookup for a table name.
func (g *SQLite) CompileTableExists() string {
	return "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?"
}
