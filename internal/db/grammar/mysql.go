package grammar

// MySQL implements Grammar for MySQL and MariaDB databases.
type MySQL struct {
	base
}

// NewMySQL creates a MySQL grammar with no table prefix.
func NewMySQL() *MySQL {
	return &MySQL{base{openQuote: "`", closeQuote: "`"}}
}

// CompileTableExists returns the information_schema lookup for a table
// name in the current database.
func (g *MySQL) CompileTableExists() string {
	return "SELECT table_name FROM information_schema.tables WHERE table_schema = database() AND table_name = ?"
}
