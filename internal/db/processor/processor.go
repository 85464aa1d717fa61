package processor

import "database/sql"

// Processor is the post-processing strategy applied to raw results
// before the connection façade returns them.
//
// Implementations are stateless and may be swapped at runtime via the
// connection's SetProcessor accessor.
type Processor interface {
	// ProcessSelect reshapes the rows produced by a select statement.
	// Each element is a row in the connection's fetch-mode shape
	// (map[string]any or []any).
	ProcessSelect(rows []any) []any

	// ProcessInsertGetID extracts the generated key from an insert
	// result. Drivers without LastInsertId support surface their own
	// error here.
	ProcessInsertGetID(result sql.Result) (int64, error)
}

// Default is the identity processor: rows pass through untouched and
// generated keys come straight from the driver result.
type Default struct{}

// NewDefault creates the identity processor.
func NewDefault() *Default {
	return &Default{}
}

// ProcessSelect returns the rows unchanged.
func (p *Default) ProcessSelect(rows []any) []any {
	return rows
}

// ProcessInsertGetID returns the driver-reported last insert ID.
func (p *Default) ProcessInsertGetID(result sql.Result) (int64, error) {
	return result.LastInsertId()
}
