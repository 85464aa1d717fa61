package db

import (
	"fmt"
	"strings"
)

// QueryError is raised when statement execution fails.
//
// The message embeds the original error, the offending SQL text, and a
// rendering of the normalized bindings. The original error stays
// reachable through Unwrap, so errors.Is and errors.As still work for
// callers that branch on error kind (constraint violations vs.
// connectivity failures).
//
// Transaction bodies are the exception: Transaction re-raises the
// body's error unmodified, without this wrapping.
type QueryError struct {
	// Query is the SQL text that failed.
	Query string

	// Bindings are the normalized bindings in effect.
	Bindings []any

	// Err is the original driver error.
	Err error
}

// Error renders the enriched message.
func (e *QueryError) Error() string {
	return fmt.Sprintf("%s (sql: %s, bindings: %s)", e.Err.Error(), e.Query, renderBindings(e.Bindings))
}

// Unwrap exposes the original driver error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// renderBindings produces the human-readable binding list embedded in
// error messages.
func renderBindings(bindings []any) string {
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		switch v := b.(type) {
		case string:
			parts[i] = fmt.Sprintf("%q", v)
		case nil:
			parts[i] = "null"
		default:
			parts[i] = fmt.Sprintf("%v", v)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
