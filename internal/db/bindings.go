package db

import "time"

// Expr marks a raw SQL fragment. Expressions pass through binding
// normalization untouched; they exist for callers assembling SQL with
// grammar help that must flag a value as already-rendered SQL.
type Expr string

// Raw wraps a SQL fragment in the raw-expression marker type.
func Raw(value string) Expr {
	return Expr(value)
}

// PrepareBindings coerces high-level binding values into driver-safe
// primitives:
//
//   - time.Time values are rendered as strings using the grammar's
//     date format
//   - boolean false becomes int64(0)
//   - everything else, including boolean true, passes through unchanged
//
// Only false is rewritten; the true/false asymmetry is part of the
// execution contract and callers relying on symmetric boolean handling
// must coerce true themselves.
//
// The function is pure: output length and order match the input, and
// reapplying it to its own output is a no-op.
func (c *Conn) PrepareBindings(bindings []any) []any {
	format := c.grammar.DateFormat()

	prepared := make([]any, len(bindings))
	for i, value := range bindings {
		switch v := value.(type) {
		case time.Time:
			prepared[i] = v.Format(format)
		case bool:
			if v {
				prepared[i] = v
			} else {
				prepared[i] = int64(0)
			}
		default:
			prepared[i] = value
		}
	}

	return prepared
}
