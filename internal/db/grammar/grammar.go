package grammar

import "strings"

// Grammar is the dialect strategy consulted by the connection façade and
// the schema builder.
//
// A Grammar knows how the target database quotes identifiers, numbers its
// placeholders, and renders date literals. Implementations are stateless
// apart from the table prefix and are safe to share between a connection
// and a schema builder on the same goroutine.
type Grammar interface {
	// DateFormat returns the time.Format layout used to render
	// time.Time bindings as date literals.
	DateFormat() string

	// TablePrefix returns the prefix applied to table names.
	TablePrefix() string

	// SetTablePrefix sets the prefix applied to table names.
	SetTablePrefix(prefix string)

	// Wrap quotes an identifier, handling dotted segments
	// ("users.name" becomes "users"."name").
	Wrap(identifier string) string

	// WrapTable quotes a table name with the table prefix applied.
	WrapTable(table string) string

	// Placeholder returns the parameter placeholder for position n
	// (1-based): "?" for most dialects, "$n" for PostgreSQL.
	Placeholder(n int) string

	// CompileTableExists returns a query with a single placeholder that
	// selects a row when the named table exists.
	CompileTableExists() string
}

// defaultDateFormat is the date literal layout shared by the bundled
// grammars. All three target dialects accept it.
const defaultDateFormat = "2006-01-02 15:04:05"

// base carries the behaviour shared by the bundled grammars: prefix
// bookkeeping and quote-character driven identifier wrapping.
type base struct {
	prefix     string
	openQuote  string
	closeQuote string
}

// DateFormat returns the shared default date literal layout.
func (g *base) DateFormat() string {
	return defaultDateFormat
}

// TablePrefix returns the prefix applied to table names.
func (g *base) TablePrefix() string {
	return g.prefix
}

// SetTablePrefix sets the prefix applied to table names.
func (g *base) SetTablePrefix(prefix string) {
	g.prefix = prefix
}

// Placeholder returns the question-mark placeholder used by every
// bundled dialect except PostgreSQL.
func (g *base) Placeholder(_ int) string {
	return "?"
}

// Wrap quotes an identifier, wrapping each dotted segment separately.
// The segment "*" is passed through unquoted.
func (g *base) Wrap(identifier string) string {
	segments := strings.Split(identifier, ".")
	for i, s := range segments {
		segments[i] = g.wrapSegment(s)
	}
	return strings.Join(segments, ".")
}

// WrapTable quotes a table name with the prefix applied.
// For dotted names ("schema.table") the prefix attaches to the final
// segment only.
func (g *base) WrapTable(table string) string {
	segments := strings.Split(table, ".")
	segments[len(segments)-1] = g.prefix + segments[len(segments)-1]
	for i, s := range segments {
		segments[i] = g.wrapSegment(s)
	}
	return strings.Join(segments, ".")
}

// wrapSegment quotes a single identifier segment, doubling any embedded
// closing quote so crafted identifiers cannot break out of the quoting.
func (g *base) wrapSegment(segment string) string {
	if segment == "*" {
		return segment
	}
	escaped := strings.ReplaceAll(segment, g.closeQuote, g.closeQuote+g.closeQuote)
	return g.openQuote + escaped + g.closeQuote
}
