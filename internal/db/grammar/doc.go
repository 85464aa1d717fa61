// Package grammar provides SQL dialect strategies for the connection
// façade and schema builder.
//
// A Grammar answers the dialect-specific questions the façade cannot:
// how identifiers are quoted, how parameter placeholders are numbered,
// and what layout date literals use. Three grammars are bundled
// (SQLite, PostgreSQL, MySQL); callers may supply their own
// implementation for other dialects.
//
// Grammars are selected at connection construction time and may be
// swapped at runtime via the connection's SetGrammar accessor.
package grammar
