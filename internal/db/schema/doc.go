// Package schema provides a minimal schema builder that executes DDL
// through the connection façade.
//
// The builder compiles CREATE/DROP/existence statements with a schema
// grammar and issues them via the façade's statement pipeline, so they
// are logged, observed by event sinks, and captured by pretend mode
// like any other statement.
//
// Obtain a builder from a connection:
//
//	builder := conn.SchemaBuilder()
package schema
