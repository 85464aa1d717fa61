package db

import (
	"github.com/quillsql/quill/internal/db/grammar"
	"github.com/quillsql/quill/internal/db/schema"
)

// SchemaGrammar returns the schema grammar strategy, or nil if unset.
func (c *Conn) SchemaGrammar() grammar.Grammar {
	return c.schemaGrammar
}

// SetSchemaGrammar sets the grammar used by the schema builder.
func (c *Conn) SetSchemaGrammar(g grammar.Grammar) {
	c.schemaGrammar = c.WithTablePrefix(g)
}

// SchemaBuilder constructs a schema builder for this connection.
//
// If no schema grammar has been set, the connection's query grammar
// (always present after New) is adopted as the default first.
//
// Returns:
//   - *schema.Builder: Builder executing DDL through this connection
func (c *Conn) SchemaBuilder() *schema.Builder {
	if c.schemaGrammar == nil {
		c.schemaGrammar = c.grammar
	}
	return schema.NewBuilder(c, c.schemaGrammar)
}
