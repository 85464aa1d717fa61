package db

import (
	"github.com/jmoiron/sqlx"

	"github.com/quillsql/quill/internal/db/grammar"
	"github.com/quillsql/quill/internal/db/processor"
	"github.com/quillsql/quill/internal/events"
	"github.com/quillsql/quill/internal/infrastructure/logging"
)

// Row is a single result row. Its concrete shape depends on the
// connection's fetch mode: map[string]any for FetchAssoc, []any for
// FetchNum.
type Row = any

// FetchMode selects the shape in which result rows are materialised.
type FetchMode int

const (
	// FetchAssoc materialises each row as a map[string]any keyed by
	// column name.
	FetchAssoc FetchMode = iota

	// FetchNum materialises each row as a []any in column order.
	FetchNum
)

// ParseFetchMode converts a configuration string to a FetchMode.
// Unrecognised values default to FetchAssoc.
func ParseFetchMode(s string) FetchMode {
	if s == "num" {
		return FetchNum
	}
	return FetchAssoc
}

// executionMode distinguishes live execution from dry-run capture.
// It is threaded through the execution pipeline so every statement
// method respects it uniformly.
type executionMode int

const (
	modeLive executionMode = iota
	modeDryRun
)

// LogEntry is one recorded statement execution.
//
// Entries are appended by the execution pipeline on success, never
// mutated, and cleared only by FlushQueryLog or by entering pretend
// mode.
type LogEntry struct {
	// Query is the SQL text as given to the statement method.
	Query string

	// Bindings are the normalized bindings that reached the driver.
	Bindings []any

	// Time is the elapsed wall time in milliseconds, formatted to two
	// decimal places.
	Time string
}

// Conn is a façade over an already-open driver handle.
//
// It executes SQL, normalizes parameter bindings, manages transactions
// with rollback-on-failure, supports a non-executing dry-run capture
// mode, and records a log of every statement run. SQL dialect concerns
// are delegated to a Grammar strategy and result reshaping to a
// Processor strategy; both are swappable at runtime.
//
// The handle's lifetime belongs to the caller: Conn never opens or
// closes it.
//
// Thread Safety:
//   - A Conn is NOT safe for concurrent use. The pretending mode,
//     query log, and transaction executor are unsynchronised state.
//     Use one Conn per goroutine, each around its own handle.
type Conn struct {
	handle *sqlx.DB

	// exec is the current executor: the handle, or the active
	// transaction while one is open.
	exec sqlx.ExtContext

	database string
	prefix   string
	config   map[string]any
	fetch    FetchMode
	mode     executionMode
	queryLog []LogEntry

	grammar       grammar.Grammar
	schemaGrammar grammar.Grammar
	processor     processor.Processor
	dispatcher    events.Dispatcher
	logger        *logging.Logger
}

// Options configures a new Conn. Zero values select the documented
// defaults; strategies are injected explicitly rather than pulled from
// process-wide globals.
type Options struct {
	// Database is the logical database name, carried on events and
	// error context.
	Database string

	// Prefix is the table prefix pushed into the grammar.
	Prefix string

	// Config is an opaque caller-defined mapping exposed via Config.
	Config map[string]any

	// FetchMode selects the default row shape (FetchAssoc if unset).
	FetchMode FetchMode

	// Grammar is the dialect strategy (SQLite grammar if nil).
	Grammar grammar.Grammar

	// Processor is the result strategy (identity processor if nil).
	Processor processor.Processor

	// Dispatcher receives query-executed events (none if nil).
	Dispatcher events.Dispatcher

	// Logger receives debug records for executed statements (none if nil).
	Logger *logging.Logger
}

// New wraps an already-open driver handle in a connection façade.
//
// Parameters:
//   - handle: A pre-opened sqlx handle; ownership of its lifetime
//     stays with the caller
//   - opts: Construction options; zero values select defaults
//
// Returns:
//   - *Conn: Ready connection façade
func New(handle *sqlx.DB, opts Options) *Conn {
	g := opts.Grammar
	if g == nil {
		g = grammar.NewSQLite()
	}

	p := opts.Processor
	if p == nil {
		p = processor.NewDefault()
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = map[string]any{}
	}

	c := &Conn{
		handle:     handle,
		exec:       handle,
		database:   opts.Database,
		prefix:     opts.Prefix,
		config:     cfg,
		fetch:      opts.FetchMode,
		processor:  p,
		dispatcher: opts.Dispatcher,
		logger:     opts.Logger,
	}
	c.grammar = c.WithTablePrefix(g)

	return c
}

// Handle returns the wrapped driver handle.
//
// It is an escape hatch for callers that need driver features the
// façade does not expose; statements issued directly on the handle are
// neither logged nor observed by pretend mode.
func (c *Conn) Handle() *sqlx.DB {
	return c.handle
}

// DatabaseName returns the logical database name.
func (c *Conn) DatabaseName() string {
	return c.database
}

// SetDatabaseName sets the logical database name.
func (c *Conn) SetDatabaseName(name string) {
	c.database = name
}

// TablePrefix returns the connection's table prefix.
func (c *Conn) TablePrefix() string {
	return c.prefix
}

// SetTablePrefix sets the table prefix and pushes it into the current
// grammar.
func (c *Conn) SetTablePrefix(prefix string) {
	c.prefix = prefix
	c.grammar.SetTablePrefix(prefix)
}

// WithTablePrefix pushes the connection's prefix into a borrowed
// grammar and returns it, making the grammar prefix-aware before it
// generates SQL.
func (c *Conn) WithTablePrefix(g grammar.Grammar) grammar.Grammar {
	g.SetTablePrefix(c.prefix)
	return g
}

// Grammar returns the active dialect strategy.
func (c *Conn) Grammar() grammar.Grammar {
	return c.grammar
}

// SetGrammar replaces the dialect strategy. The connection's prefix is
// pushed into the replacement.
func (c *Conn) SetGrammar(g grammar.Grammar) {
	c.grammar = c.WithTablePrefix(g)
}

// Processor returns the active result strategy.
func (c *Conn) Processor() processor.Processor {
	return c.processor
}

// SetProcessor replaces the result strategy.
func (c *Conn) SetProcessor(p processor.Processor) {
	c.processor = p
}

// Dispatcher returns the attached event dispatcher, or nil.
func (c *Conn) Dispatcher() events.Dispatcher {
	return c.dispatcher
}

// SetDispatcher attaches an event dispatcher. Pass nil to detach.
func (c *Conn) SetDispatcher(d events.Dispatcher) {
	c.dispatcher = d
}

// FetchMode returns the default row shape.
func (c *Conn) FetchMode() FetchMode {
	return c.fetch
}

// SetFetchMode sets the default row shape for subsequent selects.
func (c *Conn) SetFetchMode(mode FetchMode) {
	c.fetch = mode
}

// Config looks up a caller-defined configuration value by key.
// It returns nil when the key is absent; no fixed schema is imposed.
func (c *Conn) Config(key string) any {
	return c.config[key]
}

// Pretending reports whether a dry-run capture is active.
func (c *Conn) Pretending() bool {
	return c.mode == modeDryRun
}

// QueryLog returns a copy of the recorded statement log in execution
// order.
func (c *Conn) QueryLog() []LogEntry {
	out := make([]LogEntry, len(c.queryLog))
	copy(out, c.queryLog)
	return out
}

// FlushQueryLog discards all recorded log entries.
func (c *Conn) FlushQueryLog() {
	c.queryLog = nil
}
