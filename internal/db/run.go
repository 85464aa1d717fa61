package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quillsql/quill/internal/events"
)

// statementFunc is the executable core of a statement method. It
// receives the normalized bindings and performs (or, in dry-run mode,
// skips) the actual driver call.
type statementFunc[T any] func(ctx context.Context, query string, bindings []any) (T, error)

// run is the single choke point through which every statement method
// executes.
//
// It normalizes the bindings, times the callback, and on success
// appends exactly one log entry and fires exactly one query-executed
// event. On failure the error is wrapped in a *QueryError carrying the
// SQL text and bindings, and nothing is logged: failures are reported
// to the caller instead of the log.
func run[T any](ctx context.Context, c *Conn, query string, bindings []any, f statementFunc[T]) (T, error) {
	prepared := c.PrepareBindings(bindings)

	start := time.Now()
	result, err := f(ctx, query, prepared)
	if err != nil {
		var zero T
		return zero, &QueryError{Query: query, Bindings: prepared, Err: err}
	}

	elapsed := formatElapsed(time.Since(start))
	c.logQuery(query, prepared, elapsed)

	return result, nil
}

// formatElapsed renders a duration as milliseconds with two decimal
// places, the format carried by log entries and events.
func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.2f", float64(d)/float64(time.Millisecond))
}

// logQuery records a completed execution: one log entry, one event,
// one debug record. Called only from the pipeline, only on success.
func (c *Conn) logQuery(query string, bindings []any, elapsed string) {
	c.queryLog = append(c.queryLog, LogEntry{
		Query:    query,
		Bindings: bindings,
		Time:     elapsed,
	})

	if c.dispatcher != nil {
		c.dispatcher.Dispatch(events.QueryExecuted{
			ID:         uuid.New(),
			Connection: c.database,
			Query:      query,
			Bindings:   bindings,
			TimeMS:     elapsed,
			At:         time.Now().UTC(),
		})
	}

	if c.logger != nil {
		c.logger.Debug("query executed",
			"query", query,
			"time_ms", elapsed,
			"pretending", c.mode == modeDryRun,
		)
	}
}
