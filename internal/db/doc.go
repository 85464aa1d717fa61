// Package db provides the Quill connection façade: a single handle
// that executes SQL, normalizes parameter bindings, manages
// transactions with rollback-on-failure, supports a non-executing
// dry-run capture mode, and records a log of every statement run.
//
// The façade wraps an already-open sqlx handle; opening, pooling, and
// closing connections belong to the caller. Dialect text concerns are
// delegated to a grammar strategy and result reshaping to a processor
// strategy, both swappable at runtime.
//
// Execution discipline:
//   - Every statement flows through one pipeline that times the call,
//     appends exactly one log entry on success, and fires exactly one
//     query-executed event.
//   - Failed statements are wrapped in *QueryError carrying the SQL
//     text and bindings, with the driver error reachable via Unwrap;
//     failures are never logged.
//   - Transaction re-raises its body's error unmodified after rolling
//     back, so callers can distinguish "rolled-back transaction,
//     original error" from "direct statement failure, wrapped error".
//   - Pretend switches the connection to dry-run: statements are timed
//     and captured but the driver is never called.
//
// Usage:
//
//	handle, _ := sqlx.Open("sqlite3", path)
//	conn := db.New(handle, db.Options{
//	    Database: "app",
//	    Grammar:  grammar.NewSQLite(),
//	})
//
//	rows, err := conn.Select(ctx, "SELECT * FROM users WHERE id = ?", 1)
//
// A Conn is not safe for concurrent use; run one per goroutine.
package db
