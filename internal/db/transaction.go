package db

import (
	"context"
	"fmt"
)

// Transaction runs proc inside a driver transaction.
//
// The transaction begins on the wrapped handle; every statement method
// called on the connection inside proc executes against it. On normal
// return the transaction commits. If proc returns an error, the
// transaction rolls back and the ORIGINAL error is returned unmodified,
// so the caller sees exactly the failure that occurred (unlike direct
// statement failures, which arrive wrapped in *QueryError).
//
// A nested call begins a second, independent transaction scope against
// the same handle; nested semantics are delegated entirely to the
// driver. There is no automatic retry.
//
// Parameters:
//   - ctx: Context passed through to the driver's begin
//   - proc: Transaction body, invoked with this connection
//
// Returns:
//   - error: proc's own error after rollback, a wrapped begin/commit
//     failure, or nil
func (c *Conn) Transaction(ctx context.Context, proc func(*Conn) error) (err error) {
	tx, err := c.handle.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	prev := c.exec
	c.exec = tx

	defer func() {
		c.exec = prev

		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				c.warn("rolling back after panic", "error", rbErr)
			}
			panic(p)
		}
	}()

	if procErr := proc(c); procErr != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			c.warn("rolling back transaction", "error", rbErr)
		}
		// The body's error is returned as-is, never rewrapped.
		return procErr
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// warn logs through the attached logger, if any.
func (c *Conn) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
