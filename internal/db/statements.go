package db

import "context"

// Select executes a query and fetches all rows in the connection's
// fetch mode, post-processed by the active Processor.
//
// In dry-run mode no driver call is made and an empty result is
// returned; the attempt is still timed and logged.
//
// Parameters:
//   - ctx: Context passed through to the driver
//   - query: SQL text with placeholders
//   - bindings: Placeholder values, normalized before execution
//
// Returns:
//   - []Row: Result rows (map[string]any or []any per fetch mode)
//   - error: *QueryError wrapping the driver failure, if any
func (c *Conn) Select(ctx context.Context, query string, bindings ...any) ([]Row, error) {
	return run(ctx, c, query, bindings, func(ctx context.Context, query string, bindings []any) ([]Row, error) {
		if c.mode == modeDryRun {
			return []Row{}, nil
		}

		rows, err := c.exec.QueryxContext(ctx, query, bindings...)
		if err != nil {
			return nil, err
		}
		defer rows.Close() //nolint:errcheck // Read errors surface via rows.Err

		out := []Row{}
		for rows.Next() {
			switch c.fetch {
			case FetchNum:
				values, err := rows.SliceScan()
				if err != nil {
					return nil, err
				}
				out = append(out, values)
			default:
				row := map[string]any{}
				if err := rows.MapScan(row); err != nil {
					return nil, err
				}
				out = append(out, row)
			}
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}

		return c.processor.ProcessSelect(out), nil
	})
}

// SelectOne executes a query and returns the first row, or nil when
// the result is empty.
func (c *Conn) SelectOne(ctx context.Context, query string, bindings ...any) (Row, error) {
	rows, err := c.Select(ctx, query, bindings...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Statement executes a query and reports success.
//
// In dry-run mode it reports true without touching the driver.
func (c *Conn) Statement(ctx context.Context, query string, bindings ...any) (bool, error) {
	return run(ctx, c, query, bindings, func(ctx context.Context, query string, bindings []any) (bool, error) {
		if c.mode == modeDryRun {
			return true, nil
		}

		if _, err := c.exec.ExecContext(ctx, query, bindings...); err != nil {
			return false, err
		}
		return true, nil
	})
}

// Insert executes an insert statement and reports success.
func (c *Conn) Insert(ctx context.Context, query string, bindings ...any) (bool, error) {
	return c.Statement(ctx, query, bindings...)
}

// InsertGetID executes an insert statement and returns the generated
// key, extracted by the active Processor.
//
// In dry-run mode it returns 0.
func (c *Conn) InsertGetID(ctx context.Context, query string, bindings ...any) (int64, error) {
	return run(ctx, c, query, bindings, func(ctx context.Context, query string, bindings []any) (int64, error) {
		if c.mode == modeDryRun {
			return 0, nil
		}

		result, err := c.exec.ExecContext(ctx, query, bindings...)
		if err != nil {
			return 0, err
		}
		return c.processor.ProcessInsertGetID(result)
	})
}

// Update executes an update statement and returns the affected-row
// count (0 in dry-run mode).
func (c *Conn) Update(ctx context.Context, query string, bindings ...any) (int64, error) {
	return c.affectingStatement(ctx, query, bindings)
}

// Delete executes a delete statement and returns the affected-row
// count (0 in dry-run mode).
func (c *Conn) Delete(ctx context.Context, query string, bindings ...any) (int64, error) {
	return c.affectingStatement(ctx, query, bindings)
}

// affectingStatement executes a statement and returns the number of
// rows it changed.
func (c *Conn) affectingStatement(ctx context.Context, query string, bindings []any) (int64, error) {
	return run(ctx, c, query, bindings, func(ctx context.Context, query string, bindings []any) (int64, error) {
		if c.mode == modeDryRun {
			return 0, nil
		}

		result, err := c.exec.ExecContext(ctx, query, bindings...)
		if err != nil {
			return 0, err
		}
		return result.RowsAffected()
	})
}

// Unprepared executes raw SQL text directly, with no parameter
// binding, and reports success.
//
// In dry-run mode it reports true without touching the driver.
func (c *Conn) Unprepared(ctx context.Context, query string) (bool, error) {
	return run(ctx, c, query, nil, func(ctx context.Context, query string, _ []any) (bool, error) {
		if c.mode == modeDryRun {
			return true, nil
		}

		if _, err := c.exec.ExecContext(ctx, query); err != nil {
			return false, err
		}
		return true, nil
	})
}
