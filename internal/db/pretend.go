package db

// Pretend captures the statements proc would execute without touching
// persistent state.
//
// It clears the query log, switches the connection to dry-run mode,
// and invokes proc. Every statement method called inside observes the
// mode, skips the driver, and returns its placeholder value. Each
// attempt still passes through the timed and logged pipeline, so
// entries accumulate. The captured log is returned; proc's own result is the
// error value only, passed through for the caller's benefit.
//
// Not reentrant: a nested Pretend call clears the outer capture's
// in-progress log. Exactly one capture may be active per connection.
//
// Parameters:
//   - proc: Capture body, invoked with this connection
//
// Returns:
//   - []LogEntry: The statements captured, in call order
//   - error: proc's error, if any (dry-run itself never raises driver
//     errors, since drivers are never called)
func (c *Conn) Pretend(proc func(*Conn) error) ([]LogEntry, error) {
	c.queryLog = nil
	c.mode = modeDryRun
	defer func() { c.mode = modeLive }()

	err := proc(c)

	return c.QueryLog(), err
}
