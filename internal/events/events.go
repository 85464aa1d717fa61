package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// QueryExecutedChannel is the logical channel name of query-executed
// notifications. Sinks derive their topic and measurement names from
// it, replacing spaces with a transport-appropriate separator.
const QueryExecutedChannel = "query executed"

// QueryExecuted is fired once per successfully executed statement.
//
// Bindings are the normalized bindings that reached the driver, and
// TimeMS is the elapsed wall time in milliseconds formatted to two
// decimal places, matching the connection's query log entry.
type QueryExecuted struct {
	ID         uuid.UUID `json:"id"`
	Connection string    `json:"connection"`
	Query      string    `json:"query"`
	Bindings   []any     `json:"bindings"`
	TimeMS     string    `json:"time_ms"`
	At         time.Time `json:"at"`
}

// Dispatcher receives query-executed notifications from a connection.
//
// Dispatch is called synchronously from the execution pipeline, once
// per successful statement. Implementations that perform I/O should
// buffer internally rather than block the caller.
type Dispatcher interface {
	Dispatch(event QueryExecuted)
}

// Memory is a Dispatcher that records events in order.
//
// It is useful in tests and for embedders that want to inspect
// dispatched events without an external sink.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Memory struct {
	mu     sync.Mutex
	events []QueryExecuted
}

// NewMemory creates an empty in-memory dispatcher.
func NewMemory() *Memory {
	return &Memory{}
}

// Dispatch appends the event to the in-memory record.
func (m *Memory) Dispatch(event QueryExecuted) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// Events returns a copy of the recorded events in dispatch order.
func (m *Memory) Events() []QueryExecuted {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]QueryExecuted, len(m.events))
	copy(out, m.events)
	return out
}

// Reset discards all recorded events.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}

// Multi fans a single event out to every wrapped dispatcher in order.
type Multi []Dispatcher

// Dispatch forwards the event to each dispatcher.
func (m Multi) Dispatch(event QueryExecuted) {
	for _, d := range m {
		d.Dispatch(event)
	}
}
