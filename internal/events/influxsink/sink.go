package influxsink

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/quillsql/quill/internal/events"
	"github.com/quillsql/quill/internal/infrastructure/config"
)

// Default timeouts for InfluxDB operations.
const (
	defaultConnectTimeout = 10 * time.Second

	// millisecondsPerSecond converts seconds to milliseconds for the InfluxDB API.
	millisecondsPerSecond = 1000
)

// measurement is the InfluxDB measurement every event is written to,
// derived from the event channel name.
var measurement = strings.ReplaceAll(events.QueryExecutedChannel, " ", "_")

// Sink records per-query elapsed times as InfluxDB points.
//
// Writes are non-blocking and batched by the client's WriteAPI, so a
// slow or unavailable InfluxDB never stalls statement execution.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Sink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPI

	// onError is called when async write errors occur.
	onError func(err error)
	mu      sync.RWMutex
}

// Connect establishes a connection to the InfluxDB server.
//
// It performs the following setup:
//  1. Creates the client with token authentication
//  2. Verifies connectivity with a ping
//  3. Configures the non-blocking write API with batching
//  4. Starts draining the async write-error channel
//
// Parameters:
//   - cfg: InfluxDB sink configuration from config.yaml
//
// Returns:
//   - *Sink: Connected sink ready for use
//   - error: If the sink is disabled or the connection fails
func Connect(cfg config.InfluxDBConfig) (*Sink, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}
	flushInterval := cfg.FlushInterval
	if flushInterval <= 0 {
		flushInterval = 10
	}

	// #nosec G115 -- values validated above to be positive
	client := influxdb2.NewClientWithOptions(
		cfg.URL,
		cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(uint(batchSize)).
			SetFlushInterval(uint(flushInterval)*millisecondsPerSecond),
	)

	ctx, cancel := context.WithTimeout(context.Background(), defaultConnectTimeout)
	defer cancel()

	healthy, err := client.Ping(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: ping failed: %w", ErrConnectionFailed, err)
	}
	if !healthy {
		client.Close()
		return nil, fmt.Errorf("%w: server not healthy", ErrConnectionFailed)
	}

	s := &Sink{
		client:   client,
		writeAPI: client.WriteAPI(cfg.Org, cfg.Bucket),
	}

	go s.handleWriteErrors(s.writeAPI.Errors())

	return s, nil
}

// Dispatch writes the event as a point tagged by connection name.
//
// Implements events.Dispatcher. The write is buffered and flushed
// asynchronously.
func (s *Sink) Dispatch(event events.QueryExecuted) {
	s.writeAPI.WritePoint(newPoint(event))
}

// SetOnError registers a callback for async write failures.
func (s *Sink) SetOnError(fn func(err error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onError = fn
}

// handleWriteErrors drains async write errors from the WriteAPI.
func (s *Sink) handleWriteErrors(errorsCh <-chan error) {
	for err := range errorsCh {
		s.mu.RLock()
		callback := s.onError
		s.mu.RUnlock()
		if callback != nil {
			callback(err)
		}
	}
}

// Close flushes buffered points and releases the client.
func (s *Sink) Close() {
	s.writeAPI.Flush()
	s.client.Close()
}

// newPoint converts an event into an InfluxDB point.
//
// The formatted elapsed string is parsed back to a float field; a
// malformed value records as zero rather than dropping the point.
func newPoint(event events.QueryExecuted) *write.Point {
	elapsed, err := strconv.ParseFloat(event.TimeMS, 64)
	if err != nil {
		elapsed = 0
	}

	return write.NewPoint(
		measurement,
		map[string]string{
			"connection": event.Connection,
		},
		map[string]interface{}{
			"elapsed_ms": elapsed,
			"query":      event.Query,
		},
		event.At,
	)
}
