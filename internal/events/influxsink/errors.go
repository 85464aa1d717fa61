package influxsink

import "errors"

// Sentinel errors for the InfluxDB event sink.
//
// These errors can be checked using errors.Is() for specific handling:
//
//	if errors.Is(err, influxsink.ErrDisabled) {
//	    // Sink not configured; skip wiring
//	}
var (
	// ErrConnectionFailed indicates the initial connection attempt failed.
	ErrConnectionFailed = errors.New("influxsink: connection failed")

	// ErrDisabled indicates the InfluxDB sink is disabled in config.
	ErrDisabled = errors.New("influxsink: disabled in configuration")
)
