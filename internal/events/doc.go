// Package events defines the query-executed notification fired by the
// connection façade and the dispatchers that consume it.
//
// A connection dispatches exactly one QueryExecuted event per
// successfully executed statement (including dry-run captures). The
// Dispatcher interface decouples the façade from sink implementations;
// this package bundles an ordered in-memory recorder and a fan-out
// combinator, while the mqttsink and influxsink subpackages forward
// events to external systems.
package events
