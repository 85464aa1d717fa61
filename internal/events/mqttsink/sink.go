package mqttsink

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/quillsql/quill/internal/events"
	"github.com/quillsql/quill/internal/infrastructure/config"
)

// Connection constants.
const (
	// defaultConnectTimeout is the maximum time to wait for initial connection.
	defaultConnectTimeout = 10 * time.Second

	// defaultPublishTimeout is the maximum time to wait for publish acknowledgment.
	defaultPublishTimeout = 5 * time.Second

	// defaultDisconnectQuiesce is the time to wait for pending operations on disconnect.
	defaultDisconnectQuiesce = 1000 // milliseconds

	// defaultKeepAlive is the keepalive interval for the connection.
	defaultKeepAlive = 60 * time.Second

	// maxPayloadSize caps event payloads (1MB), aligning with typical
	// broker limits.
	maxPayloadSize = 1 << 20

	// tlsMinVersion is the minimum TLS version for secure connections.
	tlsMinVersion = tls.VersionTLS12
)

// Logger is the optional logging contract accepted by the sink.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Sink publishes query-executed events to an MQTT broker.
//
// Each event is marshalled to JSON and published to
// "<topic_prefix>/query-executed". Publish failures are reported
// through the optional logger; they never propagate back into the
// execution pipeline.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Sink struct {
	client pahomqtt.Client
	cfg    config.MQTTConfig
	topic  string

	logger   Logger
	loggerMu sync.RWMutex
}

// Connect establishes a connection to the MQTT broker and returns a
// ready sink.
//
// Parameters:
//   - cfg: MQTT sink configuration from config.yaml
//
// Returns:
//   - *Sink: Connected sink ready for use
//   - error: If the initial connection fails within the timeout
func Connect(cfg config.MQTTConfig) (*Sink, error) {
	opts := buildClientOptions(cfg)

	s := &Sink{
		cfg:   cfg,
		topic: topicFor(cfg.TopicPrefix),
	}

	s.client = pahomqtt.NewClient(opts)
	token := s.client.Connect()
	if !token.WaitTimeout(defaultConnectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, defaultConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	return s, nil
}

// Dispatch publishes the event to the sink's topic.
//
// Implements events.Dispatcher. Failures are logged and dropped so a
// broker outage cannot fail a caller's statement.
func (s *Sink) Dispatch(event events.QueryExecuted) {
	if err := s.publish(event); err != nil {
		s.logError("publishing query event", "error", err, "query", event.Query)
	}
}

// publish marshals and publishes a single event.
func (s *Sink) publish(event events.QueryExecuted) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	if len(payload) > maxPayloadSize {
		return fmt.Errorf("%w: payload size %d exceeds maximum %d bytes", ErrPublishFailed, len(payload), maxPayloadSize)
	}

	if !s.client.IsConnected() {
		return ErrNotConnected
	}

	// Events are transient; never retained.
	token := s.client.Publish(s.topic, byte(s.cfg.QoS), false, payload)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}

// SetLogger attaches a logger for publish failures.
func (s *Sink) SetLogger(logger Logger) {
	s.loggerMu.Lock()
	defer s.loggerMu.Unlock()
	s.logger = logger
}

// logError logs through the attached logger, if any.
func (s *Sink) logError(msg string, args ...any) {
	s.loggerMu.RLock()
	logger := s.logger
	s.loggerMu.RUnlock()
	if logger != nil {
		logger.Error(msg, args...)
	}
}

// Close disconnects from the broker, allowing pending publishes a
// short quiesce period.
func (s *Sink) Close() {
	if s.client != nil && s.client.IsConnected() {
		s.client.Disconnect(defaultDisconnectQuiesce)
	}
}

// topicLeaf is the event channel name rendered as an MQTT topic
// segment (spaces are not valid in topic levels).
var topicLeaf = strings.ReplaceAll(events.QueryExecutedChannel, " ", "-")

// topicFor derives the publish topic from the configured prefix.
func topicFor(prefix string) string {
	if prefix == "" {
		prefix = "quill"
	}
	return prefix + "/" + topicLeaf
}

// buildClientOptions creates paho MQTT options from sink config.
//
// This configures:
//   - Broker URL (tcp:// or ssl:// based on TLS setting)
//   - Client ID and credentials (if provided)
//   - Auto-reconnect and clean session mode
//   - TLS configuration (if enabled)
func buildClientOptions(cfg config.MQTTConfig) *pahomqtt.ClientOptions {
	opts := pahomqtt.NewClientOptions()

	scheme := "tcp"
	if cfg.Broker.TLS {
		scheme = "ssl"
	}
	opts.AddBroker(fmt.Sprintf("%s://%s:%d", scheme, cfg.Broker.Host, cfg.Broker.Port))

	opts.SetClientID(cfg.Broker.ClientID)

	if cfg.Auth.Username != "" {
		opts.SetUsername(cfg.Auth.Username)
		opts.SetPassword(cfg.Auth.Password)
	}

	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(defaultConnectTimeout)
	opts.SetKeepAlive(defaultKeepAlive)

	if cfg.Broker.TLS {
		opts.SetTLSConfig(&tls.Config{MinVersion: tlsMinVersion})
	}

	return opts
}
