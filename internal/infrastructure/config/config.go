package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for Quill.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Connections map[string]ConnectionConfig `yaml:"connections"`
	Events      EventsConfig                `yaml:"events"`
	Logging     LoggingConfig               `yaml:"logging"`
}

// ConnectionConfig describes one named database connection.
//
// The driver handle itself is opened by the caller (cmd/quill or an
// embedding application); the façade never opens or closes connections.
type ConnectionConfig struct {
	// Driver is the database/sql driver name (e.g., "sqlite3", "postgres").
	Driver string `yaml:"driver"`

	// DSN is the driver-specific data source name.
	DSN string `yaml:"dsn"`

	// Database is the logical database name reported by the connection.
	Database string `yaml:"database"`

	// Prefix is prepended to table names by grammar-generated SQL.
	// Useful for multi-tenant schemas sharing one store. Default empty.
	Prefix string `yaml:"prefix"`

	// Fetch selects the row shape: "assoc" (map rows) or "num" (slice rows).
	Fetch string `yaml:"fetch"`

	// Options is an opaque key/value mapping exposed through the
	// connection's Config accessor. No fixed schema is imposed.
	Options map[string]any `yaml:"options"`
}

// EventsConfig contains the optional query-executed event sinks.
type EventsConfig struct {
	MQTT     MQTTConfig     `yaml:"mqtt"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
}

// MQTTConfig contains MQTT broker settings for the MQTT event sink.
type MQTTConfig struct {
	Enabled     bool             `yaml:"enabled"`
	Broker      MQTTBrokerConfig `yaml:"broker"`
	Auth        MQTTAuthConfig   `yaml:"auth"`
	QoS         int              `yaml:"qos"`
	TopicPrefix string           `yaml:"topic_prefix"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// InfluxDBConfig contains InfluxDB settings for the query-timing sink.
type InfluxDBConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Token   string `yaml:"token"`
	Org     string `yaml:"org"`
	Bucket  string `yaml:"bucket"`

	// BatchSize is the number of points buffered before a write (default 100).
	BatchSize int `yaml:"batch_size"`

	// FlushInterval is the maximum buffering delay in seconds (default 10).
	FlushInterval int `yaml:"flush_interval"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads, overrides, and validates configuration from a YAML file.
//
// Precedence (lowest to highest): defaults, file values, environment
// variables.
//
// Parameters:
//   - path: Filesystem path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If the file cannot be read, parsed, or fails validation
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Connections: map[string]ConnectionConfig{
			"default": {
				Driver:   "sqlite3",
				DSN:      ":memory:",
				Database: "default",
				Fetch:    "assoc",
			},
		},
		Events: EventsConfig{
			MQTT: MQTTConfig{
				Broker: MQTTBrokerConfig{
					Host:     "localhost",
					Port:     1883,
					ClientID: "quill",
				},
				QoS:         1,
				TopicPrefix: "quill",
			},
			InfluxDB: InfluxDBConfig{
				BatchSize:     100,
				FlushInterval: 10,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: QUILL_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Connection DSNs carry credentials; allow per-connection override via
	// QUILL_DSN_<NAME> with the connection name upper-cased.
	for name, conn := range cfg.Connections {
		key := "QUILL_DSN_" + strings.ToUpper(name)
		if v := os.Getenv(key); v != "" {
			conn.DSN = v
			cfg.Connections[name] = conn
		}
	}

	// MQTT
	if v := os.Getenv("QUILL_MQTT_HOST"); v != "" {
		cfg.Events.MQTT.Broker.Host = v
	}
	if v := os.Getenv("QUILL_MQTT_USERNAME"); v != "" {
		cfg.Events.MQTT.Auth.Username = v
	}
	if v := os.Getenv("QUILL_MQTT_PASSWORD"); v != "" {
		cfg.Events.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("QUILL_INFLUXDB_TOKEN"); v != "" {
		cfg.Events.InfluxDB.Token = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if len(c.Connections) == 0 {
		errs = append(errs, "at least one connection is required")
	}

	for name, conn := range c.Connections {
		if conn.Driver == "" {
			errs = append(errs, fmt.Sprintf("connections.%s.driver is required", name))
		}
		if conn.DSN == "" {
			errs = append(errs, fmt.Sprintf("connections.%s.dsn is required", name))
		}
		switch conn.Fetch {
		case "", "assoc", "num":
		default:
			errs = append(errs, fmt.Sprintf("connections.%s.fetch must be \"assoc\" or \"num\"", name))
		}
	}

	if c.Events.MQTT.Enabled {
		if c.Events.MQTT.Broker.Host == "" {
			errs = append(errs, "events.mqtt.broker.host is required when MQTT is enabled")
		}
		if c.Events.MQTT.QoS < 0 || c.Events.MQTT.QoS > 2 {
			errs = append(errs, "events.mqtt.qos must be 0, 1, or 2")
		}
	}

	if c.Events.InfluxDB.Enabled {
		if c.Events.InfluxDB.URL == "" {
			errs = append(errs, "events.influxdb.url is required when InfluxDB is enabled")
		}
		if c.Events.InfluxDB.Token == "" {
			errs = append(errs, "events.influxdb.token is required when InfluxDB is enabled")
		}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("logging.level %q is not recognised", c.Logging.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// Connection returns the named connection configuration.
//
// Returns:
//   - ConnectionConfig: The configuration for the named connection
//   - bool: false if no connection with that name exists
func (c *Config) Connection(name string) (ConnectionConfig, bool) {
	conn, ok := c.Connections[name]
	return conn, ok
}
