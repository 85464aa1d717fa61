package config

import (
	"os"
	"path/filepath"
	"testing"
)

// writeConfig writes a temporary config file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

// TestLoad verifies configuration loading and defaults.
func TestLoad(t *testing.T) {
	t.Run("loads valid config", func(t *testing.T) {
		path := writeConfig(t, `
connections:
  main:
    driver: sqlite3
    dsn: ./data/app.db
    database: app
    prefix: app_
    fetch: assoc
logging:
  level: debug
  format: text
`)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		conn, ok := cfg.Connection("main")
		if !ok {
			t.Fatal("Connection(main) not found")
		}
		if conn.Driver != "sqlite3" {
			t.Errorf("Driver = %q, want sqlite3", conn.Driver)
		}
		if conn.Prefix != "app_" {
			t.Errorf("Prefix = %q, want app_", conn.Prefix)
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
		}
	})

	t.Run("applies defaults", func(t *testing.T) {
		path := writeConfig(t, `
logging:
  level: info
`)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if _, ok := cfg.Connection("default"); !ok {
			t.Error("default connection missing")
		}
		if cfg.Events.InfluxDB.BatchSize != 100 {
			t.Errorf("InfluxDB.BatchSize = %d, want 100", cfg.Events.InfluxDB.BatchSize)
		}
		if cfg.Events.MQTT.TopicPrefix != "quill" {
			t.Errorf("MQTT.TopicPrefix = %q, want quill", cfg.Events.MQTT.TopicPrefix)
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Error("Load() expected error for missing file")
		}
	})

	t.Run("returns error for invalid yaml", func(t *testing.T) {
		path := writeConfig(t, "connections: [not a map")
		if _, err := Load(path); err == nil {
			t.Error("Load() expected error for invalid yaml")
		}
	})
}

// TestValidate verifies configuration validation rules.
func TestValidate(t *testing.T) {
	t.Run("rejects missing driver", func(t *testing.T) {
		path := writeConfig(t, `
connections:
  broken:
    dsn: ./data/app.db
`)
		if _, err := Load(path); err == nil {
			t.Error("Load() expected error for missing driver")
		}
	})

	t.Run("rejects unknown fetch mode", func(t *testing.T) {
		path := writeConfig(t, `
connections:
  main:
    driver: sqlite3
    dsn: ":memory:"
    fetch: columns
`)
		if _, err := Load(path); err == nil {
			t.Error("Load() expected error for unknown fetch mode")
		}
	})

	t.Run("rejects enabled influxdb without token", func(t *testing.T) {
		path := writeConfig(t, `
connections:
  main:
    driver: sqlite3
    dsn: ":memory:"
events:
  influxdb:
    enabled: true
    url: http://localhost:8086
`)
		if _, err := Load(path); err == nil {
			t.Error("Load() expected error for missing influxdb token")
		}
	})

	t.Run("rejects out of range qos", func(t *testing.T) {
		path := writeConfig(t, `
connections:
  main:
    driver: sqlite3
    dsn: ":memory:"
events:
  mqtt:
    enabled: true
    qos: 3
`)
		if _, err := Load(path); err == nil {
			t.Error("Load() expected error for qos 3")
		}
	})
}

// TestEnvOverrides verifies environment variable precedence.
func TestEnvOverrides(t *testing.T) {
	t.Run("overrides dsn per connection", func(t *testing.T) {
		t.Setenv("QUILL_DSN_MAIN", "postgres://quill@db/quill")

		path := writeConfig(t, `
connections:
  main:
    driver: postgres
    dsn: placeholder
`)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		conn, _ := cfg.Connection("main")
		if conn.DSN != "postgres://quill@db/quill" {
			t.Errorf("DSN = %q, want env override", conn.DSN)
		}
	})

	t.Run("overrides influxdb token", func(t *testing.T) {
		t.Setenv("QUILL_INFLUXDB_TOKEN", "secret-token")

		path := writeConfig(t, `
connections:
  main:
    driver: sqlite3
    dsn: ":memory:"
events:
  influxdb:
    enabled: true
    url: http://localhost:8086
`)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.Events.InfluxDB.Token != "secret-token" {
			t.Errorf("Token = %q, want env override", cfg.Events.InfluxDB.Token)
		}
	})
}
