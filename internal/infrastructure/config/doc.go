// Package config provides YAML configuration loading for Quill.
//
// This package manages:
//   - Named database connection definitions (driver, DSN, prefix, fetch mode)
//   - Optional query-executed event sinks (MQTT, InfluxDB)
//   - Structured logging settings
//
// Security Considerations:
//   - DSNs and broker credentials should be supplied via environment
//     variables (QUILL_DSN_<NAME>, QUILL_MQTT_PASSWORD, QUILL_INFLUXDB_TOKEN)
//     rather than committed to config files
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	conn, ok := cfg.Connection("main")
package config
