// Quill - SQL connection façade
//
// This is the command-line entry point for Quill. It loads a named
// connection from configuration, wraps the opened driver handle in the
// connection façade, and executes a single statement against it,
// either live or captured in pretend mode.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/quillsql/quill/internal/db"
	"github.com/quillsql/quill/internal/db/grammar"
	"github.com/quillsql/quill/internal/events"
	"github.com/quillsql/quill/internal/events/influxsink"
	"github.com/quillsql/quill/internal/events/mqttsink"
	"github.com/quillsql/quill/internal/infrastructure/config"
	"github.com/quillsql/quill/internal/infrastructure/logging"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0"
var version = "dev"

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// pingTimeout bounds the connectivity check on the opened handle.
const pingTimeout = 5 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for
// testability.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//   - args: Command-line arguments (flags plus positional bindings)
//   - out: Destination for result output
//
// Returns:
//   - error: nil on success, or error describing the failure
func run(ctx context.Context, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("quill", flag.ContinueOnError)
	configPath := flags.String("config", getConfigPath(), "path to config.yaml")
	connName := flags.String("connection", "default", "named connection to use")
	pretend := flags.Bool("pretend", false, "capture the statement without executing it")
	query := flags.String("exec", "", "SQL statement to execute (positional args are bindings)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*query) == "" {
		return fmt.Errorf("no statement given: use -exec")
	}

	log := logging.Default()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log = logging.New(cfg.Logging)
	log.Debug("configuration loaded", "path", *configPath, "version", version)

	connCfg, ok := cfg.Connection(*connName)
	if !ok {
		return fmt.Errorf("unknown connection %q", *connName)
	}

	// Open the driver handle. The façade treats it as pre-opened and
	// never closes it; that stays our job.
	handle, err := sqlx.Open(connCfg.Driver, connCfg.DSN)
	if err != nil {
		return fmt.Errorf("opening %s handle: %w", connCfg.Driver, err)
	}
	defer func() {
		if closeErr := handle.Close(); closeErr != nil {
			log.Error("error closing handle", "error", closeErr)
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := handle.PingContext(pingCtx); err != nil {
		return fmt.Errorf("verifying %s connection: %w", connCfg.Driver, err)
	}
	log.Debug("handle opened", "driver", connCfg.Driver, "connection", *connName)

	dispatcher, closeSinks, err := buildDispatcher(cfg.Events, log)
	if err != nil {
		return err
	}
	defer closeSinks()

	conn := db.New(handle, db.Options{
		Database:   connCfg.Database,
		Prefix:     connCfg.Prefix,
		Config:     connCfg.Options,
		FetchMode:  db.ParseFetchMode(connCfg.Fetch),
		Grammar:    grammarFor(connCfg.Driver),
		Dispatcher: dispatcher,
		Logger:     log.With("connection", *connName),
	})

	bindings := make([]any, flags.NArg())
	for i, arg := range flags.Args() {
		bindings[i] = arg
	}

	if *pretend {
		return runPretend(ctx, conn, *query, bindings, out)
	}
	return runLive(ctx, conn, *query, bindings, out)
}

// runLive executes the statement and prints rows or the affected count.
func runLive(ctx context.Context, conn *db.Conn, query string, bindings []any, out io.Writer) error {
	enc := json.NewEncoder(out)

	if isQuery(query) {
		rows, err := conn.Select(ctx, query, bindings...)
		if err != nil {
			return err
		}
		for _, row := range rows {
			if err := enc.Encode(row); err != nil {
				return fmt.Errorf("encoding row: %w", err)
			}
		}
		return nil
	}

	affected, err := conn.Update(ctx, query, bindings...)
	if err != nil {
		return err
	}
	return enc.Encode(map[string]any{"rows_affected": affected})
}

// runPretend captures the statement in dry-run mode and prints the log.
func runPretend(ctx context.Context, conn *db.Conn, query string, bindings []any, out io.Writer) error {
	entries, err := conn.Pretend(func(c *db.Conn) error {
		if isQuery(query) {
			_, selErr := c.Select(ctx, query, bindings...)
			return selErr
		}
		_, stmtErr := c.Statement(ctx, query, bindings...)
		return stmtErr
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	for _, entry := range entries {
		if err := enc.Encode(map[string]any{
			"query":    entry.Query,
			"bindings": entry.Bindings,
			"time":     entry.Time,
		}); err != nil {
			return fmt.Errorf("encoding log entry: %w", err)
		}
	}
	return nil
}

// buildDispatcher wires the configured event sinks into one dispatcher.
// The returned closer shuts down whatever was connected.
func buildDispatcher(cfg config.EventsConfig, log *logging.Logger) (events.Dispatcher, func(), error) {
	var sinks events.Multi
	var closers []func()

	if cfg.MQTT.Enabled {
		sink, err := mqttsink.Connect(cfg.MQTT)
		if err != nil {
			return nil, func() {}, fmt.Errorf("connecting MQTT sink: %w", err)
		}
		sink.SetLogger(log)
		sinks = append(sinks, sink)
		closers = append(closers, sink.Close)
		log.Debug("MQTT sink connected", "broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port))
	}

	if cfg.InfluxDB.Enabled {
		sink, err := influxsink.Connect(cfg.InfluxDB)
		if err != nil {
			return nil, func() {}, fmt.Errorf("connecting InfluxDB sink: %w", err)
		}
		sink.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		sinks = append(sinks, sink)
		closers = append(closers, sink.Close)
		log.Debug("InfluxDB sink connected", "url", cfg.InfluxDB.URL)
	}

	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	if len(sinks) == 0 {
		return nil, closeAll, nil
	}
	return sinks, closeAll, nil
}

// grammarFor selects the dialect grammar matching a driver name.
func grammarFor(driver string) grammar.Grammar {
	switch driver {
	case "postgres":
		return grammar.NewPostgres()
	case "mysql":
		return grammar.NewMySQL()
	default:
		return grammar.NewSQLite()
	}
}

// isQuery reports whether the statement produces a result set.
// Blank statements report false.
func isQuery(query string) bool {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return false
	}
	switch strings.ToLower(fields[0]) {
	case "select", "with", "pragma", "explain":
		return true
	}
	return false
}

// getConfigPath returns the config path from QUILL_CONFIG or the
// default location.
func getConfigPath() string {
	if path := os.Getenv("QUILL_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
