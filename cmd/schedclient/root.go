package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/artpar/schedclient/adapters/remote"
	"github.com/artpar/schedclient/adapters/sqlite"
	"github.com/artpar/schedclient/client"
	"github.com/artpar/schedclient/config"
	"github.com/artpar/schedclient/core/events"
	"github.com/artpar/schedclient/ports"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "schedclient",
	Short: "Client for the remote job-scheduling service",
	Long: `schedclient talks to a remote job-scheduling service through its
HTTP bridge and exposes the common operations as commands.

Object operations:
  schedclient exists /Production/Nightly
  schedclient search --pattern backup
  schedclient move /Dev/Job1 /Production
  schedclient copy /Production/Nightly /Archive/2024 --create-dest
  schedclient ensure-path /Production/Reports/Daily

Schedules:
  schedclient rename-schedules /Production/Nightly

Observability:
  schedclient audit --limit 50
  schedclient exporter`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "schedclient.yaml", "config file path")
}

// setup loads configuration and builds the logger from it.
func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, newLogger(cfg.Logging), nil
}

func newLogger(lc config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(lc.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if lc.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// openSession connects to the scheduler through the bridge, wiring the
// audit sink onto the event bus when enabled. The returned closer
// disconnects and releases the audit store.
func openSession(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*client.Session, func(), error) {
	bus := events.NewBus(logger)

	var store *sqlite.AuditStore
	if cfg.Audit.Enabled {
		var err error
		store, err = sqlite.Open(cfg.Audit.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open audit store: %w", err)
		}
		store.Attach(bus)
	}

	transport := remote.New(remote.Config{
		BaseURL: cfg.Bridge.URL,
		APIKey:  cfg.Bridge.APIKey,
		Timeout: cfg.Bridge.Timeout,
		Headers: cfg.Bridge.Headers,
	})

	sess, err := client.Connect(ctx, cfg.Scheduler.Server, ports.Credentials{
		Username: cfg.Credentials.Username,
		Password: cfg.Credentials.Password,
	}, client.Options{
		Transport: transport,
		Logger:    logger,
		Bus:       bus,
		Version:   cfg.Scheduler.Version,
	})
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, nil, err
	}

	closer := func() {
		if err := sess.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("disconnect failed")
		}
		if store != nil {
			store.Close()
		}
	}
	return sess, closer, nil
}
