package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/artpar/schedclient/adapters/metrics"
	"github.com/artpar/schedclient/config"
)

var exporterInterval time.Duration

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Run the Prometheus exporter",
	Long: `Keep a session open, probe the scheduler periodically, and expose
dispatch metrics for Prometheus scraping. The config file is watched for
changes; logging level follows it without a restart (SIGHUP also reloads).

Example:
  schedclient exporter --interval 30s`,
	RunE: runExporter,
}

func init() {
	rootCmd.AddCommand(exporterCmd)

	exporterCmd.Flags().DurationVar(&exporterInterval, "interval", 30*time.Second, "probe interval")
}

func runExporter(cmd *cobra.Command, args []string) error {
	holder, err := config.NewHolder(cfgFile, newLogger(config.LoggingConfig{Level: "info", Format: "json"}))
	if err != nil {
		return err
	}
	defer holder.Stop()

	cfg := holder.Get()
	logger := newLogger(cfg.Logging)

	// Hot reload adjusts the log level; connection settings need a restart.
	holder.OnChange(func(next *config.Config) {
		logger = newLogger(next.Logging)
		logger.Info().Str("level", next.Logging.Level).Msg("logging reconfigured")
	})
	if err := holder.WatchFile(); err != nil {
		return err
	}
	holder.WatchSignals()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sess, closer, err := openSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closer()

	collector := metrics.New(cfg.Metrics.Prefix)
	collector.Attach(sess.Bus())

	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, collector.Handler())
	srv := &http.Server{Addr: cfg.Metrics.Listen, Handler: mux}

	go func() {
		logger.Info().
			Str("listen", cfg.Metrics.Listen).
			Str("path", cfg.Metrics.Path).
			Msg("exporter listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("exporter server failed")
		}
	}()

	ticker := time.NewTicker(exporterInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := sess.Exists(ctx, "/"); err != nil {
				logger.Warn().Err(err).Msg("scheduler probe failed")
			}
		case <-ctx.Done():
			logger.Info().Msg("shutting down exporter")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown exporter server: %w", err)
			}
			return nil
		}
	}
}
