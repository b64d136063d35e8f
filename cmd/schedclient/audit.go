package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/artpar/schedclient/adapters/sqlite"
)

var auditLimit int

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "List recent dispatch audit entries",
	Long: `Read the persistent dispatch audit trail, newest first. Requires
audit.enabled in the configuration so prior commands recorded their
dispatches.

Example:
  schedclient audit --limit 50`,
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().IntVar(&auditLimit, "limit", 25, "maximum entries to show")
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}

	store, err := sqlite.Open(cfg.Audit.Path)
	if err != nil {
		return fmt.Errorf("open audit store: %w", err)
	}
	defer store.Close()

	entries, err := store.List(context.Background(), auditLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no audit entries")
		return nil
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  %-8s %-26s %s",
			e.At.Format(time.RFC3339), e.Outcome, e.Operation, e.Variant)
		if e.Detail != "" {
			line += "  " + e.Detail
		}
		fmt.Println(line)
	}
	return nil
}
