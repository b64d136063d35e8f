package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var renameSchedulesCmd = &cobra.Command{
	Use:   "rename-schedules <plan-or-job>",
	Short: "Rename associated schedules to their canonical names",
	Long: `Rename every schedule associated with a plan or job to the name
derived from its firing specification, e.g. "Every2Weeks.TueThu_1430".
Schedules already carrying their canonical name are left untouched.

Example:
  schedclient rename-schedules /Production/Nightly`,
	Args: cobra.ExactArgs(1),
	RunE: runRenameSchedules,
}

func init() {
	rootCmd.AddCommand(renameSchedulesCmd)
}

func runRenameSchedules(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	ctx := context.Background()

	sess, closer, err := openSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closer()

	renamed, err := sess.RenameSchedules(ctx, args[0])
	if err != nil {
		return err
	}
	for old, name := range renamed {
		fmt.Printf("%s -> %s\n", old, name)
	}
	fmt.Printf("\n%d schedule(s) renamed\n", len(renamed))
	return nil
}
