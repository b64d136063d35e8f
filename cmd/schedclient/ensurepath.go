package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var ensurePathCmd = &cobra.Command{
	Use:   "ensure-path <path>",
	Short: "Create every missing folder along a path",
	Long: `Walk a hierarchical path root to leaf and create the folders that
do not exist yet. Components that already exist are left untouched.

Example:
  schedclient ensure-path /Production/Reports/Daily`,
	Args: cobra.ExactArgs(1),
	RunE: runEnsurePath,
}

func init() {
	rootCmd.AddCommand(ensurePathCmd)
}

func runEnsurePath(cmd *cobra.Command, args []string) error {
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

	leaf, err := sess.EnsurePath(ctx, args[0])
	if err != nil {
		return err
	}
	if leaf == nil {
		fmt.Printf("nothing to do for %s\n", args[0])
		return nil
	}
	fmt.Printf("%s ready\n", args[0])
	return nil
}
