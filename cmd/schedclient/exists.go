package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var existsCmd = &cobra.Command{
	Use:   "exists <key>",
	Short: "Check whether an object exists",
	Args:  cobra.ExactArgs(1),
	RunE:  runExists,
}

func init() {
	rootCmd.AddCommand(existsCmd)
}

func runExists(cmd *cobra.Command, args []string) error {
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

	exists, err := sess.Exists(ctx, args[0])
	if err != nil {
		return err
	}
	if exists {
		fmt.Printf("%s exists\n", args[0])
		return nil
	}
	return fmt.Errorf("%s does not exist", args[0])
}
