package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:   "move <source> <destination>",
	Short: "Move an object under a destination container",
	Long: `Move an object. The destination must be a folder, plan, or the
scheduler root; with --create-dest a missing destination path is created
first.

Examples:
  schedclient move /Dev/Job1 /Production
  schedclient move /Dev/Job1 /Archive/2024 --create-dest`,
	Args: cobra.ExactArgs(2),
	RunE: runMove,
}

var (
	moveCreateDest bool
	copyCreateDest bool
)

var copyCmd = &cobra.Command{
	Use:   "copy <source> <destination>",
	Short: "Copy an object's subtree under a destination container",
	Long: `Copy an object and everything under it by exporting the subtree
and importing it at the destination.

Examples:
  schedclient copy /Production/Nightly /Archive/2024
  schedclient copy /Production/Nightly /Archive/2024 --create-dest`,
	Args: cobra.ExactArgs(2),
	RunE: runCopy,
}

func init() {
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(copyCmd)

	moveCmd.Flags().BoolVar(&moveCreateDest, "create-dest", false, "create the destination path if missing")
	copyCmd.Flags().BoolVar(&copyCreateDest, "create-dest", false, "create the destination path if missing")
}

func runMove(cmd *cobra.Command, args []string) error {
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

	obj, err := sess.Object(ctx, args[0], false)
	if err != nil {
		return err
	}
	if err := obj.MoveTo(ctx, args[1], moveCreateDest); err != nil {
		return err
	}
	key, err := obj.Key(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("moved to %s\n", key)
	return nil
}

func runCopy(cmd *cobra.Command, args []string) error {
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

	obj, err := sess.Object(ctx, args[0], false)
	if err != nil {
		return err
	}
	copied, err := obj.CopyTo(ctx, args[1], copyCreateDest)
	if err != nil {
		return err
	}
	key, err := copied.Key(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("copied to %s\n", key)
	return nil
}
