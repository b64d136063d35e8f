package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artpar/schedclient/client"
)

var (
	searchRoot    string
	searchPattern string
	searchFlat    bool
	searchFull    bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find objects by name",
	Long: `Search the object tree for names containing the pattern.

Examples:
  schedclient search --pattern backup
  schedclient search --root /Production --pattern nightly --full`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchRoot, "root", "/", "subtree to search")
	searchCmd.Flags().StringVar(&searchPattern, "pattern", "", "substring to match")
	searchCmd.Flags().BoolVar(&searchFlat, "flat", false, "restrict to direct children of the root")
	searchCmd.Flags().BoolVar(&searchFull, "full", false, "fetch full objects instead of lite")
}

func runSearch(cmd *cobra.Command, args []string) error {
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

	hits, err := sess.Search(ctx, client.SearchOptions{
		Root:    searchRoot,
		Pattern: searchPattern,
		Flat:    searchFlat,
		Full:    searchFull,
	})
	if err != nil {
		return err
	}

	for _, hit := range hits {
		key, err := hit.Key(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%-14s %s\n", hit.Variant(), key)
	}
	fmt.Printf("\n%d object(s)\n", len(hits))
	return nil
}
