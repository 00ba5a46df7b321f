// ABOUTME: CLI command to seed the default knowledge corpus
// ABOUTME: Seeds only an empty store unless --force re-upserts every seed passage
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	seedForce bool
)

// NewSeedCmd creates the seed command
func NewSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the default knowledge corpus",
		Long: `Seed the store with the curated default knowledge corpus.

Without --force nothing happens when the store already has documents.
With --force every seed passage is re-embedded and upserted under its
fixed id, leaving other documents untouched.

Examples:
  advisor seed --backend sqlite
  advisor seed --force`,
		Args: cobra.NoArgs,
		RunE: runSeed,
	}

	cmd.Flags().BoolVar(&seedForce, "force", false, "Re-upsert the corpus even if the store is not empty")

	return cmd
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	var seeded int
	if seedForce {
		seeded, err = a.Store.Seed(ctx)
	} else {
		seeded, err = a.Store.Bootstrap(ctx)
	}
	if err != nil {
		return err
	}

	total, err := a.Store.Count(ctx)
	if err != nil {
		return err
	}

	if wantJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]int{
			"seeded": seeded,
			"total":  total,
		})
	}
	if !quiet {
		if seeded == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Store already has %d document(s); nothing seeded\n", total)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d document(s); total %d\n", seeded, total)
		}
	}
	return nil
}
