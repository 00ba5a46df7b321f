// ABOUTME: CLI command to search the knowledge base
// ABOUTME: Ranks passages by cosine similarity, seeding an empty store first
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/agri-advisor/internal/models"
)

var (
	searchLimit int
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search agricultural knowledge",
		Long: `Search the knowledge base by meaning.

Returns up to --limit passages (1-5), most similar first. An empty
store is seeded with the default corpus before the first search.

Examples:
  advisor search "drip irrigation"
  advisor search "late blight" --limit 5
  advisor search "soil ph" --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVarP(&searchLimit, "limit", "n", models.DefaultTopK, "Number of results (1-5)")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(searchLimit, "--limit"); err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	matches, err := a.Store.Search(ctx, args[0], searchLimit)
	if err != nil {
		return err
	}

	if wantJSON() {
		return printJSON(cmd.OutOrStdout(), matches)
	}

	if len(matches) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No results found\n")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tSOURCE\tID\tTEXT\n")
	fmt.Fprintf(w, "-----\t------\t--\t----\n")
	for _, m := range matches {
		fmt.Fprintf(w, "%.3f\t%s\t%s\t%s\n",
			m.Score,
			m.Document.SourceTag,
			truncate(m.Document.ID, 20),
			truncate(m.Document.Text, 70))
	}
	return w.Flush()
}
