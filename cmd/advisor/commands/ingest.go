// ABOUTME: CLI command to add a passage to the knowledge base
// ABOUTME: Accepts text arguments or a file; re-using an id replaces the passage
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	ingestSource string
	ingestID     string
	ingestFile   string
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [text]",
		Short: "Add knowledge to the store",
		Long: `Add an agricultural knowledge passage to the store.

The passage is embedded and stored under the given id, or a generated
one. Use a durable backend (--backend sqlite) to keep it across runs.

Examples:
  advisor ingest "Sorghum tolerates drought better than maize"
  advisor ingest --file notes.txt --source extension --id sorghum-1`,
		RunE: runIngest,
	}

	cmd.Flags().StringVar(&ingestSource, "source", "", "Source tag (default: manual)")
	cmd.Flags().StringVar(&ingestID, "id", "", "Document id (generated when empty)")
	cmd.Flags().StringVarP(&ingestFile, "file", "f", "", "Read the passage from a file")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if ingestFile != "" {
		data, err := os.ReadFile(ingestFile)
		if err != nil {
			return fmt.Errorf("reading %s: %w", ingestFile, err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("provide passage text or --file")
	}

	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	id, err := a.Store.Ingest(ctx, text, ingestSource, ingestID)
	if err != nil {
		return err
	}

	if wantJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]string{
			"message": "Document ingested successfully",
			"id":      id,
		})
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Ingested %s\n", id)
	}
	return nil
}
