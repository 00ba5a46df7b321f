// ABOUTME: CLI command to list stored knowledge documents
// ABOUTME: Shows id, source and age in insertion order
package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/agri-advisor/internal/models"
)

// NewListCmd creates list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List knowledge documents",
		Long: `List the documents in the knowledge store.

Backends that cannot enumerate documents (qdrant) report an error.

Examples:
  advisor list --backend sqlite
  advisor list --format json`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	docs, err := a.Store.List(ctx)
	if errors.Is(err, models.ErrNotSupported) {
		return fmt.Errorf("backend %s cannot list documents", a.Config.KnowledgeBackend)
	}
	if err != nil {
		return err
	}

	if wantJSON() {
		for i := range docs {
			docs[i].Embedding = nil
		}
		return printJSON(cmd.OutOrStdout(), docs)
	}

	if len(docs) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No documents found\n")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tSOURCE\tCREATED\tTEXT\n")
	fmt.Fprintf(w, "--\t------\t-------\t----\n")
	for _, doc := range docs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			truncate(doc.ID, 25),
			doc.SourceTag,
			formatTime(doc.CreatedAt),
			truncate(doc.Text, 60))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d document(s)\n", len(docs))
	}
	return nil
}
