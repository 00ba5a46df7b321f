// ABOUTME: Root command for the advisor CLI with global flags
// ABOUTME: Builds the process logger and validates output format before any subcommand runs
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harper/agri-advisor/internal/logging"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
	backend      string

	logger = zap.NewNop()
)

const banner = `
 █████╗  ██████╗ ██████╗ ██╗
██╔══██╗██╔════╝ ██╔══██╗██║
███████║██║  ███╗██████╔╝██║
██╔══██║██║   ██║██╔══██╗██║
██║  ██║╚██████╔╝██║  ██║██║
╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═╝╚═╝`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advisor",
		Short: "Agricultural advisory assistant",
		Long: banner + `

Agricultural advisory assistant.

Answers farming questions from a local knowledge base, adds weather
context for a location, looks up disease treatments and gives seasonal
guidance. Runs as a CLI or as an MCP server for LLM agents.

Configuration comes from the environment (and a .env file if present):
  OPENAI_API_KEY / GEMINI_API_KEY   embedding providers (offline hash otherwise)
  KNOWLEDGE_BACKEND                 memory, sqlite, charm or qdrant
  OPENWEATHER_API_KEY               live weather (mock report otherwise)`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch outputFormat {
			case "auto", "text", "json":
			default:
				return fmt.Errorf("--format must be auto, text or json, got %q", outputFormat)
			}

			l, err := logging.New(verbose, quiet)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress logs and informational output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, text or json")
	cmd.PersistentFlags().StringVar(&backend, "backend", "", "Knowledge backend override (memory, sqlite, charm, qdrant)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewAdviseCmd())
	cmd.AddCommand(NewSeasonalCmd())
	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewSyncCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	defer func() { _ = logger.Sync() }()
	return NewRootCmd().Execute()
}
