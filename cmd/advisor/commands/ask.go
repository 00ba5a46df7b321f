// ABOUTME: CLI command to ask the advisor a free-text question
// ABOUTME: Prints the composed reply, with intent metadata in JSON mode
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/agri-advisor/internal/models"
)

var (
	askLocation string
	askCrop     string
	askDisease  string
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Ask a farming question",
		Long: `Ask a farming question in plain language.

The message is classified, matched against the knowledge base and
answered. Greetings and thanks get a conversational reply. With a
location the reply ends with a weather context block.

Examples:
  advisor ask "how often should I water tomatoes"
  advisor ask "my leaves have brown spots" --location Pune
  advisor ask "when to harvest potatoes" --format json
  advisor ask "what should I spray" --crop tomato --disease Tomato_Late_blight`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().StringVarP(&askLocation, "location", "l", "", "City or region for weather context")
	cmd.Flags().StringVar(&askCrop, "crop", "", "Crop being grown; narrows retrieval and crop tips")
	cmd.Flags().StringVar(&askDisease, "disease", "", "Disease label already diagnosed; narrows retrieval")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	message := strings.Join(args, " ")
	resp, err := a.Aggregator.Respond(ctx, models.AdvisoryContext{
		RawMessage:      message,
		Location:        askLocation,
		CropType:        askCrop,
		DetectedDisease: askDisease,
	})
	if err != nil {
		return err
	}

	if wantJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{
			"message":  message,
			"response": resp.Text,
			"metadata": resp.Metadata,
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), resp.Text)
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "\nintent=%s results=%d fallback=%t weather=%t\n",
			resp.Metadata.Intent, resp.Metadata.RetrievalCount,
			resp.Metadata.UsedFallback, resp.Metadata.WeatherAttached)
	}
	return nil
}
