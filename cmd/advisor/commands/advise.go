// ABOUTME: CLI command for a comprehensive advisory
// ABOUTME: Combines weather, disease treatment, best practices and seasonal guidance
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/agri-advisor/internal/models"
)

var (
	adviseLocation string
	adviseCrop     string
	adviseDisease  string
	adviseQuery    string
	adviseMonth    int
)

// NewAdviseCmd creates the advise command
func NewAdviseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Get a comprehensive advisory",
		Long: `Get a comprehensive advisory combining every available source.

Weather, best practices and seasonal guidance are gathered concurrently.
A source that fails is left out; seasonal guidance is always present.

Examples:
  advisor advise --location Nairobi --crop maize
  advisor advise --disease Tomato_Late_blight --month 7
  advisor advise --query "organic pest control" --format json`,
		Args: cobra.NoArgs,
		RunE: runAdvise,
	}

	cmd.Flags().StringVarP(&adviseLocation, "location", "l", "", "City or region for the weather advisory")
	cmd.Flags().StringVar(&adviseCrop, "crop", "", "Crop to look up best practices for")
	cmd.Flags().StringVar(&adviseDisease, "disease", "", "Disease label to look up treatment for")
	cmd.Flags().StringVar(&adviseQuery, "query", "", "Free-text knowledge query")
	cmd.Flags().IntVar(&adviseMonth, "month", 0, "Month 1-12 for seasonal guidance (default: current month)")

	return cmd
}

func runAdvise(cmd *cobra.Command, args []string) error {
	if adviseMonth != 0 && (adviseMonth < 1 || adviseMonth > 12) {
		return fmt.Errorf("--month must be 1-12, got %d", adviseMonth)
	}

	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	adv, err := a.Aggregator.Comprehensive(ctx, models.AdvisoryRequest{
		Location:        adviseLocation,
		CropType:        adviseCrop,
		DetectedDisease: adviseDisease,
		Query:           adviseQuery,
		Month:           adviseMonth,
	})
	if err != nil {
		return err
	}

	if wantJSON() {
		return printJSON(cmd.OutOrStdout(), adv)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, adv.ComprehensiveAdvice)

	if adv.WeatherAdvice != nil {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "\nLOCATION\tTEMP\tHUMIDITY\tCONDITIONS\tRAIN\n")
		fmt.Fprintf(w, "%s\t%.1f°C\t%d%%\t%s\t%s\n",
			adv.WeatherAdvice.Location,
			adv.WeatherAdvice.Temperature,
			adv.WeatherAdvice.Humidity,
			adv.WeatherAdvice.Description,
			adv.WeatherAdvice.RainPrediction)
		_ = w.Flush()
	}

	if !quiet {
		fmt.Fprintf(out, "\nSeason: %s\n", adv.Seasonal.Season)
	}
	return nil
}
