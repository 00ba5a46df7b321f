// ABOUTME: CLI command to show seasonal guidance for a month
// ABOUTME: Needs no knowledge store or network access
package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/agri-advisor/internal/core"
)

// NewSeasonalCmd creates the seasonal command
func NewSeasonalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seasonal [month]",
		Short: "Show seasonal guidance",
		Long: `Show the seasonal recommendation, suitable crops and activities.

The month is 1-12 and defaults to the current month.

Examples:
  advisor seasonal
  advisor seasonal 7
  advisor seasonal 11 --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSeasonal,
	}

	return cmd
}

func runSeasonal(cmd *cobra.Command, args []string) error {
	month := int(time.Now().Month())
	if len(args) == 1 {
		m, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("month must be a number, got %q", args[0])
		}
		month = m
	}

	rec, err := core.SeasonalGuide(month)
	if err != nil {
		return err
	}

	if wantJSON() {
		return printJSON(cmd.OutOrStdout(), rec)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s\n", rec.Season, rec.Recommendation)
	fmt.Fprintf(out, "Suitable crops: %s\n", strings.Join(rec.SuitableCrops, ", "))
	fmt.Fprintf(out, "Activities: %s\n", strings.Join(rec.Activities, ", "))
	return nil
}
