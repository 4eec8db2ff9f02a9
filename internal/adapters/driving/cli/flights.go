package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/golos-labs/golos-cli/internal/core/ports/driving"
)

var flightsCmd = &cobra.Command{
	Use:   "flights [from] [to] [date]",
	Short: "Search the flight schedule between two places",
	Long: `Searches flights between two free-text place names on a given day.
Place names match the airport catalog; the date accepts the same
expressions as "golos date".

Examples:
  golos flights москва сочи завтра
  golos flights "санкт-петербург" москва "next friday"`,
	Args: cobra.ExactArgs(3),
	RunE: runFlights,
}

func init() {
	rootCmd.AddCommand(flightsCmd)
}

func runFlights(cmd *cobra.Command, args []string) error {
	if flightFinder == nil {
		return errors.New("flight finder not configured")
	}

	report, err := flightFinder.SearchFlights(context.Background(), args[0], args[1], args[2])
	if err != nil {
		var notFound *driving.LocationNotFoundError
		if errors.As(err, &notFound) {
			cmd.Printf("No airport found for %q.\n", notFound.Query)
			for _, s := range notFound.Suggestions {
				cmd.Printf("  did you mean: %s (%s)?\n", s.Settlement, s.Code)
			}
			return nil
		}
		return fmt.Errorf("flight search failed: %w", err)
	}

	cmd.Printf("Flights %s → %s on %s:\n", report.From.Settlement, report.To.Settlement, report.Date.ISO())
	if len(report.Segments) == 0 {
		cmd.Println("  No flights found.")
		return nil
	}
	for _, seg := range report.Segments {
		cmd.Printf("  %s %s: %s\n", seg.Carrier, seg.Number, seg.Title)
		cmd.Printf("      departs %s, arrives %s (%s)\n", seg.Departure, seg.Arrival, formatDuration(seg.DurationSec))
	}
	return nil
}

func formatDuration(seconds int) string {
	hours := seconds / 3600
	minutes := seconds % 3600 / 60
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
