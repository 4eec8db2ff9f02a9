package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var airportsLimit int

var airportsCmd = &cobra.Command{
	Use:   "airports",
	Short: "Look up airports in the local catalog",
}

var airportsFindCmd = &cobra.Command{
	Use:   "find [query]",
	Short: "Find airports by city, name, alias or code",
	Long: `Matches a free-text place name against the airport catalog.
Handles Cyrillic and Latin spellings and tolerates typos.

Examples:
  golos airports find москва
  golos airports find "санкт-петербург"
  golos airports find LED`,
	Args: cobra.ExactArgs(1),
	RunE: runAirportsFind,
}

var airportsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the airport catalog from the remote API",
	Args:  cobra.NoArgs,
	RunE:  runAirportsSync,
}

func init() {
	airportsFindCmd.Flags().IntVarP(&airportsLimit, "limit", "n", 5, "maximum number of results")
	airportsCmd.AddCommand(airportsFindCmd)
	airportsCmd.AddCommand(airportsSyncCmd)
	rootCmd.AddCommand(airportsCmd)
}

func runAirportsFind(cmd *cobra.Command, args []string) error {
	if airportDirectory == nil {
		return errors.New("airport directory not configured")
	}

	ctx := context.Background()
	if err := airportDirectory.EnsureLoaded(ctx); err != nil {
		return fmt.Errorf("load airport catalog: %w", err)
	}

	candidates := airportDirectory.FindCandidates(args[0], airportsLimit)
	if len(candidates) == 0 {
		cmd.Printf("No airports found for %q.\n", args[0])
		return nil
	}

	for i, a := range candidates {
		cmd.Printf("  [%d] %s — %s (%s)\n", i+1, a.Code, a.Title, a.Settlement)
		if a.Region != "" || a.Country != "" {
			cmd.Printf("      %s, %s\n", a.Region, a.Country)
		}
	}
	return nil
}

func runAirportsSync(cmd *cobra.Command, _ []string) error {
	if airportDirectory == nil {
		return errors.New("airport directory not configured")
	}

	if err := airportDirectory.Reload(context.Background()); err != nil {
		return fmt.Errorf("refresh airport catalog: %w", err)
	}

	cmd.Printf("Catalog refreshed: %d airports.\n", airportDirectory.Len())
	return nil
}
