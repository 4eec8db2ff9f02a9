package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/golos-labs/golos-cli/internal/core/domain"
)

var (
	dateOn   string
	dateJSON bool
)

var dateCmd = &cobra.Command{
	Use:   "date [expression]",
	Short: "Resolve a natural-language date expression",
	Long: `Resolves a Russian or English date expression to a calendar day or
a closed period.

Examples:
  golos date "завтра"
  golos date "next friday"
  golos date "следующая неделя"
  golos date --on 2026-02-02 "через 2 месяца"`,
	Args: cobra.ExactArgs(1),
	RunE: runDate,
}

func init() {
	dateCmd.Flags().StringVar(&dateOn, "on", "", "reference date (YYYY-MM-DD, default today)")
	dateCmd.Flags().BoolVar(&dateJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(dateCmd)
}

func runDate(cmd *cobra.Command, args []string) error {
	if dateResolver == nil {
		return errors.New("date resolver not configured")
	}

	var (
		outcome domain.ParseOutcome
		err     error
	)
	if dateOn != "" {
		ref, parseErr := time.Parse(domain.DateLayout, dateOn)
		if parseErr != nil {
			return fmt.Errorf("invalid --on date %q: expected YYYY-MM-DD", dateOn)
		}
		outcome, err = dateResolver.ResolveAt(args[0], ref)
	} else {
		outcome, err = dateResolver.Resolve(args[0])
	}
	if err != nil {
		return fmt.Errorf("resolve %q: %w", args[0], err)
	}

	if dateJSON {
		return outputDateJSON(cmd, outcome)
	}

	if period, ok := outcome.Period(); ok {
		cmd.Printf("Period: %s — %s (%d days)\n",
			period.From.Format(domain.DateLayout),
			period.To.Format(domain.DateLayout),
			period.Days())
		return nil
	}

	date, _ := outcome.Date()
	cmd.Printf("Date: %s (%s)\n", date.ISO(), date.Date.Weekday())
	return nil
}

func outputDateJSON(cmd *cobra.Command, outcome domain.ParseOutcome) error {
	var payload any
	if period, ok := outcome.Period(); ok {
		payload = map[string]any{
			"type": "period",
			"from": period.From.Format(domain.DateLayout),
			"to":   period.To.Format(domain.DateLayout),
			"days": period.Days(),
		}
	} else {
		date, _ := outcome.Date()
		payload = map[string]any{
			"type": "date",
			"date": date.ISO(),
		}
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
