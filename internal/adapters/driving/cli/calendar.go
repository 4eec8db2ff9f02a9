package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/golos-labs/golos-cli/internal/core/domain"
)

var (
	calendarListOn   string
	calendarListFrom string
	calendarListTo   string
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Manage calendar events",
}

var calendarAddCmd = &cobra.Command{
	Use:   "add [date] [description]",
	Short: "Add an event on a resolved date",
	Long: `Adds a calendar event. The date accepts the same expressions as
"golos date", but must resolve to a single day.

Examples:
  golos calendar add завтра "встреча с командой"
  golos calendar add 2026-03-08 "день рождения"`,
	Args: cobra.ExactArgs(2),
	RunE: runCalendarAdd,
}

var calendarListCmd = &cobra.Command{
	Use:   "list",
	Short: "List calendar events",
	Long: `Lists calendar events, optionally filtered by a date expression or
an explicit range. Without flags every event is listed.

Examples:
  golos calendar list
  golos calendar list --on "следующая неделя"
  golos calendar list --from завтра --to "через 2 недели"`,
	Args: cobra.NoArgs,
	RunE: runCalendarList,
}

func init() {
	calendarListCmd.Flags().StringVar(&calendarListOn, "on", "", "date expression (day or period)")
	calendarListCmd.Flags().StringVar(&calendarListFrom, "from", "", "range start expression")
	calendarListCmd.Flags().StringVar(&calendarListTo, "to", "", "range end expression")
	calendarCmd.AddCommand(calendarAddCmd)
	calendarCmd.AddCommand(calendarListCmd)
	rootCmd.AddCommand(calendarCmd)
}

func runCalendarAdd(cmd *cobra.Command, args []string) error {
	if calendarService == nil {
		return errors.New("calendar service not configured")
	}

	event, err := calendarService.AddEvent(context.Background(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("add event: %w", err)
	}

	cmd.Printf("Event added on %s: %s\n", event.Date.Format(domain.DateLayout), event.Description)
	return nil
}

func runCalendarList(cmd *cobra.Command, _ []string) error {
	if calendarService == nil {
		return errors.New("calendar service not configured")
	}

	events, err := calendarService.QueryEvents(context.Background(), calendarListOn, calendarListFrom, calendarListTo)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}

	if len(events) == 0 {
		cmd.Println("No events found.")
		return nil
	}

	for _, e := range events {
		cmd.Printf("  %s  %s\n", e.Date.Format(domain.DateLayout), e.Description)
	}
	return nil
}
