// Package cli implements the golos command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/golos-labs/golos-cli/internal/core/ports/driven"
	"github.com/golos-labs/golos-cli/internal/core/ports/driving"
	"github.com/golos-labs/golos-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected by the composition root before Execute.
var (
	dateResolver     driving.DateResolver
	airportDirectory driving.AirportDirectory
	flightFinder     driving.FlightFinder
	calendarService  driving.CalendarService
	notesService     driving.NotesService
	musicCatalog     driven.MusicCatalog
	assistantService driving.Assistant
	configStore      driven.ConfigStore
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "golos",
	Short: "Voice-style assistant for dates, flights, calendar, music and notes",
	Long: `golos resolves natural-language date expressions (Russian and English),
matches free-text place names against the airport catalog, and routes
free-form requests to tools: flight schedules, calendar, music search
and notes.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
		logger.SetOutput(cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Services bundles everything the commands need.
type Services struct {
	DateResolver     driving.DateResolver
	AirportDirectory driving.AirportDirectory
	FlightFinder     driving.FlightFinder
	Calendar         driving.CalendarService
	Notes            driving.NotesService
	Music            driven.MusicCatalog
	Assistant        driving.Assistant
	Config           driven.ConfigStore
}

// SetServices injects the service implementations. Must be called before
// Execute; commands whose service is missing fail with a clear error.
func SetServices(s Services) {
	dateResolver = s.DateResolver
	airportDirectory = s.AirportDirectory
	flightFinder = s.FlightFinder
	calendarService = s.Calendar
	notesService = s.Notes
	musicCatalog = s.Music
	assistantService = s.Assistant
	configStore = s.Config
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
