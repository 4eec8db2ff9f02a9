package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golos-labs/golos-cli/internal/adapters/driven/catalog/rasp"
	configfile "github.com/golos-labs/golos-cli/internal/adapters/driven/config/file"
	"github.com/golos-labs/golos-cli/internal/adapters/driven/llm/openai"
	"github.com/golos-labs/golos-cli/internal/adapters/driven/music/yandex"
	"github.com/golos-labs/golos-cli/internal/adapters/driven/storage/file"
	"github.com/golos-labs/golos-cli/internal/adapters/driven/storage/sqlite"
	"github.com/golos-labs/golos-cli/internal/adapters/driving/cli"
	"github.com/golos-labs/golos-cli/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}
	dataDir := filepath.Join(homeDir, ".golos", "data")

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	raspClient := rasp.NewClient(cfg.GetString("rasp.api_key"))
	snapshots := file.NewSnapshotStore(filepath.Join(dataDir, "airports.json"), 0, nil)
	directory := services.NewDirectory(raspClient, snapshots)

	resolver := services.NewResolver(time.Now)
	calendar := services.NewCalendar(resolver, store.EventStore(), time.Now)
	notes := services.NewNotes(store.NoteStore(), time.Now)
	flights := services.NewFlights(directory, resolver, raspClient)
	music := yandex.NewClient(cfg.GetString("music.api_key"))

	dispatcher := services.NewDispatcher(flights, calendar, notes, music)

	llm := openai.NewLLMService(openai.LLMConfig{
		APIKey:  cfg.GetString("llm.api_key"),
		BaseURL: cfg.GetString("llm.base_url"),
		Model:   cfg.GetString("llm.model"),
	})
	defer llm.Close()

	cli.SetServices(cli.Services{
		DateResolver:     resolver,
		AirportDirectory: directory,
		FlightFinder:     flights,
		Calendar:         calendar,
		Notes:            notes,
		Music:            music,
		Assistant:        services.NewAskService(llm, dispatcher),
		Config:           cfg,
	})

	return cli.Execute()
}
