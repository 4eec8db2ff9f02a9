package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var musicLimit int

var musicCmd = &cobra.Command{
	Use:   "music [query]",
	Short: "Search tracks in the music catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runMusic,
}

func init() {
	musicCmd.Flags().IntVarP(&musicLimit, "limit", "n", 10, "maximum number of results")
	rootCmd.AddCommand(musicCmd)
}

func runMusic(cmd *cobra.Command, args []string) error {
	if musicCatalog == nil {
		return errors.New("music catalog not configured")
	}

	tracks, err := musicCatalog.SearchTracks(context.Background(), args[0], musicLimit)
	if err != nil {
		return fmt.Errorf("music search failed: %w", err)
	}

	if len(tracks) == 0 {
		cmd.Println("No tracks found.")
		return nil
	}

	for i, track := range tracks {
		artists := "unknown artist"
		if len(track.Artists) > 0 {
			artists = track.Artists[0]
			for _, a := range track.Artists[1:] {
				artists += ", " + a
			}
		}
		cmd.Printf("  [%d] %s — %s", i+1, artists, track.Title)
		if track.Album != "" {
			cmd.Printf(" (%s)", track.Album)
		}
		cmd.Println()
	}
	return nil
}
