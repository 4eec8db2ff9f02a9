package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var noteContent string

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Create and search notes",
}

var notesAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesAdd,
}

var notesSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search notes by title or content",
	Long: `Searches notes with a case-insensitive substring match over title
and content. An empty query lists every note.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNotesSearch,
}

func init() {
	notesAddCmd.Flags().StringVarP(&noteContent, "content", "c", "", "note body")
	notesCmd.AddCommand(notesAddCmd)
	notesCmd.AddCommand(notesSearchCmd)
	rootCmd.AddCommand(notesCmd)
}

func runNotesAdd(cmd *cobra.Command, args []string) error {
	if notesService == nil {
		return errors.New("notes service not configured")
	}

	note, err := notesService.CreateNote(context.Background(), args[0], noteContent)
	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}

	cmd.Printf("Note created: %s\n", note.Title)
	return nil
}

func runNotesSearch(cmd *cobra.Command, args []string) error {
	if notesService == nil {
		return errors.New("notes service not configured")
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	notes, err := notesService.SearchNotes(context.Background(), query)
	if err != nil {
		return fmt.Errorf("search notes: %w", err)
	}

	if len(notes) == 0 {
		cmd.Println("No notes found.")
		return nil
	}

	for _, n := range notes {
		cmd.Printf("  %s\n", n.Title)
		if n.Content != "" {
			cmd.Printf("      %s\n", n.Content)
		}
	}
	return nil
}
