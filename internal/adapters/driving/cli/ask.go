package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [request]",
	Short: "Route a free-form request to the right tool",
	Long: `Sends a natural-language request to the configured LLM, which picks
a tool and fills its arguments, then runs that tool.

Examples:
  golos ask "найди билеты из москвы в сочи на завтра"
  golos ask "добавь встречу в следующий вторник"
  golos ask "включи что-нибудь из кино"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if assistantService == nil {
		return errors.New("assistant not configured: set an LLM endpoint with 'golos config set-key'")
	}

	result, err := assistantService.Ask(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(result.Message)
	if !result.Success && result.ErrTag != "" {
		cmd.Printf("(error: %s)\n", result.ErrTag)
	}
	return nil
}
