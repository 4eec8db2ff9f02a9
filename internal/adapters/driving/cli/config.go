package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// secretKeys are the settings set-key accepts. All are entered with a
// masked prompt since every one is a credential.
var secretKeys = []string{
	"rasp.api_key",
	"music.api_key",
	"llm.api_key",
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key [key]",
	Short: "Set an API key with a masked prompt",
	Long: `Prompts for an API key without echoing it and stores it in the
config file.

Known keys:
  rasp.api_key   - Yandex Rasp (timetables) API key
  music.api_key  - Yandex Music OAuth token
  llm.api_key    - LLM provider API key (optional for local endpoints)`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigSetKey,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Sets a non-secret configuration value, e.g.:

  golos config set llm.base_url http://localhost:11434/v1
  golos config set llm.model qwen2.5:7b`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Printf("Config file: %s\n", configStore.Path())
	cmd.Println()

	cmd.Println("[llm]")
	cmd.Printf("  base_url: %s\n", orUnset(configStore.GetString("llm.base_url")))
	cmd.Printf("  model: %s\n", orUnset(configStore.GetString("llm.model")))
	printSecret(cmd, "api_key", configStore.GetString("llm.api_key"))
	cmd.Println()

	cmd.Println("[rasp]")
	printSecret(cmd, "api_key", configStore.GetString("rasp.api_key"))
	cmd.Println()

	cmd.Println("[music]")
	printSecret(cmd, "api_key", configStore.GetString("music.api_key"))
	return nil
}

func runConfigSetKey(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key := args[0]
	if !isSecretKey(key) {
		return fmt.Errorf("unknown key %q: expected one of %s", key, strings.Join(secretKeys, ", "))
	}

	cmd.Printf("Enter value for %s: ", key)
	value := readPassword()
	cmd.Println()
	if value == "" {
		return errors.New("empty value, nothing stored")
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to store key: %w", err)
	}

	cmd.Printf("Stored %s.\n", key)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, value := args[0], args[1]
	if isSecretKey(key) {
		return fmt.Errorf("%q is a secret, use 'golos config set-key %s'", key, key)
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to store value: %w", err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func isSecretKey(key string) bool {
	for _, k := range secretKeys {
		if k == key {
			return true
		}
	}
	return false
}

func printSecret(cmd *cobra.Command, name, value string) {
	if value == "" {
		cmd.Printf("  %s: (not set)\n", name)
		return
	}
	cmd.Printf("  %s: %s\n", name, maskAPIKey(value))
}

func orUnset(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read without echo first.
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
