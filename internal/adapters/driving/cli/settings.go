package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/mission-control/internal/core/domain"
)

// secretKeys are masked when displayed.
var secretKeys = map[string]bool{
	"presence.redis_password": true,
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change Mission Control settings stored in config.toml.

Without a subcommand every setting is listed with its effective value.`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting and save config.toml.

Pass "-" as the value to type it without echo, for secrets such as
presence.redis_password.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("Mission Control Settings")
	cmd.Println("========================")
	for _, key := range settingsService.Keys() {
		value, err := settingsService.GetValue(key)
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", key, err)
		}
		cmd.Printf("  %-28s %s\n", key, displayValue(key, value))
	}
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	value, err := settingsService.GetValue(args[0])
	if err != nil {
		return err
	}
	cmd.Println(displayValue(args[0], value))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, raw := args[0], args[1]
	if raw == "-" {
		cmd.Printf("Enter value for %s: ", key)
		raw = readPassword(cmd.InOrStdin())
		cmd.Println()
	}

	if err := settingsService.SetValue(key, raw); err != nil {
		return err
	}

	value, err := settingsService.GetValue(key)
	if err != nil {
		return err
	}
	cmd.Printf("Set %s = %s\n", key, displayValue(key, value))
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func displayValue(key string, value any) string {
	s := fmt.Sprint(value)
	if secretKeys[key] {
		return maskSecret(s)
	}
	if s == "" {
		return "(not set)"
	}
	return s
}

// readPassword reads a line without echo when in is the terminal.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readPassword(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(password)
		}
	}
	input, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(input)
}

func maskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:2] + "..." + secret[len(secret)-2:]
}

// defaultSearchLimit reads search.default_limit, falling back to the built-in default.
func defaultSearchLimit() int {
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil && settings.Search.DefaultLimit > 0 {
			return settings.Search.DefaultLimit
		}
	}
	return domain.DefaultSearchLimit
}

func settingsDefaults() domain.AppSettings {
	if settingsService != nil {
		return settingsService.GetDefaults()
	}
	return domain.DefaultAppSettings()
}
