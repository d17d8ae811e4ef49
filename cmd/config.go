package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/aura/internal/config"
	"github.com/arcanaland/aura/internal/explain"
	"github.com/arcanaland/aura/internal/locale"
)

// configCmd represents the config command group
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the configuration",
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		label := colorize.New(colorize.FgCyan)
		row := func(name string, value any) {
			fmt.Fprintf(w, "%s %v\n", label.Sprintf("%-12s", name+":"), value)
		}

		row("config file", config.GetConfigFilePath())
		row("locale", cfg.ResolvedLocale())
		row("countdown", cfg.Countdown)
		row("fan cards", cfg.FanCards)
		row("model", cfg.Model)
		row("catalogs", cfg.CatalogDir)
		row("database", cfg.Database)
		row("session", config.GetSessionPath())
		row("log file", config.GetLogFilePath())

		key := config.Redacted(cfg.APIKey)
		if cfg.APIKey != "" && !explain.Configured(cfg.APIKey) {
			key += " (placeholder)"
		}
		row("api key", key)
		return nil
	},
}

// configSetLocaleCmd represents the config set-locale command
var configSetLocaleCmd = &cobra.Command{
	Use:   "set-locale [locale]",
	Short: "Set the default language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := locale.Normalize(args[0])
		if code == "" {
			return fmt.Errorf("invalid locale %q", args[0])
		}

		resolved := catalogLoader().Resolve(code)
		if resolved == locale.Default && locale.Base(code) != locale.Default {
			fmt.Fprintln(cmd.ErrOrStderr(), colorize.YellowString("No catalog for %s; English will be used.", code))
		}

		if err := config.SetLocale(code); err != nil {
			return fmt.Errorf("error setting locale: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Default locale set to: %s\n", code)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetLocaleCmd)
}
