package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/aura/internal/fan"
	"github.com/arcanaland/aura/internal/locale"
	"github.com/arcanaland/aura/internal/render"
)

var catalogLocale string

// catalogCmd represents the catalog command group
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse and check the card catalogs",
	Long: `Commands for browsing the cards a draw is made from.

Bundled catalogs exist for en, es and zh-TW. A file named <locale>.toml in the
catalog directory (see 'aura config show') takes precedence over the bundled one.`,
}

// catalogListCmd represents the catalog ls command
var catalogListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the cards in a catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalogLoader().Load(localeFor(catalogLocale))
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s (%d cards)\n", colorize.New(colorize.Bold).Sprint(cat.Locale), cat.Len())
		for _, c := range cat.Cards {
			marker := " "
			if c.HasImage() {
				marker = "▣"
			}
			fmt.Fprintf(w, "%s %s %s\n", marker, colorize.CyanString("%3d", c.Index), c.Heading())
		}
		return nil
	},
}

// catalogLocalesCmd represents the catalog locales command
var catalogLocalesCmd = &cobra.Command{
	Use:   "locales",
	Short: "List the available catalog locales",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := catalogLoader()
		current := loader.Resolve(cfg.ResolvedLocale())

		keys := append([]string{}, locale.Supported...)
		overrides := map[string]bool{}
		if entries, err := os.ReadDir(cfg.CatalogDir); err == nil {
			for _, entry := range entries {
				name := entry.Name()
				if entry.IsDir() || filepath.Ext(name) != ".toml" {
					continue
				}
				key := strings.TrimSuffix(name, ".toml")
				overrides[locale.Alias(key)] = true
				if !contains(keys, locale.Alias(key)) {
					keys = append(keys, key)
				}
			}
		}

		w := cmd.OutOrStdout()
		for _, key := range keys {
			cat, err := loader.Load(key)
			if err != nil {
				fmt.Fprintf(w, "  %s (error: %v)\n", key, err)
				continue
			}
			source := "bundled"
			if overrides[key] {
				source = "override"
			}
			if key == current {
				fmt.Fprintf(w, "* %s (%d cards, %s) [DEFAULT]\n", key, cat.Len(), source)
			} else {
				fmt.Fprintf(w, "  %s (%d cards, %s)\n", key, cat.Len(), source)
			}
		}
		return nil
	},
}

// catalogShowCmd represents the catalog show command
var catalogShowCmd = &cobra.Command{
	Use:   "show [index]",
	Short: "Display a card with its quote and ANSI art",
	Long: `Show displays a card from the catalog by its index. Cards with an image are
rendered as ANSI art next to the text.

Examples:
  aura catalog show 0
  aura catalog show --locale zh-TW 17`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid card index %q", args[0])
		}

		cat, err := catalogLoader().Load(localeFor(catalogLocale))
		if err != nil {
			return err
		}
		c, err := cat.Card(index)
		if err != nil {
			return err
		}

		art := ""
		if c.HasImage() {
			p := fan.NewPreloader(fan.DefaultSource{}, render.ArtWidth, render.ArtHeight)
			if art, err = p.Load(cmd.Context(), c); err != nil {
				logger.Warn("card image unavailable", zap.Int("card", c.Index), zap.Error(err))
				fmt.Fprintln(cmd.ErrOrStderr(), colorize.YellowString("Image unavailable: %v", err))
				art = ""
			}
		}

		fields := []render.Field{
			{Label: "Index", Value: strconv.Itoa(c.Index)},
			{Label: "Card", Value: c.Heading()},
			{Label: "Locale", Value: cat.Locale},
		}
		render.SideBySide(cmd.OutOrStdout(), art, fields, "Quote", c.Quote, render.TerminalWidth())
		return nil
	},
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func init() {
	catalogCmd.PersistentFlags().StringVar(&catalogLocale, "locale", "", "Catalog locale (defaults to the configured one)")
	RootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogLocalesCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
}
