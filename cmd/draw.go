package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/aura/internal/auth"
	"github.com/arcanaland/aura/internal/config"
	"github.com/arcanaland/aura/internal/fan"
	"github.com/arcanaland/aura/internal/render"
	"github.com/arcanaland/aura/internal/session"
	"github.com/arcanaland/aura/internal/store"
	"github.com/arcanaland/aura/internal/tui"
)

var drawOpts struct {
	locale    string
	countdown int
	skipIntro bool
	fanCards  int
}

// drawCmd represents the draw command
var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Start an interactive draw",
	Long: `Draw runs the countdown, lays out the fan of face-down cards and reveals the
one you choose. Once a card is revealed you can ask a question about it, save
it (after signing in) or draw again.

Examples:
  aura draw
  aura draw --locale es --skip-intro
  aura draw --countdown 3 --fan-cards 21`,
	Args: cobra.NoArgs,
	RunE: runDraw,
}

func addDrawFlags(c *cobra.Command) {
	c.Flags().StringVar(&drawOpts.locale, "locale", "", "Language for cards and text (en, es, zh-TW)")
	c.Flags().IntVar(&drawOpts.countdown, "countdown", 0, "Countdown seconds before choosing; negative skips it")
	c.Flags().BoolVar(&drawOpts.skipIntro, "skip-intro", false, "Start the countdown immediately")
	c.Flags().IntVar(&drawOpts.fanCards, "fan-cards", 0, "Number of face-down cards in the fan")
}

func runDraw(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	locale := localeFor(drawOpts.locale)

	countdown := cfg.Countdown
	if cmd.Flags().Changed("countdown") {
		countdown = drawOpts.countdown
	}
	fanCards := cfg.FanCards
	if drawOpts.fanCards > 0 {
		fanCards = drawOpts.fanCards
	}

	explainer, err := newExplainer(ctx)
	if err != nil {
		return err
	}

	// Saving is optional; a broken store only disables it
	var saved store.Store
	if gs, err := openStore(); err != nil {
		logger.Error("saved cards unavailable", zap.String("database", cfg.Database), zap.Error(err))
		fmt.Fprintln(cmd.ErrOrStderr(), colorize.YellowString("%s", messages(locale).T("store_unavailable")))
	} else {
		defer gs.Close()
		saved = gs
	}

	var provider auth.Provider
	if p, err := authProvider(); err != nil {
		logger.Warn("sign-in unavailable", zap.Error(err))
	} else {
		provider = p
	}

	m, err := tui.New(tui.Options{
		Context:  ctx,
		Catalogs: catalogLoader(),
		Locale:   locale,
		Session: session.Config{
			Countdown: countdown,
			FanCount:  fanCards,
			SkipIntro: drawOpts.skipIntro,
		},
		Images:    fan.NewPreloader(fan.DefaultSource{}, render.ArtWidth, render.ArtHeight),
		Explainer: explainer,
		Store:     saved,
		Auth:      provider,
		Logger:    logger,
		OnLocale:  config.SetLocale,
	})
	if err != nil {
		return err
	}

	logger.Info("draw started", zap.String("locale", locale), zap.Int("countdown", countdown), zap.Int("fan_cards", fanCards))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if fm, ok := final.(tui.Model); ok {
		fm.Close()
	} else {
		m.Close()
	}
	if err != nil {
		return fmt.Errorf("error running draw: %w", err)
	}
	return nil
}

func init() {
	addDrawFlags(drawCmd)
	RootCmd.AddCommand(drawCmd)
}
