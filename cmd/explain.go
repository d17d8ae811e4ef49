package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/aura/internal/explain"
	"github.com/arcanaland/aura/internal/render"
)

var explainLocale string

// explainCmd represents the explain command
var explainCmd = &cobra.Command{
	Use:   "explain [index] [question]",
	Short: "Ask about one card without the interactive draw",
	Long: `Explain sends a single question about a catalog card and prints the reply.

Examples:
  aura explain 0 "What can I learn from starting over?"
  aura explain --locale es 17 ¿Qué me espera esta semana?`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid card index %q", args[0])
		}
		question := strings.TrimSpace(strings.Join(args[1:], " "))
		if question == "" {
			return fmt.Errorf("a question is required")
		}

		locale := localeFor(explainLocale)
		cat, err := catalogLoader().Load(locale)
		if err != nil {
			return err
		}
		c, err := cat.Card(index)
		if err != nil {
			return err
		}

		explainer, err := newExplainer(cmd.Context())
		if err != nil {
			return err
		}

		msgs := messages(locale)
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, colorize.New(colorize.Bold).Sprint(c.Heading()))
		for _, line := range render.WrapText(c.Quote, render.TerminalWidth()-4) {
			fmt.Fprintln(w, colorize.HiBlackString("  %s", line))
		}
		fmt.Fprintln(cmd.ErrOrStderr(), colorize.HiBlackString("%s", msgs.T("loading")))

		out := explainer.Explain(cmd.Context(), c, question, msgs)
		if out.Kind != explain.OK {
			fmt.Fprintln(cmd.ErrOrStderr(), colorize.RedString("%s", out.Text))
			return fmt.Errorf("no explanation: %w", out.Err)
		}

		fmt.Fprintln(w)
		fmt.Fprintln(w, colorize.MagentaString("%s", msgs.T("insight_title")))
		rendered, err := glamour.Render(out.Text, "auto")
		if err != nil {
			rendered = out.Text
		}
		fmt.Fprint(w, rendered)
		return nil
	},
}

func init() {
	explainCmd.Flags().StringVar(&explainLocale, "locale", "", "Language of the card and the reply")
	RootCmd.AddCommand(explainCmd)
}
