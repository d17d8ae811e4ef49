package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/aura/internal/render"
)

var infoLocale string

// infoPages maps page names to their title and body message keys
var infoPages = map[string][2]string{
	"how-it-works": {"how_it_works_title", "how_it_works_body"},
	"how-to-ask":   {"how_to_ask_title", "how_to_ask_body"},
}

var infoOrder = []string{"how-it-works", "how-to-ask"}

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:       "info [how-it-works|how-to-ask]",
	Short:     "Read how Aura works and how to ask a good question",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: infoOrder,
	RunE: func(cmd *cobra.Command, args []string) error {
		pages := infoOrder
		if len(args) == 1 {
			if _, ok := infoPages[args[0]]; !ok {
				return fmt.Errorf("unknown page %q (choose how-it-works or how-to-ask)", args[0])
			}
			pages = args
		}

		msgs := messages(localeFor(infoLocale))
		w := cmd.OutOrStdout()
		width := min(render.TerminalWidth()-4, 88)
		title := colorize.New(colorize.FgMagenta, colorize.Bold)
		for i, name := range pages {
			keys := infoPages[name]
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, title.Sprint(msgs.T(keys[0])))
			fmt.Fprintln(w)
			for _, line := range render.WrapText(msgs.T(keys[1]), width) {
				fmt.Fprintf(w, "  %s\n", line)
			}
		}
		return nil
	},
}

func init() {
	infoCmd.Flags().StringVar(&infoLocale, "locale", "", "Language of the pages")
	RootCmd.AddCommand(infoCmd)
}
