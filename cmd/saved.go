package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/aura/internal/render"
	"github.com/arcanaland/aura/internal/store"
)

var (
	savedLocale string
	savedFull   bool
	savedYes    bool
)

// savedCmd represents the saved command group
var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Browse and delete your saved cards",
	Long:  `Commands for the cards you saved after a draw. You need to be signed in.`,
}

// savedListCmd represents the saved ls command
var savedListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List your saved cards, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		msgs := messages(localeFor(savedLocale))
		w := cmd.OutOrStdout()

		userID, ok, err := savedUser()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, msgs.T("saved_login_required"))
			return nil
		}

		s, err := openStore()
		if err != nil {
			return fmt.Errorf("error opening saved cards: %w", err)
		}
		defer s.Close()

		cards, err := s.List(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("error listing saved cards: %w", err)
		}
		if len(cards) == 0 {
			fmt.Fprintln(w, msgs.T("saved_empty"))
			return nil
		}

		dateColor := colorize.New(colorize.FgMagenta, colorize.Bold)
		width := render.TerminalWidth() - 6
		fmt.Fprintln(w, colorize.New(colorize.Bold).Sprint(msgs.T("saved_title")))
		for _, g := range store.Group(cards, msgs.DateLayout(), time.Local) {
			fmt.Fprintln(w)
			fmt.Fprintln(w, dateColor.Sprint(g.Key))
			for _, c := range g.Cards {
				fmt.Fprintf(w, "  %s %s %s\n", colorize.HiBlackString("%s", c.ID), c.Title, colorize.HiBlackString("%s", c.Time.Local().Format("15:04")))
				if !savedFull {
					continue
				}
				for _, line := range render.WrapText(c.Quote, width) {
					fmt.Fprintf(w, "    %s\n", line)
				}
				if c.UserQuestion != "" {
					fmt.Fprintf(w, "    %s %s\n", colorize.CyanString("%s", msgs.T("saved_question")+":"), c.UserQuestion)
				}
				if c.AIReply != "" {
					fmt.Fprintf(w, "    %s\n", colorize.CyanString("%s", msgs.T("saved_reply")+":"))
					for _, line := range render.WrapText(c.AIReply, width) {
						fmt.Fprintf(w, "    %s\n", line)
					}
				}
			}
		}
		return nil
	},
}

// savedRemoveCmd represents the saved rm command
var savedRemoveCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a saved card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		msgs := messages(localeFor(savedLocale))
		w := cmd.OutOrStdout()

		userID, ok, err := savedUser()
		if err != nil {
			return err
		}
		if !ok {
			return errors.New(msgs.T("saved_login_required"))
		}

		s, err := openStore()
		if err != nil {
			return fmt.Errorf("error opening saved cards: %w", err)
		}
		defer s.Close()

		cards, err := s.List(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("error listing saved cards: %w", err)
		}
		var target *store.SavedCard
		for i := range cards {
			if cards[i].ID == id {
				target = &cards[i]
				break
			}
		}
		if target == nil {
			return fmt.Errorf("saved card %s: %w", id, store.ErrNotFound)
		}

		if !savedYes {
			fmt.Fprint(w, msgs.F("delete_confirm", target.Title))
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				return nil
			}
		}

		if err := s.Delete(cmd.Context(), userID, id); err != nil {
			return fmt.Errorf("error deleting saved card: %w", err)
		}
		logger.Info("saved card deleted", zap.String("id", id))
		fmt.Fprintln(w, msgs.F("deleted", target.Title))
		return nil
	},
}

// savedUser returns the signed-in user's id, or ok=false when signed out
func savedUser() (string, bool, error) {
	p, err := authProvider()
	if err != nil {
		return "", false, err
	}
	id, err := signedInUser(p)
	if err != nil {
		return "", false, err
	}
	if id == nil {
		return "", false, nil
	}
	return id.UID, true, nil
}

func init() {
	savedCmd.PersistentFlags().StringVar(&savedLocale, "locale", "", "Language used for dates and labels")
	savedListCmd.Flags().BoolVar(&savedFull, "full", false, "Show quotes, questions and replies")
	savedRemoveCmd.Flags().BoolVarP(&savedYes, "yes", "y", false, "Delete without asking")
	RootCmd.AddCommand(savedCmd)
	savedCmd.AddCommand(savedListCmd)
	savedCmd.AddCommand(savedRemoveCmd)
}
