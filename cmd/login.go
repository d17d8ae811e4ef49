package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in so you can save cards",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := authProvider()
		if err != nil {
			return err
		}
		id, err := p.SignIn(args[0])
		if err != nil {
			return fmt.Errorf("error signing in: %w", err)
		}
		logger.Info("signed in", zap.String("uid", id.UID))
		fmt.Fprintln(cmd.OutOrStdout(), colorize.GreenString("%s", messages(cfg.ResolvedLocale()).F("signed_in_as", id.Email)))
		return nil
	},
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := authProvider()
		if err != nil {
			return err
		}
		if err := p.SignOut(); err != nil {
			return fmt.Errorf("error signing out: %w", err)
		}
		logger.Info("signed out")
		fmt.Fprintln(cmd.OutOrStdout(), messages(cfg.ResolvedLocale()).T("signed_out"))
		return nil
	},
}

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show who is signed in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := authProvider()
		if err != nil {
			return err
		}
		id, err := signedInUser(p)
		if err != nil {
			return err
		}

		msgs := messages(cfg.ResolvedLocale())
		w := cmd.OutOrStdout()
		if id == nil {
			fmt.Fprintln(w, msgs.T("signed_out"))
			return nil
		}
		fmt.Fprintln(w, msgs.F("signed_in_as", id.Email))
		fmt.Fprintln(w, colorize.HiBlackString("uid: %s", id.UID))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(loginCmd)
	RootCmd.AddCommand(logoutCmd)
	RootCmd.AddCommand(whoamiCmd)
}
