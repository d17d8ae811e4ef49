package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/aura/internal/config"
	"github.com/arcanaland/aura/internal/logging"
)

var (
	verbose bool
	cfg     *config.Config
	logger  = zap.NewNop()
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "aura",
	Short: "Draw a card and reflect on it",
	Long: `Aura is a moment of reflection in your terminal. Think of a topic while the
countdown runs, pick one card from the fan and, if you like, ask a question
about it to receive a gentle reflection.

Run without a subcommand to start a draw. Set GEMINI_API_KEY (in the
environment or a .env file) to enable explanations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		logger, err = logging.New(config.GetLogFilePath(), verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.Debug("starting", zap.String("command", cmd.CommandPath()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runDraw,
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write debug entries to the log file")
	addDrawFlags(RootCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
