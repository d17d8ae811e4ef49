package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/aura/internal/validator"
)

// catalogValidateCmd represents the catalog validate command
var catalogValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a catalog file",
	Long: `Validate checks a catalog file before it is copied into the catalog directory.
It verifies that the TOML parses, that every card has a title and a quote, and
that local images exist next to the file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		w := cmd.OutOrStdout()

		v := validator.NewValidator(path)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		// Display validation results
		fmt.Fprintln(w, "Validation Results:")
		fmt.Fprintln(w, "-------------------")

		if results.Valid() {
			fmt.Fprintf(w, "✅ Catalog '%s' is valid.\n", path)
		} else {
			fmt.Fprintf(w, "❌ Catalog '%s' has %d validation errors:\n", path, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Fprintf(w, "%d. %s\n", i+1, err)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(w, "\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Fprintf(w, "%d. %s\n", i+1, warn)
			}
		}

		if !results.Valid() {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}
