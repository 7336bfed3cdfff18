package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matvid/matrun/internal/config"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [run-document]",
	Short: "Check that a run document composes into a valid configuration",
	Long: `Validate composes the named run document exactly like resolve, but
only reports whether the result is valid.

Examples:
  # Validate the default run document
  matrun validate

  # Validate with an override applied
  matrun validate --set long_term.min_mem_frames=20
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	name := runDocumentArg(args)

	if _, err := config.LoadRun(configDir, name, setFlags...); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s resolves to a valid run configuration\n", name)
	return nil
}
