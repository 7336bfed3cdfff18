package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/matvid/matrun/internal/config"
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve [run-document]",
	Short: "Compose a run document and print the resolved configuration",
	Long: `Resolve composes the named run document (default: matanyone) against
its defaults: list, the MATRUN_* environment and any --set overrides,
validates the result and prints it as YAML.

The printed document reloads to an identical configuration, so it can be
archived next to run outputs.

Examples:
  # Resolve the default run document
  matrun resolve

  # Resolve a custom document with overrides
  matrun resolve eval_lowres --set max_internal_size=480 --set use_long_term=true
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	run, err := config.LoadRun(configDir, runDocumentArg(args), setFlags...)
	if err != nil {
		return err
	}

	if verbose {
		logger, err := run.Logging.Build()
		if err != nil {
			return err
		}
		defer logger.Sync()
		logger.Info("resolved run configuration",
			zap.String("exp_id", run.ExpID),
			zap.String("dataset", run.Dataset),
			zap.String("weights", run.Weights),
			zap.Bool("use_long_term", run.UseLongTerm),
		)
	}

	out, err := yaml.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to serialize resolved config: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}
