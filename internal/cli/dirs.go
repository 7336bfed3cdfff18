package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matvid/matrun/internal/config"
)

// dirsCmd represents the dirs command
var dirsCmd = &cobra.Command{
	Use:   "dirs [run-document]",
	Short: "Print the resolved run directories",
	Long: `Dirs composes the named run document and prints the run directory and
output subdirectory with all placeholders (${exp_id}, ${dataset},
${now:...}, ${run_id}) expanded.

An explicit output_dir in the document or overrides replaces the derived
run directory.

Examples:
  matrun dirs
  matrun dirs --set exp_id=ablation-3 --set dataset=vm800
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDirs,
}

func init() {
	rootCmd.AddCommand(dirsCmd)
}

func runDirs(cmd *cobra.Command, args []string) error {
	run, err := config.LoadRun(configDir, runDocumentArg(args), setFlags...)
	if err != nil {
		return err
	}

	dirs, err := run.ResolveDirs(run.NewRunContext())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "run dir:       %s\n", dirs.RunDir)
	fmt.Fprintf(cmd.OutOrStdout(), "output subdir: %s\n", dirs.OutputSubdir)
	return nil
}
