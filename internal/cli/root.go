package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configDir string
	setFlags  []string
	verbose   bool
)

// defaultRunDocument is loaded when no run document is named on the
// command line.
const defaultRunDocument = "matanyone"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "matrun",
	Short: "Matrun - run configuration for video matting inference",
	Long: `Matrun composes the configuration for a video object-matting
inference run: built-in defaults, the sub-configs named by the run
document's defaults: list, environment variables (MATRUN_*) and
command-line overrides, merged in that order into one immutable record.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "configs", "directory holding run documents and sub-configs")
	rootCmd.PersistentFlags().StringArrayVar(&setFlags, "set", nil, "override a config key (key=value, repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// runDocumentArg returns the run document named on the command line, or
// the default one.
func runDocumentArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultRunDocument
}
