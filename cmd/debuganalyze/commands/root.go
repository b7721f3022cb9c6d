package commands

import (
	"github.com/spf13/cobra"
)

// Root returns the root cobra command with all subcommands attached.
// Invoked without a subcommand it performs a single analysis run.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debuganalyze",
		Short: "Capture static analysis output to a report file",
		Long: `debuganalyze runs the configured analyzer (by default
"flutter analyze lib/presentation/home/home_screen.dart") and writes its
captured STDOUT and STDERR to analysis_debug.txt.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runOnce,
	}

	cmd.AddCommand(watchCmd())
	cmd.AddCommand(historyCmd())
	cmd.AddCommand(inspectCmd())
	cmd.AddCommand(mcpCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}
