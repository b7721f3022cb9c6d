package commands

import (
	"fmt"

	"github.com/deixis/debuganalyze"
	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "debuganalyze %s\n", debuganalyze.Version)
		},
	}
}
