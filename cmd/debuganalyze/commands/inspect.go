package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/deixis/debuganalyze/internal/report"
	"github.com/spf13/cobra"
)

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <run-id>",
		Short: "Print the report text of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.Close()
			if e.HistoryErr != nil {
				return e.HistoryErr
			}

			out, err := e.Store.Load(args[0])
			if errors.Is(err, report.ErrNotFound) {
				return fmt.Errorf("run %s not found", args[0])
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Run: %s (%s, %s)\n", out.ID, out.Status, out.StartedAt.Format(time.DateTime))
			fmt.Fprintf(cmd.OutOrStdout(), "Command: %s\n\n", out.Invocation)
			fmt.Fprintln(cmd.OutOrStdout(), out.Text())
			return nil
		},
	}
}
