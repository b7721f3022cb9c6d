package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/deixis/debuganalyze/internal/report"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded analysis runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.Close()
			if e.HistoryErr != nil {
				return e.HistoryErr
			}

			if e.Config.History.Driver == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Run history is disabled. Set history.driver in .debuganalyze to enable it.")
				return nil
			}

			runs, err := e.Store.List(limit)
			if err != nil {
				return fmt.Errorf("listing runs: %w", err)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RUN\tSTARTED\tSTATUS\tEXIT\tDURATION")
			for _, r := range runs {
				exit := "-"
				if r.Status == report.Completed {
					exit = fmt.Sprint(r.ExitCode)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					r.ID, r.StartedAt.Format(time.DateTime), r.Status, exit, r.Duration.Round(time.Millisecond))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs to list (0 for all)")
	return cmd
}
