package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/deixis/debuganalyze/internal/watch"
	"github.com/spf13/cobra"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-run the analysis whenever the target file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.Close()
			e.warnHistory()

			target := e.Config.TargetPath()
			if !filepath.IsAbs(target) {
				target = filepath.Join(e.Workspace, target)
			}

			w := &watch.Watcher{
				Analyzer: e.newEngine(cmd.OutOrStdout()),
				Target:   target,
				Debounce: e.Config.Debounce(),
			}
			if err := w.Run(ctx); err != nil {
				return fmt.Errorf("watch: %w", err)
			}
			return nil
		},
	}
}
