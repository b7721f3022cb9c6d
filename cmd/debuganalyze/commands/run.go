package commands

import (
	"log"
	"os"
	"os/signal"

	"github.com/deixis/debuganalyze/internal/config"
	"github.com/deixis/debuganalyze/internal/report"
	"github.com/spf13/cobra"
)

// runOnce performs a single analysis run. The outcome is communicated only
// through the report file and the confirmation line, so it never fails.
func runOnce(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	e, err := loadEnv()
	if err != nil {
		// No configuration means no configured report path; the default
		// report is still the place the user looks.
		if werr := report.WriteFile(config.DefaultReport, report.FailedText(err.Error())); werr != nil {
			log.Print(werr)
		}
		return nil
	}
	defer func() {
		if err := e.Close(); err != nil {
			log.Printf("closing history: %v", err)
		}
	}()
	e.warnHistory()

	e.newEngine(cmd.OutOrStdout()).Run(ctx)
	return nil
}
