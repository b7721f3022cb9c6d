package commands

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/deixis/debuganalyze/internal/analysis"
	"github.com/deixis/debuganalyze/internal/config"
	"github.com/deixis/debuganalyze/internal/report"
	"github.com/deixis/debuganalyze/internal/runner"
)

// env holds the dependencies shared by every command.
type env struct {
	Config    *config.Config
	Workspace string
	Store     *report.LRUStore
	close     func() error

	// HistoryErr is set when the configured history could not be opened;
	// Store then holds runs in memory only.
	HistoryErr error
}

// Close releases the history store.
func (e *env) Close() error {
	return e.close()
}

// loadEnv loads configuration from the working directory and opens the
// configured run history. A history that cannot be opened does not fail
// the load: it is reported in HistoryErr and replaced by an in-memory store.
func loadEnv() (*env, error) {
	workspace, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining workspace: %w", err)
	}

	loaded, err := config.Load(workspace)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg := loaded.Config

	historyPath := cfg.History.Path
	if historyPath != "" && !filepath.IsAbs(historyPath) {
		historyPath = filepath.Join(loaded.ProjectRoot, historyPath)
	}
	e := &env{Config: cfg, Workspace: workspace}
	e.Store, e.close, err = report.OpenHistory(cfg.History.Driver, historyPath)
	if err != nil {
		e.HistoryErr = fmt.Errorf("opening history: %w", err)
		e.Store, e.close, _ = report.OpenHistory(config.HistoryNone, "")
	}
	return e, nil
}

// warnHistory logs a history open error, for commands that still run the
// analysis without it.
func (e *env) warnHistory() {
	if e.HistoryErr != nil {
		log.Printf("%v; keeping run history in memory", e.HistoryErr)
	}
}

// newEngine wires an analysis engine for the environment. The analyzer
// runs in the working directory and relative target and report paths
// resolve there, even when .debuganalyze was found in a parent project
// root. Only history.path resolves against the project root.
func (e *env) newEngine(console io.Writer) *analysis.Engine {
	return &analysis.Engine{
		Config: e.Config,
		Runner: &runner.Runner{
			Workspace: e.Workspace,
			Timeout:   e.Config.Timeout(),
		},
		Workspace: e.Workspace,
		Console:   console,
		Store:     e.Store,
	}
}
