// Package analysis runs the configured analyzer once and persists its
// captured output to the report file. It is consumed by the CLI, the
// watch loop and the MCP server.
package analysis

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/deixis/debuganalyze/internal/config"
	"github.com/deixis/debuganalyze/internal/report"
	"github.com/deixis/debuganalyze/internal/runner"
	"github.com/google/uuid"
)

// CommandRunner executes commands within a workspace.
// Implemented by runner.Runner and runner.FakeRunner.
type CommandRunner interface {
	Run(ctx context.Context, inv runner.Invocation, cwd string) (*runner.Result, error)
}

// Engine holds shared dependencies for analysis runs.
type Engine struct {
	Config    *config.Config
	Runner    CommandRunner
	Workspace string       // commands run here; a relative report path resolves here
	Console   io.Writer    // receives the confirmation line; nil discards it
	Store     report.Store // optional run history

	mu sync.Mutex // one report writer at a time
}

// Invocation returns the command the engine runs.
func (e *Engine) Invocation() runner.Invocation {
	return runner.NewInvocation(e.Config.CommandName(), e.Config.Argv()...)
}

// ReportPath returns the absolute location of the report file when the
// workspace is known, otherwise the configured path as is.
func (e *Engine) ReportPath() string {
	p := e.Config.ReportPath()
	if filepath.IsAbs(p) || e.Workspace == "" {
		return p
	}
	return filepath.Join(e.Workspace, p)
}

// Run executes the analyzer, captures both output streams and overwrites
// the report file with either the captured streams or a one-line error.
// It never returns an error: every failure is folded into the Outcome.
func (e *Engine) Run(ctx context.Context) *report.Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	inv := e.Invocation()
	out := &report.Outcome{
		Invocation: inv.String(),
		ReportPath: e.Config.ReportPath(),
		StartedAt:  time.Now(),
	}

	res, err := e.Runner.Run(ctx, inv, "")
	if err != nil {
		out.ID = uuid.New().String()
		out.Status = report.Failed
		out.Error = err.Error()
	} else {
		out.ID = res.RunID
		out.Status = report.Completed
		out.ExitCode = res.ExitCode
		out.Capture = report.CaptureResult{
			Stdout: string(res.Stdout),
			Stderr: string(res.Stderr),
		}
	}
	out.Duration = time.Since(out.StartedAt)

	e.persist(out)

	if out.Status == report.Completed && e.Console != nil {
		fmt.Fprintf(e.Console, "Analysis completed. Check %s\n", out.ReportPath)
	}

	if e.Store != nil {
		if err := e.Store.Save(out); err != nil {
			log.Printf("saving run %s: %v", out.ID, err)
		}
	}
	return out
}

// persist writes the report file. A failed write of the success report is
// downgraded to the error report; if that also fails the outcome records
// the write error.
func (e *Engine) persist(out *report.Outcome) {
	path := e.ReportPath()

	if out.Status == report.Completed {
		err := report.WriteFile(path, out.Text())
		if err == nil {
			return
		}
		out.Status = report.Failed
		out.Error = err.Error()
	}

	if err := report.WriteFile(path, out.Text()); err != nil {
		out.WriteError = err.Error()
		log.Printf("writing error report: %v", err)
	}
}
