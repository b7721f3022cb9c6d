package mcp

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/deixis/debuganalyze/internal/report"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type runParams struct{}

func (h *handler) runHandler(ctx context.Context, req *mcp.CallToolRequest, _ runParams) (*mcp.CallToolResult, any, error) {
	out := h.engine.Run(ctx)
	if h.engine.Store == nil {
		// The engine saved nothing; remember the run for analyze_inspect.
		_ = h.store.Save(out)
	}
	if out.WriteError != "" {
		return errorResult(formatRun(out))
	}
	return textResult(formatRun(out))
}

type reportParams struct{}

func (h *handler) reportHandler(ctx context.Context, req *mcp.CallToolRequest, _ reportParams) (*mcp.CallToolResult, any, error) {
	path := h.engine.ReportPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errorResult(fmt.Sprintf("No report at %s yet. Call analyze_run first.", path))
		}
		return errorResult(fmt.Sprintf("Failed to read report: %v", err))
	}
	return textResult(string(data))
}

func formatRun(out *report.Outcome) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Status: %s\n", out.Status)
	fmt.Fprintf(&b, "Run: %s\n", out.ID)
	fmt.Fprintf(&b, "Command: %s\n", out.Invocation)
	if out.Status == report.Completed {
		fmt.Fprintf(&b, "Exit code: %d\n", out.ExitCode)
	}
	fmt.Fprintf(&b, "Report: %s\n", out.ReportPath)
	if out.WriteError != "" {
		fmt.Fprintf(&b, "Report not written: %s\n", out.WriteError)
	}
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, out.Text())

	return b.String()
}
