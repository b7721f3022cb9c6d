// Package mcp provides the debuganalyze MCP server, registering the
// analysis tools and publishing model instructions.
package mcp

import (
	_ "embed"

	"github.com/deixis/debuganalyze"
	"github.com/deixis/debuganalyze/internal/analysis"
	"github.com/deixis/debuganalyze/internal/report"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Instructions is the model-facing guide published with the server.
//
//go:embed instructions.md
var Instructions string

// handler holds shared dependencies for all tool handlers.
type handler struct {
	engine *analysis.Engine
	store  report.Store
}

// historySize is the number of runs remembered when the engine has no store.
const historySize = 16

// NewServer creates an MCP server with all analysis tools registered.
// Runs are inspected through the engine's store. When the engine has none,
// the server keeps its own in-memory history and leaves the engine as is.
func NewServer(engine *analysis.Engine) *mcp.Server {
	store := engine.Store
	if store == nil {
		store = report.NewLRUStore(historySize, nil)
	}
	h := &handler{engine: engine, store: store}

	opts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "debuganalyze", Version: debuganalyze.Version}, opts)

	mcp.AddTool(s, &mcp.Tool{
		Name: "analyze_run",
		Description: `Run the configured analyzer against its target file and overwrite the report file.

Returns the run status, run ID and the exact report text. A non-zero analyzer exit code still counts
as a completed run; only a failure to start the analyzer is reported as failed.`,
	}, h.runHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "analyze_report",
		Description: "Read the current report file without running the analyzer.",
	}, h.reportHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "analyze_inspect",
		Description: "Show the report text of an earlier analyze_run by its run_id.",
	}, h.inspectHandler)

	return s
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
