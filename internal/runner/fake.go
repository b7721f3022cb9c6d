package runner

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Response is a pre-configured outcome for a command.
type Response struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error // returned instead of a Result, as for a spawn failure
}

// FakeRunner records invocations and returns pre-configured responses.
// Exported for use by analysis, watch and mcp tests.
type FakeRunner struct {
	mu        sync.Mutex
	Calls     []Invocation
	responses map[string]Response // key: Invocation.String()
	fallback  Response
}

// NewFakeRunner creates a FakeRunner whose fallback is an empty, successful run.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		responses: make(map[string]Response),
	}
}

// SetResponse configures a response for a specific command line.
func (f *FakeRunner) SetResponse(cmd string, resp Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[cmd] = resp
}

// SetFallback sets the default response for unmatched commands.
func (f *FakeRunner) SetFallback(resp Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fallback = resp
}

// Run records the call and returns the matching response.
func (f *FakeRunner) Run(_ context.Context, inv Invocation, _ string) (*Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, inv)

	resp, ok := f.responses[inv.String()]
	if !ok {
		resp, ok = f.responses[inv.Name()]
	}
	if !ok {
		resp = f.fallback
	}

	if resp.Err != nil {
		return nil, resp.Err
	}
	return &Result{
		RunID:    uuid.New().String(),
		ExitCode: resp.ExitCode,
		Stdout:   []byte(resp.Stdout),
		Stderr:   []byte(resp.Stderr),
	}, nil
}

// CallCount returns the number of recorded invocations.
func (f *FakeRunner) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}
