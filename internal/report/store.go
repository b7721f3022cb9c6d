// Package report renders analysis outcomes into the report file and keeps
// an optional history of past runs.
package report

import (
	"encoding/json"
	"errors"
	"time"
)

// Status identifies how a run ended.
type Status string

const (
	// Completed means the command ran to termination and its streams were captured.
	Completed Status = "completed"
	// Failed means the command could not be spawned or waited on, or the
	// report could not be written.
	Failed Status = "failed"
)

// Report labels and prefixes.
const (
	StdoutLabel = "STDOUT:\n"
	StderrLabel = "\nSTDERR:\n"
	ErrorPrefix = "Error running analysis: "
)

// ErrNotFound is returned when a run ID is not present in a store.
var ErrNotFound = errors.New("run not found")

// Store persists and retrieves run outcomes.
type Store interface {
	Save(outcome *Outcome) error
	Load(runID string) (*Outcome, error)
}

// Lister is implemented by stores that can enumerate past runs.
type Lister interface {
	// List returns at most limit outcomes, newest first. A limit <= 0
	// returns every stored run.
	List(limit int) ([]*Outcome, error)
}

// CaptureResult holds the full text of both output streams of one run.
// The text is whatever bytes the command wrote and need not be valid UTF-8.
type CaptureResult struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
}

// captureJSON carries the streams as base64 so history files keep the
// exact bytes written to the report file.
type captureJSON struct {
	Stdout []byte `json:"stdout"`
	Stderr []byte `json:"stderr"`
}

// MarshalJSON implements json.Marshaler.
func (c CaptureResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(captureJSON{Stdout: []byte(c.Stdout), Stderr: []byte(c.Stderr)})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *CaptureResult) UnmarshalJSON(data []byte) error {
	var raw captureJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Stdout, c.Stderr = string(raw.Stdout), string(raw.Stderr)
	return nil
}

// Outcome is the result of one analysis attempt: either a completed
// capture or a failure description.
type Outcome struct {
	ID         string        `json:"id"`
	Status     Status        `json:"status"`
	Invocation string        `json:"invocation"`
	ReportPath string        `json:"report_path"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`

	// Completed fields.
	Capture  CaptureResult `json:"capture"`
	ExitCode int           `json:"exit_code"`

	// Failed fields.
	Error string `json:"error,omitempty"`

	// WriteError is set when the report file could not be written at all.
	WriteError string `json:"write_error,omitempty"`
}

// Text renders the report file contents for the outcome.
func (o *Outcome) Text() string {
	if o.Status == Completed {
		return CompletedText(o.Capture)
	}
	return FailedText(o.Error)
}

// CompletedText renders the success report: the stdout label and text,
// then the stderr label and text, unmodified.
func CompletedText(c CaptureResult) string {
	return StdoutLabel + c.Stdout + StderrLabel + c.Stderr
}

// FailedText renders the one-line error report.
func FailedText(desc string) string {
	return ErrorPrefix + desc
}
