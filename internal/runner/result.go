package runner

// Result holds the output of a completed command execution.
type Result struct {
	RunID    string // unique identifier for this run
	ExitCode int    // process exit code; recorded, never interpreted
	Stdout   []byte // captured stdout, in full
	Stderr   []byte // captured stderr, in full
}
