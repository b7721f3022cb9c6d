package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// project creates a temp project with the given .debuganalyze contents and
// makes it the working directory for the test.
func project(t *testing.T, cfg string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pubspec.yaml"), []byte("name: app\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if cfg != "" {
		if err := os.WriteFile(filepath.Join(dir, ".debuganalyze"), []byte(cfg), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	t.Chdir(dir)
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := Root()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

const shConfig = `command: sh
args: ["-c", "printf 'No issues found!'"]
target: lib/presentation/home/home_screen.dart
`

func TestRoot_Completed(t *testing.T) {
	dir := project(t, shConfig)

	out, err := execute(t)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != "Analysis completed. Check analysis_debug.txt\n" {
		t.Errorf("output = %q", out)
	}
	if got := readFile(t, filepath.Join(dir, "analysis_debug.txt")); got != "STDOUT:\nNo issues found!\nSTDERR:\n" {
		t.Errorf("report = %q", got)
	}
}

func TestRoot_MissingAnalyzer(t *testing.T) {
	dir := project(t, "command: nonexistent-analyzer-xyz-123\n")

	out, err := execute(t)
	if err != nil {
		t.Fatalf("Execute returned %v; a failed analysis must not fail the command", err)
	}
	if out != "" {
		t.Errorf("output = %q, want nothing on failure", out)
	}
	got := readFile(t, filepath.Join(dir, "analysis_debug.txt"))
	if !strings.HasPrefix(got, "Error running analysis: ") {
		t.Errorf("report = %q", got)
	}
}

func TestRoot_InvalidConfig(t *testing.T) {
	dir := project(t, "history:\n  driver: redis\n")

	if _, err := execute(t); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	got := readFile(t, filepath.Join(dir, "analysis_debug.txt"))
	if !strings.HasPrefix(got, "Error running analysis: loading config") {
		t.Errorf("report = %q", got)
	}
}

func TestRoot_RejectsArgs(t *testing.T) {
	project(t, shConfig)
	if _, err := execute(t, "extra"); err == nil {
		t.Fatal("expected error for unexpected argument")
	}
}

func TestHistory_Disabled(t *testing.T) {
	project(t, shConfig)

	out, err := execute(t, "history")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out, "disabled") {
		t.Errorf("output = %q, want disabled notice", out)
	}
}

func TestHistory_JSONAndInspect(t *testing.T) {
	project(t, shConfig+"history:\n  driver: json\n  path: .debuganalyze-runs\n")

	if _, err := execute(t); err != nil {
		t.Fatalf("run: %v", err)
	}

	out, err := execute(t, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	m := regexp.MustCompile(`(?m)^([0-9a-f-]{36})\s+.*completed`).FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("no completed run in history:\n%s", out)
	}

	out, err = execute(t, "inspect", m[1])
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.Contains(out, "STDOUT:\nNo issues found!\nSTDERR:\n") {
		t.Errorf("inspect output = %q", out)
	}
}

func TestHistory_SQLite(t *testing.T) {
	project(t, shConfig+"history:\n  driver: sqlite\n  path: history.db\n")

	for range 2 {
		if _, err := execute(t); err != nil {
			t.Fatalf("run: %v", err)
		}
	}

	out, err := execute(t, "history", "-n", "0")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if got := strings.Count(out, "completed"); got != 2 {
		t.Errorf("history lists %d completed runs, want 2:\n%s", got, out)
	}
}

func TestInspect_Unknown(t *testing.T) {
	project(t, shConfig+"history:\n  driver: json\n  path: runs\n")

	if _, err := execute(t, "inspect", "does-not-exist"); err == nil {
		t.Fatal("expected error for unknown run")
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.HasPrefix(out, "debuganalyze ") {
		t.Errorf("output = %q", out)
	}
}

func TestRoot_HistoryUnavailable(t *testing.T) {
	dir := project(t, shConfig+"report: out.txt\nhistory:\n  driver: sqlite\n  path: missing/dir/h.db\n")
	report := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(report, []byte("STDOUT:\nstale\nSTDERR:\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := readFile(t, report); got != "STDOUT:\nNo issues found!\nSTDERR:\n" {
		t.Errorf("report = %q, want the fresh run despite unavailable history", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "analysis_debug.txt")); !os.IsNotExist(err) {
		t.Errorf("default report was written alongside the configured one (stat err = %v)", err)
	}
	if out != "Analysis completed. Check out.txt\n" {
		t.Errorf("output = %q", out)
	}
}

func TestHistory_Unavailable(t *testing.T) {
	project(t, shConfig+"history:\n  driver: sqlite\n  path: missing/dir/h.db\n")

	_, err := execute(t, "history")
	if err == nil {
		t.Fatal("expected error when the configured history cannot be opened")
	}
	if !strings.Contains(err.Error(), "opening history") {
		t.Errorf("error = %q, want 'opening history'", err)
	}
}
