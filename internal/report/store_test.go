package report

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func testOutcome(id string, startedAt time.Time) *Outcome {
	return &Outcome{
		ID:         id,
		Status:     Completed,
		Invocation: "flutter analyze lib/main.dart",
		ReportPath: "analysis_debug.txt",
		StartedAt:  startedAt,
		Duration:   1500 * time.Millisecond,
		Capture:    CaptureResult{Stdout: "No issues found!\n", Stderr: ""},
		ExitCode:   0,
	}
}

func TestLRUStore_MemoryOnly(t *testing.T) {
	s := NewLRUStore(2, nil)
	now := time.Now()
	for i := range 3 {
		if err := s.Save(testOutcome(fmt.Sprintf("run-%d", i), now)); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	if _, err := s.Load("run-0"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(run-0) err = %v, want ErrNotFound after eviction", err)
	}
	got, err := s.Load("run-2")
	if err != nil {
		t.Fatalf("Load(run-2): %v", err)
	}
	if got.ID != "run-2" {
		t.Errorf("ID = %q, want run-2", got.ID)
	}

	list, err := s.List(0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != "run-2" || list[1].ID != "run-1" {
		t.Errorf("List = %v, want [run-2 run-1]", ids(list))
	}
}

func TestLRUStore_DelegatesOnMiss(t *testing.T) {
	disk := NewDiskStore(t.TempDir())
	s := NewLRUStore(1, disk)
	now := time.Now()

	if err := s.Save(testOutcome("a", now)); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(testOutcome("b", now.Add(time.Second))); err != nil {
		t.Fatal(err)
	}

	// "a" was evicted from memory but is still on disk.
	got, err := s.Load("a")
	if err != nil {
		t.Fatalf("Load(a): %v", err)
	}
	if got.Capture.Stdout != "No issues found!\n" {
		t.Errorf("Stdout = %q", got.Capture.Stdout)
	}
}

func TestDiskStore_RoundTripAndList(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "runs")
	s := NewDiskStore(dir)
	base := time.Now()

	failed := &Outcome{ID: "old", Status: Failed, Error: "exec: not found", StartedAt: base}
	if err := s.Save(failed); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(testOutcome("new", base.Add(time.Minute))); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load("old")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Status != Failed || got.Text() != "Error running analysis: exec: not found" {
		t.Errorf("loaded outcome = %+v", got)
	}

	list, err := s.List(1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].ID != "new" {
		t.Errorf("List(1) = %v, want [new]", ids(list))
	}
}

// rawCapture holds output that is not valid UTF-8, as some analyzers emit
// for Latin-1 source comments.
var rawCapture = CaptureResult{Stdout: "caf\xe9 ok\n", Stderr: "\xff\xfe warning"}

func TestDiskStore_KeepsRawBytes(t *testing.T) {
	s := NewDiskStore(t.TempDir())
	want := testOutcome("raw", time.Now())
	want.Capture = rawCapture

	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load("raw")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Capture != rawCapture {
		t.Errorf("Capture = %q, want %q", got.Capture, rawCapture)
	}
	if got.Text() != CompletedText(rawCapture) {
		t.Errorf("Text() = %q, want the report file bytes %q", got.Text(), CompletedText(rawCapture))
	}
}

func TestDiskStore_NotFound(t *testing.T) {
	s := NewDiskStore(t.TempDir())
	if _, err := s.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, err := s.Load("../escape"); err == nil {
		t.Error("expected error for run id with path separators")
	}
}

func TestDiskStore_ListMissingDir(t *testing.T) {
	s := NewDiskStore(filepath.Join(t.TempDir(), "never-created"))
	list, err := s.List(0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("List = %v, want empty", ids(list))
	}
}

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s := openTestSQLite(t)
	want := testOutcome("abc", time.Unix(1700000000, 42))
	want.Capture.Stderr = "warning: line\n"
	want.ExitCode = 1

	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load("abc")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Capture != want.Capture {
		t.Errorf("Capture = %+v, want %+v", got.Capture, want.Capture)
	}
	if !got.StartedAt.Equal(want.StartedAt) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, want.StartedAt)
	}
	if got.Duration != want.Duration || got.ExitCode != 1 || got.Status != Completed {
		t.Errorf("got %+v", got)
	}
	if got.Error != "" {
		t.Errorf("Error = %q, want empty", got.Error)
	}
}

func TestSQLiteStore_KeepsRawBytes(t *testing.T) {
	s := openTestSQLite(t)
	want := testOutcome("raw", time.Now())
	want.Capture = rawCapture

	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load("raw")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Text() != CompletedText(rawCapture) {
		t.Errorf("Text() = %q, want %q", got.Text(), CompletedText(rawCapture))
	}
}

func TestSQLiteStore_NotFound(t *testing.T) {
	s := openTestSQLite(t)
	if _, err := s.Load("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_ListNewestFirst(t *testing.T) {
	s := openTestSQLite(t)
	base := time.Now()
	for i := range 3 {
		if err := s.Save(testOutcome(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.List(0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].ID != "run-2" || all[2].ID != "run-0" {
		t.Errorf("List(0) = %v, want [run-2 run-1 run-0]", ids(all))
	}

	two, err := s.List(2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(two) != 2 {
		t.Errorf("List(2) returned %d runs", len(two))
	}
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s1, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := s1.Save(testOutcome("persisted", time.Now())); err != nil {
		t.Fatal(err)
	}
	s1.Close()

	s2, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()
	if _, err := s2.Load("persisted"); err != nil {
		t.Errorf("Load after reopen: %v", err)
	}
}

func TestOpenHistory(t *testing.T) {
	dir := t.TempDir()
	for _, driver := range []string{"", "json", "sqlite"} {
		path := filepath.Join(dir, "history-"+driver)
		store, closeFn, err := OpenHistory(driver, path)
		if err != nil {
			t.Fatalf("OpenHistory(%q): %v", driver, err)
		}
		if err := store.Save(testOutcome("x", time.Now())); err != nil {
			t.Errorf("Save with driver %q: %v", driver, err)
		}
		if err := closeFn(); err != nil {
			t.Errorf("close with driver %q: %v", driver, err)
		}
	}

	if _, _, err := OpenHistory("redis", ""); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func ids(list []*Outcome) []string {
	out := make([]string, len(list))
	for i, o := range list {
		out[i] = o.ID
	}
	return out
}
