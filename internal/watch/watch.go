// Package watch re-runs the analysis whenever the analyzed source file changes.
package watch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/deixis/debuganalyze/internal/report"
	"github.com/fsnotify/fsnotify"
)

// Analyzer performs one analysis run. Implemented by analysis.Engine.
type Analyzer interface {
	Run(ctx context.Context) *report.Outcome
}

// Watcher triggers an Analyzer when Target is written, created or renamed
// into place. Bursts of events within Debounce collapse into one run.
type Watcher struct {
	Analyzer Analyzer
	Target   string // file to watch; its directory is watched
	Debounce time.Duration

	// OnRun, if set, receives every outcome produced by the watcher.
	OnRun func(*report.Outcome)
}

// Run performs an initial analysis, then watches until ctx is done. The
// initial run happens even when the target's directory cannot be watched,
// so the report file always reflects the current state.
func (w *Watcher) Run(ctx context.Context) error {
	w.trigger(ctx)

	target, err := filepath.Abs(w.Target)
	if err != nil {
		return fmt.Errorf("resolving target: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace files instead of writing them in place, so
	// watch the parent directory and filter by name.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch dir: %w", err)
	}

	log.Printf("watching %s", w.Target)

	var (
		mu      sync.Mutex
		pending *time.Timer
		wg      sync.WaitGroup
	)
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			if pending != nil && pending.Stop() {
				wg.Done()
			}
			mu.Unlock()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			mu.Lock()
			if pending != nil && pending.Stop() {
				wg.Done()
			}
			wg.Add(1)
			pending = time.AfterFunc(w.debounce(), func() {
				defer wg.Done()
				if ctx.Err() != nil {
					return
				}
				w.trigger(ctx)
			})
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watcher error: %v", err)
		}
	}
}

func (w *Watcher) trigger(ctx context.Context) {
	out := w.Analyzer.Run(ctx)
	if w.OnRun != nil {
		w.OnRun(out)
	}
}

func (w *Watcher) debounce() time.Duration {
	if w.Debounce > 0 {
		return w.Debounce
	}
	return 500 * time.Millisecond
}
