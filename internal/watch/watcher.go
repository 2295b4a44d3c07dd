package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/bookbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/bookbuilder/internal/logfields"
	"git.home.luguber.info/inful/bookbuilder/internal/metrics"
)

// Options configures a Watcher.
type Options struct {
	// Roots are the directories watched recursively.
	Roots []string
	// Ignore drops events before they reach the debouncer.
	Ignore *IgnoreRules
	// Debounce is the quiet window before a rebuild.
	Debounce time.Duration
	// Interval enables periodic rebuilds when positive.
	Interval time.Duration
	// StatusAddr enables the status server when non-empty.
	StatusAddr string
	// Registry is served on /metrics. Nil serves the default registry.
	Registry *prom.Registry
	Recorder metrics.Recorder
	Clock    clockwork.Clock
}

// Watcher rebuilds on source changes until its context ends.
type Watcher struct {
	builder Builder
	opts    Options
	status  *Status
}

// New creates a Watcher.
func New(builder Builder, opts Options) *Watcher {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	return &Watcher{builder: builder, opts: opts, status: NewStatus()}
}

// Status exposes the rebuild status.
func (w *Watcher) Status() *Status { return w.status }

// Run builds once, then rebuilds on changes until ctx is done. A failing
// build never stops the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to create file watcher").Build()
	}
	defer func() { _ = fsw.Close() }()

	watched := 0
	for _, root := range w.opts.Roots {
		if st, err := os.Stat(root); err != nil || !st.IsDir() {
			slog.Warn("Watch root missing, skipping", logfields.Path(root))
			continue
		}
		addDirsRecursive(fsw, root)
		watched++
	}
	if watched == 0 {
		return errors.ValidationError("no source directories to watch").
			WithContext("roots", w.opts.Roots).Build()
	}

	worker := newRebuildWorker(w.builder, w.status, w.opts.Recorder)
	worker.rebuild(ctx, TriggerInitial)
	worker.start(ctx)

	debouncer := NewDebouncer(w.opts.Clock, w.opts.Debounce, func() { worker.Request(TriggerChange) })
	defer debouncer.Stop()

	if w.opts.Interval > 0 {
		sched, err := NewScheduler(w.opts.Clock)
		if err != nil {
			return errors.WrapError(err, errors.CategoryRuntime, "failed to start rebuild scheduler").Build()
		}
		if _, err := sched.SchedulePeriodicRebuild(w.opts.Interval, worker.Request); err != nil {
			return errors.WrapError(err, errors.CategoryRuntime, "failed to schedule periodic rebuild").Build()
		}
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				slog.Warn("Scheduler shutdown error", logfields.Error(err))
			}
		}()
	}

	if w.opts.StatusAddr != "" {
		srv, err := StartStatusServer(w.opts.StatusAddr, NewStatusRouter(w.status, w.opts.Registry))
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				slog.Warn("Status server shutdown error", logfields.Error(err))
			}
		}()
	}

	slog.Info("Watching for changes", slog.Any("roots", w.opts.Roots))
	defer worker.wait()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping watcher")
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, ev, debouncer)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event, debouncer *Debouncer) {
	if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
		return
	}
	if w.opts.Ignore != nil && w.opts.Ignore.Match(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			addDirsRecursive(fsw, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), logfields.Event(ev.Op.String()))
	debouncer.Trigger()
}

func addDirsRecursive(w *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}
