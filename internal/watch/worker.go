package watch

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/bookbuilder/internal/logfields"
	"git.home.luguber.info/inful/bookbuilder/internal/metrics"
	"git.home.luguber.info/inful/bookbuilder/internal/publish"
)

// Rebuild triggers.
const (
	TriggerInitial  = "initial"
	TriggerChange   = "change"
	TriggerInterval = "interval"
)

// Builder runs one publish.
type Builder interface {
	Publish(ctx context.Context) (*publish.BuildReport, error)
}

// rebuildWorker runs rebuilds one at a time. The request channel holds at
// most one pending request, so requests arriving during a rebuild coalesce
// into a single follow-up rebuild.
type rebuildWorker struct {
	builder  Builder
	status   *Status
	recorder metrics.Recorder
	requests chan string
	done     chan struct{}
}

func newRebuildWorker(builder Builder, status *Status, recorder metrics.Recorder) *rebuildWorker {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &rebuildWorker{
		builder:  builder,
		status:   status,
		recorder: recorder,
		requests: make(chan string, 1),
		done:     make(chan struct{}),
	}
}

// Request asks for a rebuild without blocking.
func (w *rebuildWorker) Request(trigger string) {
	select {
	case w.requests <- trigger:
	default:
		slog.Debug("Rebuild already pending", slog.String("trigger", trigger))
	}
}

func (w *rebuildWorker) start(ctx context.Context) {
	go func() {
		defer close(w.done)
		for {
			select {
			case <-ctx.Done():
				return
			case trigger := <-w.requests:
				w.rebuild(ctx, trigger)
			}
		}
	}()
}

// rebuild runs one build synchronously and records its outcome.
func (w *rebuildWorker) rebuild(ctx context.Context, trigger string) {
	w.status.setRunning()
	w.recorder.IncRebuild(trigger)
	slog.Info("Rebuilding book", slog.String("trigger", trigger))

	t0 := time.Now()
	report, err := w.builder.Publish(ctx)
	w.status.record(report, err)
	if err != nil {
		slog.Warn("Rebuild failed", logfields.Error(err))
		return
	}
	slog.Info("Rebuild complete",
		logfields.Files(report.FilesCopied),
		logfields.DurationMS(float64(time.Since(t0).Microseconds())/1000))
}

func (w *rebuildWorker) wait() { <-w.done }
