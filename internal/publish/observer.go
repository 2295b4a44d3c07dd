package publish

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/bookbuilder/internal/logfields"
	"git.home.luguber.info/inful/bookbuilder/internal/metrics"
)

// BuildObserver receives callbacks around stage execution and build lifecycle.
type BuildObserver interface {
	OnBuildStart(report *BuildReport, stages []StageName)
	OnStageStart(stage StageName)
	OnStageComplete(stage StageName, duration time.Duration, result StageResult)
	OnBuildComplete(report *BuildReport)
}

// NoopObserver is a no-op implementation.
type NoopObserver struct{}

func (NoopObserver) OnBuildStart(_ *BuildReport, _ []StageName)                  {}
func (NoopObserver) OnStageStart(_ StageName)                                    {}
func (NoopObserver) OnStageComplete(_ StageName, _ time.Duration, _ StageResult) {}
func (NoopObserver) OnBuildComplete(_ *BuildReport)                              {}

// MultiObserver fans callbacks out to several observers in order.
type MultiObserver []BuildObserver

func (m MultiObserver) OnBuildStart(r *BuildReport, stages []StageName) {
	for _, o := range m {
		o.OnBuildStart(r, stages)
	}
}

func (m MultiObserver) OnStageStart(stage StageName) {
	for _, o := range m {
		o.OnStageStart(stage)
	}
}

func (m MultiObserver) OnStageComplete(stage StageName, d time.Duration, res StageResult) {
	for _, o := range m {
		o.OnStageComplete(stage, d, res)
	}
}

func (m MultiObserver) OnBuildComplete(r *BuildReport) {
	for _, o := range m {
		o.OnBuildComplete(r)
	}
}

// RecorderObserver adapts metrics.Recorder into a BuildObserver.
type RecorderObserver struct{ Recorder metrics.Recorder }

func (r RecorderObserver) OnBuildStart(_ *BuildReport, _ []StageName) {}
func (r RecorderObserver) OnStageStart(_ StageName)                   {}
func (r RecorderObserver) OnStageComplete(stage StageName, d time.Duration, _ StageResult) {
	if r.Recorder != nil {
		r.Recorder.ObserveStageDuration(string(stage), d)
	}
}

func (r RecorderObserver) OnBuildComplete(report *BuildReport) {
	if r.Recorder == nil {
		return
	}
	r.Recorder.ObserveBuildDuration(report.Duration())
	r.Recorder.IncBuildOutcome(metrics.BuildOutcomeLabel(report.Outcome))
	for stage, n := range report.FilesByStage {
		r.Recorder.AddFilesCopied(string(stage), n)
	}
}

// LogObserver writes stage and build progress to a slog logger.
type LogObserver struct{ Logger *slog.Logger }

func (l LogObserver) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

func (l LogObserver) OnBuildStart(r *BuildReport, _ []StageName) {
	l.logger().Info("Publish started", logfields.BuildID(r.ID))
}

func (l LogObserver) OnStageStart(stage StageName) {
	l.logger().Debug("Stage started", logfields.Stage(string(stage)))
}

func (l LogObserver) OnStageComplete(stage StageName, d time.Duration, res StageResult) {
	lvl := slog.LevelDebug
	if res != StageResultSuccess {
		lvl = slog.LevelWarn
	}
	l.logger().Log(context.Background(), lvl, "Stage completed",
		logfields.Stage(string(stage)),
		logfields.DurationMS(float64(d.Microseconds())/1000),
		logfields.Outcome(string(res)))
}

func (l LogObserver) OnBuildComplete(r *BuildReport) {
	attrs := []any{
		logfields.BuildID(r.ID),
		logfields.Outcome(string(r.Outcome)),
		logfields.Files(r.FilesCopied),
		logfields.DurationMS(float64(r.Duration().Microseconds()) / 1000),
	}
	if r.Err != nil {
		l.logger().Error("Publish failed", append(attrs, logfields.Error(r.Err))...)
		return
	}
	l.logger().Info("Publish finished", attrs...)
}
