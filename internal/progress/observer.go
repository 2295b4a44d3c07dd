package progress

import (
	"time"

	"git.home.luguber.info/inful/bookbuilder/internal/publish"
)

// Observer drives a Reporter from publish stage callbacks.
type Observer struct {
	reporter Reporter
	done     int
}

// NewObserver wraps reporter as a publish.BuildObserver.
func NewObserver(reporter Reporter) *Observer {
	return &Observer{reporter: reporter}
}

func (o *Observer) OnBuildStart(_ *publish.BuildReport, stages []publish.StageName) {
	o.done = 0
	o.reporter.Start(len(stages))
}

func (o *Observer) OnStageStart(stage publish.StageName) {
	o.reporter.Update(o.done, string(stage))
}

func (o *Observer) OnStageComplete(stage publish.StageName, _ time.Duration, _ publish.StageResult) {
	o.done++
	o.reporter.Update(o.done, string(stage))
}

func (o *Observer) OnBuildComplete(_ *publish.BuildReport) {
	o.reporter.Finish()
}
