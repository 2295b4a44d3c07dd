package publish

import "git.home.luguber.info/inful/bookbuilder/internal/metrics"

// BuildState is the mutable state shared by the stages of one run.
type BuildState struct {
	Layout   Layout
	Report   *BuildReport
	Observer BuildObserver
	Recorder metrics.Recorder

	stage StageName
}

func newBuildState(layout Layout, observer BuildObserver, recorder metrics.Recorder) *BuildState {
	return &BuildState{
		Layout:   layout,
		Report:   NewBuildReport(),
		Observer: observer,
		Recorder: recorder,
	}
}

func (bs *BuildState) fileCopied() {
	bs.Report.FilesCopied++
	bs.Report.FilesByStage[bs.stage]++
}

func (bs *BuildState) dirCreated() { bs.Report.DirsCreated++ }
