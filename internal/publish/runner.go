package publish

import (
	"context"
	stdErrors "errors"
	"time"
)

// RunStages executes stages in order, recording timing and stopping on the
// first error. Cancellation is checked before every stage.
func RunStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	obs := bs.Observer
	if obs == nil {
		obs = NoopObserver{}
	}

	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			se := NewCanceledStageError(st.Name, err)
			bs.Report.RecordStageResult(st.Name, StageResultCanceled, bs.Recorder)
			obs.OnStageComplete(st.Name, 0, StageResultCanceled)
			return se
		}

		obs.OnStageStart(st.Name)
		bs.stage = st.Name

		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)
		bs.Report.StageDurations[st.Name] = dur

		res, se := classifyStageResult(ctx, st.Name, err)
		bs.Report.RecordStageResult(st.Name, res, bs.Recorder)
		obs.OnStageComplete(st.Name, dur, res)

		if se != nil {
			return se
		}
	}
	return nil
}

// classifyStageResult maps a stage return value onto a result and, for
// failures, a StageError.
func classifyStageResult(ctx context.Context, name StageName, err error) (StageResult, *StageError) {
	if err == nil {
		return StageResultSuccess, nil
	}
	var se *StageError
	if stdErrors.As(err, &se) {
		if se.Kind == StageErrorCanceled {
			return StageResultCanceled, se
		}
		return StageResultFatal, se
	}
	if stdErrors.Is(err, context.Canceled) || stdErrors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return StageResultCanceled, NewCanceledStageError(name, err)
	}
	return StageResultFatal, NewFatalStageError(name, err)
}
