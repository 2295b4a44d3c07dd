package publish

import (
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/bookbuilder/internal/metrics"
	"git.home.luguber.info/inful/bookbuilder/internal/version"
)

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// BuildReport captures what a publish run did.
type BuildReport struct {
	ID      string    `json:"id"`
	Version string    `json:"version"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`

	StageDurations map[StageName]time.Duration `json:"stage_durations"`
	StageResults   map[StageName]StageResult   `json:"stage_results"`

	FilesCopied     int               `json:"files_copied"`
	DirsCreated     int               `json:"dirs_created"`
	FilesByStage    map[StageName]int `json:"files_by_stage"`
	SkippedOptional []string          `json:"skipped_optional,omitempty"`
	CategoryPages   map[string]int    `json:"category_pages"`
	IgnoredFiles    int               `json:"ignored_files"`

	Outcome BuildOutcome `json:"outcome"`
	// Err is the error that aborted the run, nil on success.
	Err error `json:"-"`
	// Error mirrors Err for JSON consumers.
	Error string `json:"error,omitempty"`
}

// NewBuildReport constructs a report with a fresh build ID.
func NewBuildReport() *BuildReport {
	return &BuildReport{
		ID:             uuid.NewString(),
		Version:        version.Version,
		Start:          time.Now(),
		StageDurations: make(map[StageName]time.Duration),
		StageResults:   make(map[StageName]StageResult),
		FilesByStage:   make(map[StageName]int),
		CategoryPages:  make(map[string]int),
	}
}

// Duration is the wall time of the run.
func (r *BuildReport) Duration() time.Duration { return r.End.Sub(r.Start) }

// Finish sets the end time of the report.
func (r *BuildReport) Finish() { r.End = time.Now() }

// Fail records the aborting error.
func (r *BuildReport) Fail(err error) {
	r.Err = err
	if err != nil {
		r.Error = err.Error()
	}
}

// DeriveOutcome computes Outcome from the recorded stage results.
func (r *BuildReport) DeriveOutcome() {
	r.Outcome = OutcomeSuccess
	for _, res := range r.StageResults {
		switch res {
		case StageResultCanceled:
			r.Outcome = OutcomeCanceled
			return
		case StageResultFatal:
			r.Outcome = OutcomeFailed
		}
	}
}

// RecordStageResult stores a stage result and emits its metric (if recorder non-nil).
func (r *BuildReport) RecordStageResult(stage StageName, res StageResult, recorder metrics.Recorder) {
	r.StageResults[stage] = res
	if recorder == nil {
		return
	}
	switch res {
	case StageResultSuccess:
		recorder.IncStageResult(string(stage), metrics.ResultSuccess)
	case StageResultFatal:
		recorder.IncStageResult(string(stage), metrics.ResultFatal)
	case StageResultCanceled:
		recorder.IncStageResult(string(stage), metrics.ResultCanceled)
	case StageResultSkipped:
		recorder.IncStageResult(string(stage), metrics.ResultSkipped)
	}
}
