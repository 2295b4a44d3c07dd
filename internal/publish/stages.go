package publish

import (
	"context"
	"fmt"
)

// Stage is a discrete unit of work in a publish run.
type Stage func(ctx context.Context, bs *BuildState) error

// StageName is a strongly-typed identifier for a publish stage.
type StageName string

// Canonical stage names.
const (
	StagePrepareOutput       StageName = "prepare_output"
	StageCopyAssets          StageName = "copy_assets"
	StageCopyGeneratorConfig StageName = "copy_generator_config"
	StageCopyIndex           StageName = "copy_index"
	StageCopyContent         StageName = "copy_content"
	StageCopyNavigation      StageName = "copy_navigation"
)

// StageErrorKind classifies the outcome of a failed stage.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Run must abort.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying the failing stage and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// NewFatalStageError creates a new fatal stage error.
func NewFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

func NewCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// StageResult captures the high-level outcome of a stage.
type StageResult string

const (
	StageResultSuccess  StageResult = "success"
	StageResultFatal    StageResult = "fatal"
	StageResultCanceled StageResult = "canceled"
	StageResultSkipped  StageResult = "skipped"
)

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// Pipeline is a fluent builder for ordered stage definitions.
type Pipeline struct{ Defs []StageDef }

// NewPipeline creates an empty pipeline.
func NewPipeline() *Pipeline { return &Pipeline{Defs: make([]StageDef, 0, 6)} }

// Add appends a stage unconditionally.
func (p *Pipeline) Add(name StageName, fn Stage) *Pipeline {
	p.Defs = append(p.Defs, StageDef{Name: name, Fn: fn})
	return p
}

// AddIf appends a stage only if cond is true.
func (p *Pipeline) AddIf(cond bool, name StageName, fn Stage) *Pipeline {
	if cond {
		p.Add(name, fn)
	}
	return p
}

// Build returns a copy of the stage definitions slice.
func (p *Pipeline) Build() []StageDef {
	out := make([]StageDef, len(p.Defs))
	copy(out, p.Defs)
	return out
}

// Names lists the stage names in order.
func Names(defs []StageDef) []StageName {
	names := make([]StageName, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	return names
}

// DefaultPipeline returns the publish stages in their fixed order.
func DefaultPipeline() []StageDef {
	return NewPipeline().
		Add(StagePrepareOutput, stagePrepareOutput).
		Add(StageCopyAssets, stageCopyAssets).
		Add(StageCopyGeneratorConfig, stageCopyGeneratorConfig).
		Add(StageCopyIndex, stageCopyIndex).
		Add(StageCopyContent, stageCopyContent).
		Add(StageCopyNavigation, stageCopyNavigation).
		Build()
}
