package publish

import (
	"context"

	"git.home.luguber.info/inful/bookbuilder/internal/metrics"
)

// Publisher runs the publish pipeline for one layout.
type Publisher struct {
	layout    Layout
	observers []BuildObserver
	recorder  metrics.Recorder
	stages    []StageDef
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithObserver adds an observer. Observers are called in the order added.
func WithObserver(o BuildObserver) Option {
	return func(p *Publisher) {
		if o != nil {
			p.observers = append(p.observers, o)
		}
	}
}

// WithRecorder sets the metrics recorder for stage results and adds the
// matching RecorderObserver.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Publisher) {
		if r == nil {
			return
		}
		p.recorder = r
		p.observers = append(p.observers, RecorderObserver{Recorder: r})
	}
}

// WithStages replaces the default pipeline. Used by tests.
func WithStages(defs []StageDef) Option {
	return func(p *Publisher) { p.stages = defs }
}

// New creates a Publisher for layout.
func New(layout Layout, opts ...Option) *Publisher {
	p := &Publisher{
		layout:   layout,
		recorder: metrics.NoopRecorder{},
		stages:   DefaultPipeline(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Layout returns the layout the publisher writes.
func (p *Publisher) Layout() Layout { return p.layout }

// Publish runs every stage in order. The returned report is never nil; the
// error is the StageError that aborted the run, if any.
func (p *Publisher) Publish(ctx context.Context) (*BuildReport, error) {
	obs := MultiObserver(p.observers)
	bs := newBuildState(p.layout, obs, p.recorder)

	obs.OnBuildStart(bs.Report, Names(p.stages))
	err := RunStages(ctx, bs, p.stages)

	bs.Report.Fail(err)
	bs.Report.Finish()
	bs.Report.DeriveOutcome()
	obs.OnBuildComplete(bs.Report)
	return bs.Report, err
}
