package publish

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookbuilder/internal/metrics"
)

type countingRecorder struct {
	metrics.NoopRecorder
	results  map[string]metrics.ResultLabel
	outcome  metrics.BuildOutcomeLabel
	files    map[string]int
	stageObs int
}

func (c *countingRecorder) IncStageResult(stage string, r metrics.ResultLabel) {
	c.results[stage] = r
}
func (c *countingRecorder) IncBuildOutcome(o metrics.BuildOutcomeLabel) { c.outcome = o }
func (c *countingRecorder) AddFilesCopied(stage string, n int)          { c.files[stage] += n }
func (c *countingRecorder) ObserveStageDuration(string, time.Duration)  { c.stageObs++ }

func TestPublish_RecordsMetrics(t *testing.T) {
	layout := newFixture(t, map[string]string{
		"src/chapters/ch1.md": "1",
		"src/chapters/ch2.md": "2",
	})
	rec := &countingRecorder{results: map[string]metrics.ResultLabel{}, files: map[string]int{}}

	_, err := New(layout, WithRecorder(rec)).Publish(context.Background())
	require.NoError(t, err)

	assert.Equal(t, metrics.BuildOutcomeSuccess, rec.outcome)
	assert.Equal(t, 2, rec.files[string(StageCopyContent)])
	assert.Equal(t, 3, rec.files[string(StageCopyGeneratorConfig)])
	assert.Equal(t, 1, rec.files[string(StageCopyIndex)])
	assert.Equal(t, metrics.ResultSuccess, rec.results[string(StageCopyNavigation)])
	assert.Equal(t, len(DefaultPipeline()), rec.stageObs)
}
