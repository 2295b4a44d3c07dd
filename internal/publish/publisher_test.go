package publish

import (
	"context"
	stdErrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookbuilder/internal/foundation/errors"
)

func TestPublish_ChaptersScenario(t *testing.T) {
	layout := newFixture(t, map[string]string{
		"src/chapters/ch1.md": "Chapter 1",
	})

	report, err := New(layout).Publish(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, report.Outcome)

	got := snapshot(t, layout.Output)
	assert.Equal(t, "Hello", got["index.md"])
	assert.Equal(t, "Chapter 1", got["chapters/ch1.md"])
	assert.Equal(t, "title: Test\n", got["_config.yml"])
	assert.Contains(t, got, ".nojekyll")
	assert.Contains(t, got, "Gemfile")
	assert.Equal(t, "- title: Home\n", got["_data/nav.yml"])
	assert.Equal(t, "<dir>", got["introduction"])
	assert.Equal(t, "<dir>", got["appendices"])
	assert.Equal(t, 1, report.CategoryPages["chapters"])
	assert.NotEmpty(t, report.ID)
}

func TestPublish_Idempotent(t *testing.T) {
	layout := newFixture(t, map[string]string{
		"docs/assets/css/site.css":    "body{}",
		"docs/_layouts/default.html":  "{{ content }}",
		"src/introduction/intro.md":   "# Intro",
		"src/chapters/ch1.md":         "Chapter 1",
		"src/chapters/part2/index.md": "Part 2",
		"src/appendices/a.md":         "A",
	})
	p := New(layout)

	_, err := p.Publish(context.Background())
	require.NoError(t, err)
	first := snapshot(t, layout.Output)

	_, err = p.Publish(context.Background())
	require.NoError(t, err)
	second := snapshot(t, layout.Output)

	assert.Equal(t, first, second)
}

func TestPublish_ClearsStaleOutput(t *testing.T) {
	layout := newFixture(t, nil)
	writeTree(t, layout.Output, map[string]string{
		"stale.md":        "old",
		"chapters/old.md": "old",
	})

	_, err := New(layout).Publish(context.Background())
	require.NoError(t, err)

	got := snapshot(t, layout.Output)
	assert.NotContains(t, got, "stale.md")
	assert.NotContains(t, got, "chapters/old.md")
}

func TestPublish_SubdirectoryWithoutIndex(t *testing.T) {
	layout := newFixture(t, map[string]string{
		"src/chapters/x/notes.md":        "ignored",
		"src/chapters/x/deeper/index.md": "ignored too",
	})

	_, err := New(layout).Publish(context.Background())
	require.NoError(t, err)

	got := snapshot(t, layout.Output)
	assert.Equal(t, "<dir>", got["chapters/x"])
	for p := range got {
		assert.NotContains(t, p, "chapters/x/", "subdirectory must stay empty")
	}
}

func TestPublish_SubdirectoryIndexOnly(t *testing.T) {
	layout := newFixture(t, map[string]string{
		"src/appendices/glossary/index.md": "Glossary",
		"src/appendices/glossary/terms.md": "not published",
		"src/appendices/image.png":         "png",
	})

	report, err := New(layout).Publish(context.Background())
	require.NoError(t, err)

	got := snapshot(t, layout.Output)
	assert.Equal(t, "Glossary", got["appendices/glossary/index.md"])
	assert.NotContains(t, got, "appendices/glossary/terms.md")
	assert.NotContains(t, got, "appendices/image.png")
	assert.Equal(t, 1, report.IgnoredFiles)
}

func TestPublish_MissingOptionalAssetsSkipped(t *testing.T) {
	layout := newFixture(t, map[string]string{
		"docs/_includes/head.html": "<meta>",
	})

	report, err := New(layout).Publish(context.Background())
	require.NoError(t, err)

	got := snapshot(t, layout.Output)
	assert.NotContains(t, got, "assets")
	assert.NotContains(t, got, "_layouts")
	assert.Equal(t, "<meta>", got["_includes/head.html"])
	assert.ElementsMatch(t, []string{SrcAssets, SrcLayouts}, report.SkippedOptional)
}

func TestPublish_MissingRequiredFileFails(t *testing.T) {
	for _, rel := range []string{SrcGeneratorConf, SrcGemfile, SrcNoJekyll, SrcIndex} {
		t.Run(rel, func(t *testing.T) {
			layout := newFixture(t, nil)
			require.NoError(t, os.Remove(layout.Source(rel)))

			report, err := New(layout).Publish(context.Background())
			require.Error(t, err)

			var se *StageError
			require.True(t, stdErrors.As(err, &se))
			assert.Equal(t, StageErrorFatal, se.Kind)
			assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
			assert.Equal(t, OutcomeFailed, report.Outcome)
			assert.Equal(t, StageResultFatal, report.StageResults[se.Stage])
			assert.NotContains(t, report.StageResults, StageCopyNavigation, "later stages must not run")
		})
	}
}

func TestPublish_MissingCategoryFails(t *testing.T) {
	layout := newFixture(t, nil)
	require.NoError(t, os.Remove(layout.Source("src/appendices")))

	_, err := New(layout).Publish(context.Background())
	require.Error(t, err)

	var se *StageError
	require.True(t, stdErrors.As(err, &se))
	assert.Equal(t, StageCopyContent, se.Stage)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestPublish_MissingNavigationFails(t *testing.T) {
	layout := newFixture(t, nil)
	require.NoError(t, os.RemoveAll(layout.Source(SrcNavigation)))

	_, err := New(layout).Publish(context.Background())
	var se *StageError
	require.True(t, stdErrors.As(err, &se))
	assert.Equal(t, StageCopyNavigation, se.Stage)
}

func TestPublish_OutputInsideSourceRejected(t *testing.T) {
	layout := newFixture(t, nil)
	layout.Output = layout.Source("src")

	_, err := New(layout).Publish(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	_, statErr := os.Stat(layout.Source(SrcIndex))
	assert.NoError(t, statErr, "sources must survive")
}

func TestCheckOutputSafe(t *testing.T) {
	root := t.TempDir()
	fsRoot := filepath.VolumeName(root) + string(filepath.Separator)

	tests := []struct {
		name   string
		output string
		ok     bool
	}{
		{"filesystem root", fsRoot, false},
		{"source root", root, false},
		{"parent of source root", filepath.Dir(root), false},
		{"inside src", filepath.Join(root, "src", "out"), false},
		{"docs itself", filepath.Join(root, "docs"), false},
		{"sibling of src", filepath.Join(root, "_site_src"), true},
		{"name prefix of src", filepath.Join(root, "srcout"), true},
		{"elsewhere", filepath.Join(t.TempDir(), "site"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkOutputSafe(Layout{Root: root, Output: tt.output})
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
		})
	}
}

func TestPublish_CanceledBeforeStart(t *testing.T) {
	layout := newFixture(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := New(layout).Publish(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, OutcomeCanceled, report.Outcome)

	_, statErr := os.Stat(layout.Output)
	assert.True(t, os.IsNotExist(statErr), "nothing may be written after cancellation")
}

func TestPublish_CanceledBetweenStages(t *testing.T) {
	layout := newFixture(t, nil)
	ctx, cancel := context.WithCancel(context.Background())

	stages := NewPipeline().
		Add(StagePrepareOutput, stagePrepareOutput).
		Add(StageCopyIndex, func(ctx context.Context, bs *BuildState) error {
			cancel()
			return stageCopyIndex(ctx, bs)
		}).
		Add(StageCopyNavigation, stageCopyNavigation).
		Build()

	report, err := New(layout, WithStages(stages)).Publish(ctx)
	require.Error(t, err)

	var se *StageError
	require.True(t, stdErrors.As(err, &se))
	assert.Equal(t, StageErrorCanceled, se.Kind)
	assert.Equal(t, StageCopyNavigation, se.Stage)
	assert.Equal(t, OutcomeCanceled, report.Outcome)
	assert.Equal(t, StageResultSuccess, report.StageResults[StageCopyIndex])
}

func TestPublish_PreservesModes(t *testing.T) {
	layout := newFixture(t, map[string]string{"docs/assets/run.sh": "#!/bin/sh\n"})
	require.NoError(t, os.Chmod(layout.Source("docs/assets/run.sh"), 0o755))

	_, err := New(layout).Publish(context.Background())
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(layout.Output, "assets", "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

type recordingObserver struct {
	NoopObserver
	started   []StageName
	completed map[StageName]StageResult
	final     *BuildReport
	planned   []StageName
}

func (r *recordingObserver) OnBuildStart(_ *BuildReport, stages []StageName) { r.planned = stages }
func (r *recordingObserver) OnStageStart(s StageName)                        { r.started = append(r.started, s) }
func (r *recordingObserver) OnStageComplete(s StageName, _ time.Duration, res StageResult) {
	if r.completed == nil {
		r.completed = map[StageName]StageResult{}
	}
	r.completed[s] = res
}
func (r *recordingObserver) OnBuildComplete(rep *BuildReport) { r.final = rep }

func TestPublish_ObserverSeesAllStages(t *testing.T) {
	layout := newFixture(t, nil)
	obs := &recordingObserver{}

	report, err := New(layout, WithObserver(obs)).Publish(context.Background())
	require.NoError(t, err)

	want := Names(DefaultPipeline())
	assert.Equal(t, want, obs.planned)
	assert.Equal(t, want, obs.started)
	for _, s := range want {
		assert.Equal(t, StageResultSuccess, obs.completed[s])
	}
	assert.Same(t, report, obs.final)
}
