package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookbuilder/internal/foundation/errors"
)

func TestWatcher_RebuildsOnChange(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "chapters"), 0o755))

	fb := &fakeBuilder{}
	w := New(fb, Options{
		Roots:    []string{src, filepath.Join(root, "docs-missing")},
		Ignore:   NewIgnoreRules(root, filepath.Join(root, "out"), []string{"src/**/*.tmp"}),
		Debounce: 20 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	assert.Eventually(t, func() bool { return w.Status().Snapshot().Builds == 1 }, 2*time.Second, 10*time.Millisecond)

	// Ignored files never trigger a rebuild.
	require.NoError(t, os.WriteFile(filepath.Join(src, "chapters", "scratch.tmp"), []byte("x"), 0o600))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), fb.calls.Load())

	// A new directory is watched too.
	require.NoError(t, os.MkdirAll(filepath.Join(src, "chapters", "part2"), 0o755))
	assert.Eventually(t, func() bool { return fb.calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(src, "chapters", "part2", "index.md"), []byte("# Part 2"), 0o600))
	assert.Eventually(t, func() bool { return fb.calls.Load() >= 3 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_NoRoots(t *testing.T) {
	w := New(&fakeBuilder{}, Options{Roots: []string{filepath.Join(t.TempDir(), "nope")}})
	err := w.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}
