package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookbuilder/internal/foundation/errors"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, DefaultConfigFile)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_MinimalJSON(t *testing.T) {
	dir := t.TempDir()
	p := writeConfig(t, dir, `{"output": {"directory": "out"}}`)

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "out", cfg.Output.Directory)
	assert.Equal(t, dir, cfg.Source.Root)
	assert.Equal(t, p, cfg.Path())
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.DebounceDuration())
	assert.Zero(t, cfg.Watch.RebuildIntervalDuration())
	assert.Equal(t, filepath.Join(dir, "out"), ResolveOutputDir(cfg, ""))
}

func TestLoad_IgnoresUnconsumedSettings(t *testing.T) {
	dir := t.TempDir()
	p := writeConfig(t, dir, `{
  "title": "Book",
  "output": {"directory": "out", "format": "jekyll"},
  "book": {"title": "Go in Practice", "author": "Team"}
}`)

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "Go in Practice", cfg.Book.Title)
	assert.Equal(t, "Team", cfg.Book.Author)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoad_InvalidJSON(t *testing.T) {
	p := writeConfig(t, t.TempDir(), `{"output": `)
	_, err := Load(p)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoad_MissingOutputDirectory(t *testing.T) {
	p := writeConfig(t, t.TempDir(), `{"output": {}}`)
	_, err := Load(p)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestLoad_EnvExpansionFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BOOKBUILDER_TEST_OUT=from-dotenv\n"), 0o600))
	p := writeConfig(t, dir, `{"output": {"directory": "${BOOKBUILDER_TEST_OUT}"}}`)
	t.Cleanup(func() { _ = os.Unsetenv("BOOKBUILDER_TEST_OUT") })

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Output.Directory)
}

func TestLoad_ProcessEnvWinsOverDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BOOKBUILDER_TEST_OUT2=from-dotenv\n"), 0o600))
	p := writeConfig(t, dir, `{"output": {"directory": "${BOOKBUILDER_TEST_OUT2}"}}`)
	t.Setenv("BOOKBUILDER_TEST_OUT2", "from-process")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "from-process", cfg.Output.Directory)
}

func TestLoad_RelativeSourceRoot(t *testing.T) {
	dir := t.TempDir()
	p := writeConfig(t, dir, `{"output": {"directory": "out"}, "source": {"root": "book"}}`)

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "book"), cfg.Source.Root)
}

func TestValidateConfig_Watch(t *testing.T) {
	tests := []struct {
		name    string
		watch   WatchConfig
		wantErr bool
	}{
		{"defaults", WatchConfig{}, false},
		{"bad debounce", WatchConfig{Debounce: "soon"}, true},
		{"negative debounce", WatchConfig{Debounce: "-1s"}, true},
		{"interval ok", WatchConfig{RebuildInterval: "5m"}, false},
		{"interval too small", WatchConfig{RebuildInterval: "10ms"}, true},
		{"interval garbage", WatchConfig{RebuildInterval: "hourly"}, true},
		{"valid ignore glob", WatchConfig{Ignore: []string{"src/**/*.draft.md"}}, false},
		{"invalid ignore glob", WatchConfig{Ignore: []string{"src/[abc"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Output: OutputConfig{Directory: "out"}, Watch: tt.watch}
			require.NoError(t, applyDefaults(cfg))
			err := ValidateConfig(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateConfig_RejectsSourceRootAsOutput(t *testing.T) {
	cfg := &Config{Output: OutputConfig{Directory: "./"}}
	require.NoError(t, applyDefaults(cfg))
	require.Error(t, ValidateConfig(cfg))
}

func TestValidateConfig_RejectsFilesystemRootAsOutput(t *testing.T) {
	cfg := &Config{Output: OutputConfig{Directory: "/"}}
	require.NoError(t, applyDefaults(cfg))
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestParse_TabIndentedJSON(t *testing.T) {
	cfg, err := Parse([]byte("{\n\t\"output\": {\n\t\t\"directory\": \"out\"\n\t}\n}\n"))
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.Output.Directory)
}

func TestParse_YAML(t *testing.T) {
	cfg, err := Parse([]byte("output:\n  directory: site-src\nwatch:\n  ignore:\n    - '**/*.swp'\n"))
	require.NoError(t, err)
	assert.Equal(t, "site-src", cfg.Output.Directory)
	assert.Equal(t, []string{"**/*.swp"}, cfg.Watch.Ignore)
}
