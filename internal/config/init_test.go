package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookbuilder/internal/foundation/errors"
)

func TestInit_WritesLoadableConfig(t *testing.T) {
	p := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, Init(p, false))

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, Example().Output.Directory, cfg.Output.Directory)
	assert.Equal(t, "My Book", cfg.Book.Title)
}

func TestInit_RefusesOverwriteWithoutForce(t *testing.T) {
	p := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, os.WriteFile(p, []byte(`{"output":{"directory":"keep"}}`), 0o600))

	err := Init(p, false)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "keep")

	require.NoError(t, Init(p, true))
	data, err = os.ReadFile(p)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "keep")
}
