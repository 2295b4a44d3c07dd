package errors

import (
	stdErrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		builder  *ErrorBuilder
		category ErrorCategory
		severity ErrorSeverity
		retry    RetryStrategy
	}{
		{"config", ConfigError("x"), CategoryConfig, SeverityFatal, RetryUserAction},
		{"validation", ValidationError("x"), CategoryValidation, SeverityFatal, RetryUserAction},
		{"not found", NotFoundError("x"), CategoryNotFound, SeverityFatal, RetryUserAction},
		{"filesystem", FileSystemError("x"), CategoryFileSystem, SeverityFatal, RetryNever},
		{"clipboard", ClipboardError("x"), CategoryClipboard, SeverityWarning, RetryNever},
		{"runtime", RuntimeError("x"), CategoryRuntime, SeverityFatal, RetryNever},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.builder.Build()
			assert.Equal(t, tt.category, err.Category())
			assert.Equal(t, tt.severity, err.Severity())
			assert.Equal(t, tt.retry, err.RetryStrategy())
			assert.Equal(t, "x", err.Message())
			assert.NoError(t, err.Cause())
		})
	}
}

func TestWrapError(t *testing.T) {
	err := WrapError(fs.ErrPermission, CategoryFileSystem, "copy failed").
		WithContext("source", "docs/assets").
		WithContext("target", "out/assets").
		Build()

	assert.Equal(t, SeverityError, err.Severity())
	assert.Equal(t, RetryNever, err.RetryStrategy())
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Equal(t, "[filesystem:error] copy failed: permission denied", err.Error())

	v, ok := err.Context().Get("source")
	require.True(t, ok)
	assert.Equal(t, "docs/assets", v)
	assert.Len(t, err.Context(), 2)
}

func TestWithRetry(t *testing.T) {
	err := RuntimeError("listen failed").WithRetry(RetryBackoff).Build()
	assert.Equal(t, RetryBackoff, err.RetryStrategy())
	assert.True(t, err.retryable())
	assert.False(t, ValidationError("bad").Build().retryable())
}

func TestErrorWithoutCause(t *testing.T) {
	err := ValidationError("output directory must not contain the source root").Build()
	assert.Equal(t, "[validation:fatal] output directory must not contain the source root", err.Error())
	assert.Nil(t, err.Unwrap())
	assert.Empty(t, err.Context())
}

func TestBuildCopiesState(t *testing.T) {
	b := NotFoundError("missing")
	first := b.Build()
	second := b.Build()
	assert.NotSame(t, first, second)
	assert.Equal(t, first.Message(), second.Message())
}

func TestAsClassifiedThroughWrapping(t *testing.T) {
	inner := NotFoundError("required path missing").WithContext("path", "src/index.md").Build()
	wrapped := fmt.Errorf("stage copy_index: %w", inner)

	c, ok := AsClassified(wrapped)
	require.True(t, ok)
	assert.Same(t, inner, c)
	assert.True(t, HasCategory(wrapped, CategoryNotFound))
	assert.False(t, HasCategory(wrapped, CategoryValidation))
}

func TestAsClassifiedPlainError(t *testing.T) {
	plain := stdErrors.New("boom")
	_, ok := AsClassified(plain)
	assert.False(t, ok)
	assert.False(t, HasCategory(plain, CategoryInternal))
	assert.False(t, HasCategory(nil, CategoryInternal))
}

func TestErrorContext(t *testing.T) {
	var ctx ErrorContext
	ctx = ctx.Set("stage", "copy_index").Set("files", 3)

	v, ok := ctx.Get("files")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = ctx.Get("missing")
	assert.False(t, ok)

	var empty ErrorContext
	_, ok = empty.Get("stage")
	assert.False(t, ok)
}
