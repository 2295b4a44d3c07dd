package errors

// ErrorBuilder assembles a ClassifiedError.
type ErrorBuilder struct {
	err ClassifiedError
}

func newBuilder(category ErrorCategory, severity ErrorSeverity, retry RetryStrategy, message string) *ErrorBuilder {
	return &ErrorBuilder{err: ClassifiedError{
		category: category,
		severity: severity,
		retry:    retry,
		message:  message,
	}}
}

// WrapError classifies err under category. Wrapped errors fail the current
// operation and are not retried unless WithRetry says otherwise.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	b := newBuilder(category, SeverityError, RetryNever, message)
	b.err.cause = err
	return b
}

func (b *ErrorBuilder) WithRetry(strategy RetryStrategy) *ErrorBuilder {
	b.err.retry = strategy
	return b
}

func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.err.context = b.err.context.Set(key, value)
	return b
}

// Build returns the error. The builder must not be reused afterwards.
func (b *ErrorBuilder) Build() *ClassifiedError {
	e := b.err
	return &e
}

// ConfigError reports an unusable configuration file or flag.
func ConfigError(message string) *ErrorBuilder {
	return newBuilder(CategoryConfig, SeverityFatal, RetryUserAction, message)
}

// ValidationError reports input that parsed but is not acceptable.
func ValidationError(message string) *ErrorBuilder {
	return newBuilder(CategoryValidation, SeverityFatal, RetryUserAction, message)
}

// NotFoundError reports a required path or page element that is missing.
func NotFoundError(message string) *ErrorBuilder {
	return newBuilder(CategoryNotFound, SeverityFatal, RetryUserAction, message)
}

func FileSystemError(message string) *ErrorBuilder {
	return newBuilder(CategoryFileSystem, SeverityFatal, RetryNever, message)
}

// ClipboardError is a warning: the page falls back to another copy path.
func ClipboardError(message string) *ErrorBuilder {
	return newBuilder(CategoryClipboard, SeverityWarning, RetryNever, message)
}

func RuntimeError(message string) *ErrorBuilder {
	return newBuilder(CategoryRuntime, SeverityFatal, RetryNever, message)
}
