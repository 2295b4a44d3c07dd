// Package errors classifies failures so the CLI can pick an exit code and
// the status server can pick an HTTP status.
//
//	err := errors.WrapError(ioErr, errors.CategoryFileSystem, "copy failed").
//		WithContext("source", src).
//		Build()
//
// Callers test the class with HasCategory, which looks through fmt.Errorf
// wrapping.
package errors
