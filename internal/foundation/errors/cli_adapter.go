package errors

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// Exit codes returned by the bookbuilder binary.
const (
	ExitOK       = 0
	ExitGeneral  = 1
	ExitUsage    = 2
	ExitConfig   = 7
	ExitInternal = 10
	ExitPublish  = 11
	ExitRuntime  = 12
)

var exitCodes = map[ErrorCategory]int{
	CategoryValidation: ExitUsage,
	CategoryConfig:     ExitConfig,
	CategoryNotFound:   ExitPublish,
	CategoryFileSystem: ExitPublish,
	CategoryRuntime:    ExitRuntime,
	CategoryClipboard:  ExitRuntime,
	CategoryInternal:   ExitInternal,
}

// CLIErrorAdapter turns errors returned by commands into a stderr line, a log
// record and an exit code.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger}
}

func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}
	c, ok := AsClassified(err)
	if !ok {
		return ExitGeneral
	}
	if code, known := exitCodes[c.category]; known {
		return code
	}
	return ExitGeneral
}

// FormatError renders err for stderr. Verbose mode prints the whole chain;
// otherwise only the classified message and its direct cause are shown.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	c, ok := AsClassified(err)
	switch {
	case !ok:
		return "Error: " + err.Error()
	case a.verbose:
		return err.Error()
	case c.category == CategoryInternal:
		return "Internal error occurred (use -v for details)"
	case c.cause != nil:
		return fmt.Sprintf("Error: %s: %v", c.message, c.cause)
	default:
		return "Error: " + c.message
	}
}

// HandleError reports err and exits. It returns only when err is nil.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	c, classified := AsClassified(err)
	if a.verbose || !classified || c.severity == SeverityFatal {
		a.log(err, c)
	}
	fmt.Fprintln(os.Stderr, a.FormatError(err))
	os.Exit(a.ExitCodeFor(err))
}

func (a *CLIErrorAdapter) log(err error, c *ClassifiedError) {
	if c == nil {
		a.logger.Error("Unclassified error", "error", err)
		return
	}
	attrs := make([]slog.Attr, 0, len(c.context)+2)
	attrs = append(attrs, slog.String("category", string(c.category)))
	for k, v := range c.context {
		attrs = append(attrs, slog.Any(k, v))
	}
	if c.cause != nil {
		attrs = append(attrs, slog.String("cause", c.cause.Error()))
	}
	a.logger.LogAttrs(context.Background(), levelFor(c.severity), c.message, attrs...)
}

func levelFor(severity ErrorSeverity) slog.Level {
	if severity == SeverityWarning {
		return slog.LevelWarn
	}
	return slog.LevelError
}
