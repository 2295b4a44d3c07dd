package commands

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/bookbuilder/internal/config"
)

// LogLevelEnv overrides the log level chosen by -v.
const LogLevelEnv = "BOOKBUILDER_LOG_LEVEL"

// Global is shared state passed to every command.
type Global struct {
	Logger *slog.Logger
	// Out receives user-facing messages.
	Out io.Writer
}

// NewGlobal returns the Global used by the binary.
func NewGlobal() *Global {
	return &Global{Logger: slog.Default(), Out: os.Stdout}
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"book-config.json" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Publish the book into the output directory"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
	Discover DiscoverCmd `cmd:"" help:"Show what a build would publish without writing anything"`
	Watch    WatchCmd    `cmd:"" help:"Rebuild the book whenever sources change"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	return nil
}

// parseLogLevel picks debug for -v, then lets BOOKBUILDER_LOG_LEVEL override.
func parseLogLevel(verbose bool) slog.Level {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv(LogLevelEnv))) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return level
}

func loadConfig(root *CLI) (*config.Config, error) {
	return config.Load(root.Config)
}
