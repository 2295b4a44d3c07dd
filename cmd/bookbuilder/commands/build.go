package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/bookbuilder/internal/config"
	"git.home.luguber.info/inful/bookbuilder/internal/logfields"
	"git.home.luguber.info/inful/bookbuilder/internal/progress"
	"git.home.luguber.info/inful/bookbuilder/internal/publish"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output   string `short:"o" help:"Output directory, overriding output.directory"`
	Progress bool   `help:"Show stage progress on stderr"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	_, err = RunBuild(context.Background(), g, cfg, b.Output, b.Progress)
	return err
}

// RunBuild publishes the book described by cfg.
func RunBuild(ctx context.Context, g *Global, cfg *config.Config, output string, showProgress bool) (*publish.BuildReport, error) {
	layout := publish.NewLayout(cfg, output)
	g.logger().Info("Starting book build",
		logfields.Source(layout.Root),
		logfields.Output(layout.Output))
	fmt.Fprintln(g.out(), "Building book...")

	opts := []publish.Option{publish.WithObserver(publish.LogObserver{Logger: g.logger()})}
	if showProgress {
		opts = append(opts, publish.WithObserver(progress.NewObserver(progress.NewReporter(nil))))
	}

	report, err := publish.New(layout, opts...).Publish(ctx)
	if err != nil {
		fmt.Fprintln(g.out(), "Build failed")
		return report, err
	}
	fmt.Fprintln(g.out(), "Build complete!")
	fmt.Fprintf(g.out(), "Published %d files to %s\n", report.FilesCopied, layout.Output)
	return report, nil
}
