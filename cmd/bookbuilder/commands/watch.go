package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/bookbuilder/internal/config"
	"git.home.luguber.info/inful/bookbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/bookbuilder/internal/metrics"
	"git.home.luguber.info/inful/bookbuilder/internal/publish"
	"git.home.luguber.info/inful/bookbuilder/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output          string        `short:"o" help:"Output directory, overriding output.directory"`
	StatusAddr      string        `name:"status-addr" help:"Serve /healthz, /status and /metrics on this address (overrides watch.status_addr)"`
	RebuildInterval time.Duration `name:"rebuild-interval" help:"Also rebuild on this interval (overrides watch.rebuild_interval)"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return RunWatch(ctx, g, cfg, w)
}

// RunWatch builds once and rebuilds on changes until ctx is done.
func RunWatch(ctx context.Context, g *Global, cfg *config.Config, flags *WatchCmd) error {
	interval := cfg.Watch.RebuildIntervalDuration()
	addr := cfg.Watch.StatusAddr
	output := ""
	if flags != nil {
		if flags.RebuildInterval != 0 {
			interval = flags.RebuildInterval
		}
		if flags.StatusAddr != "" {
			addr = flags.StatusAddr
		}
		output = flags.Output
	}
	if interval < 0 || (interval > 0 && interval < time.Second) {
		return errors.ValidationError("rebuild interval must be at least 1s").
			WithContext("value", interval.String()).Build()
	}

	layout := publish.NewLayout(cfg, output)

	reg := prom.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewPrometheusRecorder(reg)

	publisher := publish.New(layout,
		publish.WithObserver(publish.LogObserver{Logger: g.logger()}),
		publish.WithRecorder(recorder))

	watcher := watch.New(publisher, watch.Options{
		Roots:      layout.WatchRoots(),
		Ignore:     watch.NewIgnoreRules(layout.Root, layout.Output, cfg.Watch.Ignore),
		Debounce:   cfg.Watch.DebounceDuration(),
		Interval:   interval,
		StatusAddr: addr,
		Registry:   reg,
		Recorder:   recorder,
	})

	fmt.Fprintf(g.out(), "Watching %s (output %s)\n", layout.Root, layout.Output)
	if addr != "" {
		fmt.Fprintf(g.out(), "Status server on %s\n", addr)
	}
	return watcher.Run(ctx)
}
