package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// SourceDefaultApplier cleans the source root.
type SourceDefaultApplier struct{}

func (s *SourceDefaultApplier) Domain() string { return "source" }

func (s *SourceDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Source.Root == "" {
		cfg.Source.Root = "."
	}
	cfg.Source.Root = filepath.Clean(cfg.Source.Root)
	return nil
}

// OutputDefaultApplier trims the output paths. An empty directory is left
// empty so validation can reject it.
type OutputDefaultApplier struct{}

func (o *OutputDefaultApplier) Domain() string { return "output" }

func (o *OutputDefaultApplier) ApplyDefaults(cfg *Config) error {
	cfg.Output.Directory = strings.TrimSpace(cfg.Output.Directory)
	if cfg.Output.Directory != "" {
		cfg.Output.Directory = filepath.Clean(cfg.Output.Directory)
	}
	if b := strings.TrimSpace(cfg.Output.BaseDirectory); b != "" {
		cfg.Output.BaseDirectory = filepath.Clean(b)
	}
	return nil
}

// WatchDefaultApplier handles watch mode defaults.
type WatchDefaultApplier struct{}

func (w *WatchDefaultApplier) Domain() string { return "watch" }

func (w *WatchDefaultApplier) ApplyDefaults(cfg *Config) error {
	if strings.TrimSpace(cfg.Watch.Debounce) == "" {
		cfg.Watch.Debounce = defaultDebounce
	}
	return nil
}

// CompositeDefaultApplier applies defaults across all configuration domains.
type CompositeDefaultApplier struct {
	appliers []DefaultApplier
}

// NewDefaultApplier creates a composite default applier with all domain appliers.
func NewDefaultApplier() *CompositeDefaultApplier {
	return &CompositeDefaultApplier{
		appliers: []DefaultApplier{
			&SourceDefaultApplier{},
			&OutputDefaultApplier{},
			&WatchDefaultApplier{},
		},
	}
}

// ApplyDefaults applies defaults for all configuration domains.
func (c *CompositeDefaultApplier) ApplyDefaults(cfg *Config) error {
	for _, applier := range c.appliers {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("applying defaults for %s: %w", applier.Domain(), err)
		}
	}
	return nil
}

func applyDefaults(cfg *Config) error {
	return NewDefaultApplier().ApplyDefaults(cfg)
}
