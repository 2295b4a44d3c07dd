package config

import "time"

const (
	defaultDebounce = "300ms"
)

// WatchConfig configures `bookbuilder watch`.
type WatchConfig struct {
	// Debounce is the quiet window after the last file event before a rebuild.
	Debounce string `yaml:"debounce,omitempty" json:"debounce,omitempty"`
	// RebuildInterval triggers a periodic rebuild when non-zero.
	RebuildInterval string `yaml:"rebuild_interval,omitempty" json:"rebuild_interval,omitempty"`
	// Ignore holds doublestar globs, relative to the source root, whose events are dropped.
	Ignore []string `yaml:"ignore,omitempty" json:"ignore,omitempty"`
	// StatusAddr enables the status server (/healthz, /status, /metrics) when set.
	StatusAddr string `yaml:"status_addr,omitempty" json:"status_addr,omitempty"`
}

// DebounceDuration returns the parsed debounce window. Validation guarantees it parses.
func (w WatchConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(w.Debounce)
	if err != nil {
		return 300 * time.Millisecond
	}
	return d
}

// RebuildIntervalDuration returns the periodic rebuild interval, or 0 when disabled.
func (w WatchConfig) RebuildIntervalDuration() time.Duration {
	if w.RebuildInterval == "" {
		return 0
	}
	d, err := time.ParseDuration(w.RebuildInterval)
	if err != nil {
		return 0
	}
	return d
}
