package watch

import (
	"sync"
	"time"

	"git.home.luguber.info/inful/bookbuilder/internal/publish"
)

// Status tracks the outcome of the most recent rebuilds.
type Status struct {
	mu           sync.RWMutex
	started      time.Time
	builds       int
	running      bool
	lastReport   *publish.BuildReport
	lastError    error
	lastSuccess  time.Time
	hasGoodBuild bool
}

// NewStatus creates an empty status.
func NewStatus() *Status {
	return &Status{started: time.Now()}
}

// StatusSnapshot is a consistent copy of Status for readers.
type StatusSnapshot struct {
	Started      time.Time            `json:"started"`
	Builds       int                  `json:"builds"`
	Running      bool                 `json:"running"`
	HasGoodBuild bool                 `json:"has_good_build"`
	LastSuccess  time.Time            `json:"last_success,omitzero"`
	LastReport   *publish.BuildReport `json:"last_report,omitempty"`
	LastError    error                `json:"-"`
}

func (s *Status) setRunning() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = true
}

func (s *Status) record(report *publish.BuildReport, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.builds++
	s.lastReport = report
	s.lastError = err
	if err == nil {
		s.hasGoodBuild = true
		s.lastSuccess = time.Now()
	}
}

// Snapshot returns the current status.
func (s *Status) Snapshot() StatusSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StatusSnapshot{
		Started:      s.started,
		Builds:       s.builds,
		Running:      s.running,
		HasGoodBuild: s.hasGoodBuild,
		LastSuccess:  s.lastSuccess,
		LastReport:   s.lastReport,
		LastError:    s.lastError,
	}
}
