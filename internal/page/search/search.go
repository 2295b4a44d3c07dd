// Package search wires the search box. Queries are only logged; there is no
// index yet.
package search

import (
	"log/slog"

	"git.home.luguber.info/inful/bookbuilder/internal/page/dom"
)

// InputID is the id of the search input element.
const InputID = "search-input"

// Stub listens to the search input.
type Stub struct {
	remove func()
}

// Attach listens for input events on the search box. It is a no-op when the
// page has no search box.
func Attach(doc dom.Document, logger *slog.Logger) *Stub {
	if logger == nil {
		logger = slog.Default()
	}
	input := doc.GetElementByID(InputID)
	if input == nil {
		return &Stub{}
	}
	remove := input.AddEventListener("input", func(ev dom.Event) {
		if t := ev.Target(); t != nil {
			logger.Info("Search", slog.String("query", t.Value()))
		}
	})
	return &Stub{remove: remove}
}

// Active reports whether the stub is bound to a search box.
func (s *Stub) Active() bool { return s.remove != nil }

// Detach stops listening.
func (s *Stub) Detach() {
	if s.remove != nil {
		s.remove()
		s.remove = nil
	}
}
