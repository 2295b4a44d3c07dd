package domtest

import (
	"sync/atomic"

	"git.home.luguber.info/inful/bookbuilder/internal/page/dom"
)

// Event is a synthetic event.
type Event struct {
	typ       string
	target    dom.Element
	key       string
	shift     bool
	prevented atomic.Bool
}

func (e *Event) Type() string        { return e.typ }
func (e *Event) Target() dom.Element { return e.target }
func (e *Event) Key() string         { return e.key }
func (e *Event) ShiftKey() bool      { return e.shift }
func (e *Event) PreventDefault()     { e.prevented.Store(true) }

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool { return e.prevented.Load() }
