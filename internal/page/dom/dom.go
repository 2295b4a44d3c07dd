// Package dom is the capability surface page components are written against.
//
// Components never touch a live browser document directly. They receive a
// Window and work through the interfaces below, which jsdom implements over
// syscall/js and domtest implements in memory for tests.
package dom

import (
	"context"
	"net/url"
)

// Listener handles a dispatched event.
type Listener func(Event)

// EventTarget accepts listeners. The returned function removes the listener.
type EventTarget interface {
	AddEventListener(typ string, fn Listener) (remove func())
}

// Event is a dispatched DOM event.
type Event interface {
	Type() string
	// Target is the element the event was dispatched on, nil for window events.
	Target() Element
	// Key is the key name for keyboard events ("Escape", "Tab").
	Key() string
	ShiftKey() bool
	PreventDefault()
}

// Element is a DOM element.
type Element interface {
	EventTarget

	// Is reports whether both values refer to the same element.
	Is(other Element) bool
	ID() string
	TagName() string

	HasClass(name string) bool
	AddClass(name string)
	RemoveClass(name string)

	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)

	Style(prop string) string
	SetStyle(prop, value string)

	Text() string
	SetText(text string)
	InnerHTML() string
	SetInnerHTML(html string)
	Value() string
	SetValue(v string)

	Parent() Element
	AppendChild(child Element)
	InsertBefore(child, ref Element)
	Remove()
	// Contains reports whether other is this element or one of its descendants.
	Contains(other Element) bool
	// Find returns the first descendant matching m in document order.
	Find(m Matcher) Element
	FindAll(m Matcher) []Element
	// Closest returns this element or its nearest ancestor matching m.
	Closest(m Matcher) Element

	Focus()
	Select()
}

// Document is the page document.
type Document interface {
	EventTarget

	GetElementByID(id string) Element
	Find(m Matcher) Element
	FindAll(m Matcher) []Element
	CreateElement(tag string) Element
	Head() Element
	Body() Element
	ActiveElement() Element
	// ExecCommand runs a legacy editing command and reports success.
	ExecCommand(cmd string) bool
}

// Clipboard is the asynchronous clipboard capability.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Analytics receives best-effort usage events.
type Analytics interface {
	Event(name string, params map[string]string)
}

// Window is the browsing context.
type Window interface {
	EventTarget

	Document() Document
	InnerWidth() int
	Location() *url.URL
	IsSecureContext() bool
	// Clipboard is nil when the capability is unavailable.
	Clipboard() Clipboard
	// Analytics is nil when no analytics function is installed.
	Analytics() Analytics
}
