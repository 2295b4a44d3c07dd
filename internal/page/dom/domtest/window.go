package domtest

import (
	"context"
	"net/url"
	"sync"

	"git.home.luguber.info/inful/bookbuilder/internal/page/dom"
)

// Window is an in-memory browsing context around a Document.
type Window struct {
	doc *Document

	mu        sync.Mutex
	width     int
	location  *url.URL
	secure    bool
	clipboard *Clipboard
	analytics *Analytics
}

// NewWindow parses src and returns a secure-context window of the given
// width at location href, with a working clipboard and no analytics.
func NewWindow(src string, width int, href string) (*Window, error) {
	doc, err := NewDocument(src)
	if err != nil {
		return nil, err
	}
	loc, err := url.Parse(href)
	if err != nil {
		return nil, err
	}
	return &Window{doc: doc, width: width, location: loc, secure: true, clipboard: &Clipboard{}}, nil
}

func (w *Window) AddEventListener(typ string, fn dom.Listener) func() {
	return w.doc.addListener(w.doc.window, typ, fn)
}

// Doc returns the concrete document so tests can drive events.
func (w *Window) Doc() *Document { return w.doc }

func (w *Window) Document() dom.Document { return w.doc }

func (w *Window) InnerWidth() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

func (w *Window) Location() *url.URL {
	w.mu.Lock()
	defer w.mu.Unlock()
	u := *w.location
	return &u
}

func (w *Window) IsSecureContext() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.secure
}

func (w *Window) Clipboard() dom.Clipboard {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.clipboard == nil {
		return nil
	}
	return w.clipboard
}

func (w *Window) Analytics() dom.Analytics {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.analytics == nil {
		return nil
	}
	return w.analytics
}

// Resize sets the viewport width and dispatches a resize event.
func (w *Window) Resize(width int) {
	w.mu.Lock()
	w.width = width
	w.mu.Unlock()
	w.doc.dispatch(nil, &Event{typ: "resize"})
}

// SetSecureContext toggles the secure-context flag.
func (w *Window) SetSecureContext(secure bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.secure = secure
}

// SetClipboard replaces the clipboard; nil removes the capability.
func (w *Window) SetClipboard(c *Clipboard) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clipboard = c
}

// SetAnalytics installs an analytics recorder; nil removes it.
func (w *Window) SetAnalytics(a *Analytics) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.analytics = a
}

// Clipboard records writes. A non-nil Err fails every write.
type Clipboard struct {
	mu     sync.Mutex
	Err    error
	writes []string
}

func (c *Clipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.writes = append(c.writes, text)
	return nil
}

// Writes returns the successfully written texts.
func (c *Clipboard) Writes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.writes...)
}

// AnalyticsEvent is one recorded analytics call.
type AnalyticsEvent struct {
	Name   string
	Params map[string]string
}

// Analytics records events. Panic makes every call panic.
type Analytics struct {
	mu     sync.Mutex
	Panic  bool
	events []AnalyticsEvent
}

func (a *Analytics) Event(name string, params map[string]string) {
	if a.Panic {
		panic("analytics unavailable")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, AnalyticsEvent{Name: name, Params: params})
}

// Events returns the recorded events.
func (a *Analytics) Events() []AnalyticsEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]AnalyticsEvent(nil), a.events...)
}
