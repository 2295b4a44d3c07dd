// Package codecopy adds copy-to-clipboard buttons and language labels to code
// blocks.
package codecopy

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"git.home.luguber.info/inful/bookbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/bookbuilder/internal/logfields"
	"git.home.luguber.info/inful/bookbuilder/internal/page/dom"
)

// FeedbackDuration is how long the success or failure state stays visible.
const FeedbackDuration = 2 * time.Second

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the clock for feedback timers.
func WithClock(c clockwork.Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithSpawn sets how click handlers start a copy. The default runs it on a
// new goroutine because clipboard writes block.
func WithSpawn(spawn func(func())) Option {
	return func(m *Manager) { m.spawn = spawn }
}

// Manager owns the copy buttons of one document.
type Manager struct {
	win    dom.Window
	doc    dom.Document
	clock  clockwork.Clock
	logger *slog.Logger
	spawn  func(func())

	mu      sync.Mutex
	next    int
	timers  map[string]clockwork.Timer
	removed func()
}

// New returns a manager listening for copy clicks on win's document.
// Call Attach to add buttons.
func New(win dom.Window, opts ...Option) *Manager {
	m := &Manager{
		win:    win,
		doc:    win.Document(),
		clock:  clockwork.NewRealClock(),
		logger: slog.Default(),
		spawn:  func(f func()) { go f() },
		timers: make(map[string]clockwork.Timer),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.removed = m.doc.AddEventListener("click", m.handleClick)
	return m
}

// Detach stops listening and cancels pending feedback timers.
func (m *Manager) Detach() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.removed != nil {
		m.removed()
		m.removed = nil
	}
	for k, t := range m.timers {
		t.Stop()
		delete(m.timers, k)
	}
}

// Attach decorates every code block that has no button yet and returns the
// number of blocks decorated.
func (m *Manager) Attach() int {
	added := 0
	for _, code := range m.doc.FindAll(dom.CodeBlock) {
		pre := code.Parent()
		if pre == nil || pre.Find(dom.ByClass(buttonClass)) != nil {
			continue
		}
		m.wrap(pre)
		pre.SetStyle("position", "relative")
		pre.AppendChild(m.newButton())
		if class, ok := code.Attr("class"); ok {
			if lang, ok := languageOf(class); ok {
				label := m.doc.CreateElement("div")
				label.AddClass(labelClass)
				label.SetText(LanguageDisplayName(lang))
				pre.AppendChild(label)
			}
		}
		added++
	}
	if added > 0 {
		m.logger.Debug("Code copy buttons attached", slog.Int("count", added))
	}
	return added
}

func (m *Manager) wrap(pre dom.Element) {
	parent := pre.Parent()
	if parent == nil || parent.HasClass(wrapperClass) {
		return
	}
	wrapper := m.doc.CreateElement("div")
	wrapper.AddClass(wrapperClass)
	parent.InsertBefore(wrapper, pre)
	wrapper.AppendChild(pre)
}

func (m *Manager) newButton() dom.Element {
	m.mu.Lock()
	idx := m.next
	m.next++
	m.mu.Unlock()

	b := m.doc.CreateElement("button")
	b.AddClass(buttonClass)
	b.SetAttr("aria-label", buttonLabel)
	b.SetAttr("data-code-index", strconv.Itoa(idx))
	b.SetInnerHTML(buttonHTML)
	return b
}

func (m *Manager) handleClick(ev dom.Event) {
	target := ev.Target()
	if target == nil {
		return
	}
	button := target.Closest(dom.ByClass(buttonClass))
	if button == nil {
		return
	}
	ev.PreventDefault()
	m.spawn(func() { _ = m.Copy(context.Background(), button) })
}

// Copy copies the code block owning button and renders the outcome on the
// button. The returned error is the classified clipboard failure, if any.
func (m *Manager) Copy(ctx context.Context, button dom.Element) error {
	pre := button.Closest(dom.ByTag("pre"))
	if pre == nil {
		return nil
	}
	code := pre.Find(dom.ByTag("code"))
	if code == nil {
		return nil
	}
	text := CleanText(code.InnerHTML())

	if err := m.write(ctx, text); err != nil {
		cerr := errors.WrapError(err, errors.CategoryClipboard, "failed to copy code").
			WithContext("chars", len(text)).Build()
		m.logger.Error("Copy failed", logfields.Error(cerr))
		m.showFeedback(button, false)
		return cerr
	}
	m.showFeedback(button, true)
	m.track()
	return nil
}

func (m *Manager) write(ctx context.Context, text string) error {
	if clip := m.win.Clipboard(); clip != nil && m.win.IsSecureContext() {
		return clip.WriteText(ctx, text)
	}
	return m.fallbackCopy(text)
}

// fallbackCopy selects text in an off-screen textarea and runs the legacy
// copy command.
func (m *Manager) fallbackCopy(text string) error {
	body := m.doc.Body()
	if body == nil {
		return errors.ClipboardError("no document body for fallback copy").Build()
	}
	ta := m.doc.CreateElement("textarea")
	ta.SetValue(text)
	ta.SetStyle("position", "fixed")
	ta.SetStyle("left", "-999999px")
	ta.SetStyle("top", "-999999px")
	body.AppendChild(ta)
	defer ta.Remove()
	ta.Focus()
	ta.Select()
	if !m.doc.ExecCommand("copy") {
		return errors.ClipboardError("copy command was rejected").Build()
	}
	return nil
}

// showFeedback renders the success or failure state and schedules the return
// to idle. A newer state replaces a pending reset instead of stacking.
func (m *Manager) showFeedback(button dom.Element, ok bool) {
	key, _ := button.Attr("data-code-index")

	m.mu.Lock()
	defer m.mu.Unlock()
	if t, found := m.timers[key]; found {
		t.Stop()
	}
	setIdle(button)
	if ok {
		setIcons(button, "none", "block")
		setLabel(button, successText)
		button.AddClass(successClass)
	} else {
		setLabel(button, errorText)
		button.AddClass(errorClass)
	}
	var t clockwork.Timer
	t = m.clock.AfterFunc(FeedbackDuration, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.timers[key] != t {
			return
		}
		delete(m.timers, key)
		setIdle(button)
	})
	m.timers[key] = t
}

func setIdle(button dom.Element) {
	setIcons(button, "block", "none")
	setLabel(button, idleText)
	button.RemoveClass(successClass)
	button.RemoveClass(errorClass)
}

func setIcons(button dom.Element, copyDisplay, checkDisplay string) {
	if icon := button.Find(dom.ByClass("copy-icon")); icon != nil {
		icon.SetStyle("display", copyDisplay)
	}
	if icon := button.Find(dom.ByClass("check-icon")); icon != nil {
		icon.SetStyle("display", checkDisplay)
	}
}

func setLabel(button dom.Element, text string) {
	if span := button.Find(dom.ByClass("copy-text")); span != nil {
		span.SetText(text)
	}
}

// track reports the copy to analytics. Analytics failures never reach the
// caller.
func (m *Manager) track() {
	a := m.win.Analytics()
	if a == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			m.logger.Debug("Analytics event dropped", slog.Any("panic", r))
		}
	}()
	a.Event("code_copy", map[string]string{
		"event_category": "engagement",
		"event_label":    "code_block",
	})
}
