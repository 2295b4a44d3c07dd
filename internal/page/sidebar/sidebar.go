// Package sidebar drives the responsive navigation sidebar: open on wide
// viewports, closed on narrow ones, with toggle, dismissal, focus trap and
// active-link highlighting.
package sidebar

import (
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"git.home.luguber.info/inful/bookbuilder/internal/page/dom"
)

const (
	// MobileBreakpoint is the widest viewport treated as mobile.
	MobileBreakpoint = 768
	ResizeDebounce   = 150 * time.Millisecond
	FocusDelay       = 100 * time.Millisecond
)

// State is the observable sidebar state.
type State struct {
	IsOpen   bool
	IsMobile bool
}

// Controller is the programmatic sidebar API.
type Controller interface {
	Open()
	Close()
	Toggle()
	State() State
}

// Option configures a Sidebar.
type Option func(*Sidebar)

// WithClock sets the clock used for the resize debounce and delayed focus.
func WithClock(c clockwork.Clock) Option {
	return func(s *Sidebar) { s.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sidebar) { s.logger = l }
}

// Sidebar implements Controller over a window's document.
type Sidebar struct {
	win     dom.Window
	doc     dom.Document
	profile Profile
	clock   clockwork.Clock
	logger  *slog.Logger

	sidebar dom.Element
	overlay dom.Element
	toggle  dom.Element

	mu           sync.Mutex
	state        State
	scrollLocked bool
	resizeTimer  clockwork.Timer
	focusTimer   clockwork.Timer
	removers     []func()
}

var _ Controller = (*Sidebar)(nil)

// New binds a sidebar to win using profile. Missing elements disable the
// behaviors that need them.
func New(win dom.Window, profile Profile, opts ...Option) *Sidebar {
	doc := win.Document()
	s := &Sidebar{
		win:     win,
		doc:     doc,
		profile: profile,
		clock:   clockwork.NewRealClock(),
		logger:  slog.Default(),
		sidebar: doc.GetElementByID(profile.SidebarID),
		overlay: doc.Find(profile.Overlay),
		toggle:  doc.Find(profile.Toggle),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	s.applyViewport()
	s.mu.Unlock()
	s.bind()
	if profile.Highlight {
		s.highlightActive()
	}
	s.logger.Debug("Sidebar initialized",
		slog.String("profile", profile.Name),
		slog.Bool("mobile", s.State().IsMobile))
	return s
}

func (s *Sidebar) bind() {
	on := func(t dom.EventTarget, typ string, fn dom.Listener) {
		if t != nil {
			s.removers = append(s.removers, t.AddEventListener(typ, fn))
		}
	}

	if s.toggle != nil {
		on(s.toggle, "click", func(dom.Event) { s.Toggle() })
	}
	if s.overlay != nil {
		on(s.overlay, "click", func(dom.Event) { s.closeIfMobile() })
	}
	on(s.doc, "keydown", func(ev dom.Event) {
		if ev.Key() != "Escape" {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.state.IsMobile && s.state.IsOpen {
			s.close()
		}
	})
	on(s.doc, "click", s.handleDocumentClick)
	if s.sidebar != nil {
		on(s.sidebar, "click", func(ev dom.Event) {
			if t := ev.Target(); t != nil && t.Closest(s.profile.NavLinks) != nil {
				s.closeIfMobile()
			}
		})
		if s.profile.FocusTrap {
			on(s.sidebar, "keydown", s.trapFocus)
		}
	}
	on(s.win, "resize", func(dom.Event) { s.scheduleResize() })
}

// Detach removes every listener and stops pending timers.
func (s *Sidebar) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, remove := range s.removers {
		remove()
	}
	s.removers = nil
	stopTimer(s.resizeTimer)
	stopTimer(s.focusTimer)
}

func stopTimer(t clockwork.Timer) {
	if t != nil {
		t.Stop()
	}
}

// State returns the current state.
func (s *Sidebar) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Open opens the sidebar.
func (s *Sidebar) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open()
}

// Close closes the sidebar.
func (s *Sidebar) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.close()
}

// Toggle flips the open state.
func (s *Sidebar) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.IsOpen {
		s.close()
	} else {
		s.open()
	}
}

func (s *Sidebar) closeIfMobile() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.IsMobile {
		s.close()
	}
}

func (s *Sidebar) open() {
	s.state.IsOpen = true
	if s.sidebar != nil {
		s.sidebar.AddClass(s.profile.OpenClass)
	}
	if s.overlay != nil {
		s.overlay.AddClass(s.profile.VisibleClass)
	}
	if s.state.IsMobile {
		s.lockScroll()
		s.scheduleFocus()
	}
	s.syncToggle()
}

func (s *Sidebar) close() {
	s.state.IsOpen = false
	if s.sidebar != nil {
		s.sidebar.RemoveClass(s.profile.OpenClass)
	}
	if s.overlay != nil {
		s.overlay.RemoveClass(s.profile.VisibleClass)
	}
	s.unlockScroll()
	stopTimer(s.focusTimer)
	s.syncToggle()
}

func (s *Sidebar) lockScroll() {
	if body := s.doc.Body(); body != nil {
		body.SetStyle("overflow", "hidden")
		s.scrollLocked = true
	}
}

func (s *Sidebar) unlockScroll() {
	if !s.scrollLocked {
		return
	}
	if body := s.doc.Body(); body != nil {
		body.SetStyle("overflow", "")
	}
	s.scrollLocked = false
}

func (s *Sidebar) scheduleFocus() {
	if s.sidebar == nil {
		return
	}
	first := s.sidebar.Find(s.profile.FirstFocus)
	if first == nil {
		return
	}
	stopTimer(s.focusTimer)
	s.focusTimer = s.clock.AfterFunc(FocusDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.state.IsOpen {
			first.Focus()
		}
	})
}

// applyViewport forces the state that matches the current width: open on
// desktop, closed on mobile. It runs at load and after every settled resize,
// so a sidebar closed on desktop reopens on the next resize.
func (s *Sidebar) applyViewport() {
	mobile := s.win.InnerWidth() <= MobileBreakpoint
	s.state.IsMobile = mobile
	if mobile {
		s.close()
		return
	}
	s.state.IsOpen = true
	if s.sidebar != nil {
		s.sidebar.AddClass(s.profile.OpenClass)
	}
	if s.overlay != nil {
		s.overlay.RemoveClass(s.profile.VisibleClass)
	}
	s.unlockScroll()
	stopTimer(s.focusTimer)
	s.syncToggle()
}

func (s *Sidebar) scheduleResize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	stopTimer(s.resizeTimer)
	s.resizeTimer = s.clock.AfterFunc(ResizeDebounce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.applyViewport()
	})
}

func (s *Sidebar) syncToggle() {
	if s.toggle == nil {
		return
	}
	expanded := "false"
	if s.state.IsOpen {
		expanded = "true"
	}
	s.toggle.SetAttr("aria-expanded", expanded)
	if svg := s.toggle.Find(dom.ByTag("svg")); svg != nil {
		if s.state.IsOpen && s.state.IsMobile {
			svg.SetInnerHTML(closeIcon)
		} else {
			svg.SetInnerHTML(hamburgerIcon)
		}
	}
}

func (s *Sidebar) handleDocumentClick(ev dom.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.IsMobile || !s.state.IsOpen {
		return
	}
	target := ev.Target()
	if target == nil {
		return
	}
	inSidebar := s.sidebar != nil && s.sidebar.Contains(target)
	onToggle := s.toggle != nil && s.toggle.Contains(target)
	if !inSidebar && !onToggle {
		s.close()
	}
}

// trapFocus keeps Tab navigation inside the open sidebar.
func (s *Sidebar) trapFocus(ev dom.Event) {
	if ev.Key() != "Tab" || !s.State().IsOpen {
		return
	}
	focusable := s.sidebar.FindAll(dom.Focusable)
	if len(focusable) == 0 {
		return
	}
	first, last := focusable[0], focusable[len(focusable)-1]
	active := s.doc.ActiveElement()
	if active == nil {
		return
	}
	switch {
	case ev.ShiftKey() && active.Is(first):
		ev.PreventDefault()
		last.Focus()
	case !ev.ShiftKey() && active.Is(last):
		ev.PreventDefault()
		first.Focus()
	}
}

// highlightActive marks nav links whose path matches the current location.
// A link matches on equality, or when the current path contains it and the
// link is not the site root.
func (s *Sidebar) highlightActive() {
	loc := s.win.Location()
	current := loc.Path
	for _, link := range s.doc.FindAll(s.profile.NavLinks) {
		href, ok := link.Attr("href")
		if !ok {
			continue
		}
		ref, err := url.Parse(href)
		if err != nil {
			s.logger.Debug("Skipping nav link with invalid href", slog.String("href", href))
			continue
		}
		linkPath := loc.ResolveReference(ref).Path
		sub := link.Closest(dom.ByClass("nav-subsections"))
		if linkPath == current || (linkPath != "/" && strings.Contains(current, linkPath)) {
			link.AddClass("active")
			link.SetAttr("aria-current", "page")
			if sub != nil {
				sub.SetStyle("display", "block")
			}
			continue
		}
		link.RemoveClass("active")
		link.RemoveAttr("aria-current")
	}
}
