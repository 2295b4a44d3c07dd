// Package page assembles the in-browser behaviors of a published book page.
package page

import (
	_ "embed"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"git.home.luguber.info/inful/bookbuilder/internal/page/codecopy"
	"git.home.luguber.info/inful/bookbuilder/internal/page/dom"
	"git.home.luguber.info/inful/bookbuilder/internal/page/search"
	"git.home.luguber.info/inful/bookbuilder/internal/page/sidebar"
)

// StyleElementID identifies the injected stylesheet.
const StyleElementID = "bookpage-styles"

var (
	//go:embed styles/overlay.css
	overlayCSS string
	//go:embed styles/code-copy.css
	codeCopyCSS string
)

// Options configures Init.
type Options struct {
	Clock  clockwork.Clock
	Logger *slog.Logger
}

// Page owns the components bound to one document.
type Page struct {
	// Sidebar is nil when the document has no sidebar.
	Sidebar  *sidebar.Sidebar
	CodeCopy *codecopy.Manager
	Search   *search.Stub
}

// Init injects the page stylesheet and binds every component to win.
func Init(win dom.Window, opts Options) *Page {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	doc := win.Document()
	injectStyles(doc)

	p := &Page{}
	if profile, ok := sidebar.DetectProfile(doc); ok {
		p.Sidebar = sidebar.New(win, profile,
			sidebar.WithClock(opts.Clock), sidebar.WithLogger(opts.Logger))
	}
	p.CodeCopy = codecopy.New(win, codecopy.WithClock(opts.Clock), codecopy.WithLogger(opts.Logger))
	p.CodeCopy.Attach()
	p.Search = search.Attach(doc, opts.Logger)
	return p
}

// Detach unbinds every component.
func (p *Page) Detach() {
	if p.Sidebar != nil {
		p.Sidebar.Detach()
	}
	p.CodeCopy.Detach()
	p.Search.Detach()
}

func injectStyles(doc dom.Document) {
	if doc.GetElementByID(StyleElementID) != nil {
		return
	}
	head := doc.Head()
	if head == nil {
		return
	}
	style := doc.CreateElement("style")
	style.SetAttr("id", StyleElementID)
	style.SetText(overlayCSS + "\n" + codeCopyCSS)
	head.AppendChild(style)
}
