// Package domtest is an in-memory implementation of the dom interfaces,
// backed by golang.org/x/net/html. It dispatches events with bubbling from
// the target through its ancestors to the document and then the window.
package domtest

import (
	"bytes"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/bookbuilder/internal/page/dom"
)

type entry struct {
	fn      dom.Listener
	removed bool
}

// Document is a parsed HTML document. All methods are safe for concurrent use.
type Document struct {
	mu        sync.Mutex
	root      *html.Node
	window    *html.Node // listener key for the owning window
	listeners map[*html.Node]map[string][]*entry
	active    *html.Node
	selection string
	execOK    bool
	copied    []string
}

// NewDocument parses src into a document.
func NewDocument(src string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	return &Document{
		root:      root,
		window:    &html.Node{},
		listeners: make(map[*html.Node]map[string][]*entry),
		execOK:    true,
	}, nil
}

func (d *Document) wrap(n *html.Node) dom.Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	return &element{doc: d, n: n}
}

func (d *Document) addListener(key *html.Node, typ string, fn dom.Listener) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	e := &entry{fn: fn}
	byType := d.listeners[key]
	if byType == nil {
		byType = make(map[string][]*entry)
		d.listeners[key] = byType
	}
	byType[typ] = append(byType[typ], e)
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		e.removed = true
	}
}

// ListenerCount returns the number of live listeners of typ on the document.
func (d *Document) ListenerCount(typ string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, e := range d.listeners[d.root][typ] {
		if !e.removed {
			n++
		}
	}
	return n
}

// AddEventListener registers fn on the document.
func (d *Document) AddEventListener(typ string, fn dom.Listener) func() {
	return d.addListener(d.root, typ, fn)
}

// dispatch delivers ev along the bubbling path. Listeners run without the
// document lock held so they can use the DOM freely.
func (d *Document) dispatch(target *html.Node, ev *Event) {
	d.mu.Lock()
	var path []*html.Node
	for n := target; n != nil; n = n.Parent {
		path = append(path, n)
	}
	path = append(path, d.window)
	var fns []dom.Listener
	for _, n := range path {
		for _, e := range d.listeners[n][ev.typ] {
			if !e.removed {
				fns = append(fns, e.fn)
			}
		}
	}
	d.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// GetElementByID returns the first element with id, or nil.
func (d *Document) GetElementByID(id string) dom.Element {
	return d.Find(dom.ByID(id))
}

// Find returns the first element in the document matching m.
func (d *Document) Find(m dom.Matcher) dom.Element {
	for _, n := range d.descendants(d.root) {
		if e := d.wrap(n); m(e) {
			return e
		}
	}
	return nil
}

// FindAll returns every element in the document matching m.
func (d *Document) FindAll(m dom.Matcher) []dom.Element {
	var out []dom.Element
	for _, n := range d.descendants(d.root) {
		if e := d.wrap(n); m(e) {
			out = append(out, e)
		}
	}
	return out
}

func (d *Document) descendants(from *html.Node) []*html.Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(from)
	return out
}

// CreateElement returns a new detached element.
func (d *Document) CreateElement(tag string) dom.Element {
	tag = strings.ToLower(tag)
	return d.wrap(&html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))})
}

// Head returns the head element.
func (d *Document) Head() dom.Element { return d.Find(dom.ByTag("head")) }

// Body returns the body element.
func (d *Document) Body() dom.Element { return d.Find(dom.ByTag("body")) }

// ActiveElement returns the focused element, defaulting to the body.
func (d *Document) ActiveElement() dom.Element {
	d.mu.Lock()
	active := d.active
	d.mu.Unlock()
	if active != nil {
		return d.wrap(active)
	}
	return d.Body()
}

// ExecCommand records the current selection for "copy" and returns the
// configured result.
func (d *Document) ExecCommand(cmd string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if cmd != "copy" || !d.execOK {
		return false
	}
	d.copied = append(d.copied, d.selection)
	return true
}

// SetExecCommandResult controls what ExecCommand returns.
func (d *Document) SetExecCommandResult(ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.execOK = ok
}

// ExecCopies returns the texts copied through ExecCommand("copy").
func (d *Document) ExecCopies() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.copied...)
}

// Render serializes the whole document.
func (d *Document) Render() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var buf bytes.Buffer
	_ = html.Render(&buf, d.root)
	return buf.String()
}

// Click dispatches a click event on el.
func (d *Document) Click(el dom.Element) *Event {
	ev := &Event{typ: "click", target: el}
	d.dispatch(nodeOf(el), ev)
	return ev
}

// KeyDown dispatches a keydown event on the focused element.
func (d *Document) KeyDown(key string, shift bool) *Event {
	target := d.ActiveElement()
	ev := &Event{typ: "keydown", target: target, key: key, shift: shift}
	d.dispatch(nodeOf(target), ev)
	return ev
}

// Input sets el's value and dispatches an input event on it.
func (d *Document) Input(el dom.Element, value string) *Event {
	el.SetValue(value)
	ev := &Event{typ: "input", target: el}
	d.dispatch(nodeOf(el), ev)
	return ev
}

func nodeOf(e dom.Element) *html.Node {
	if el, ok := e.(*element); ok && el != nil {
		return el.n
	}
	return nil
}
