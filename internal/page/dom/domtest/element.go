package domtest

import (
	"bytes"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/bookbuilder/internal/page/dom"
)

type element struct {
	doc *Document
	n   *html.Node
}

func (e *element) AddEventListener(typ string, fn dom.Listener) func() {
	return e.doc.addListener(e.n, typ, fn)
}

func (e *element) Is(other dom.Element) bool {
	o, ok := other.(*element)
	return ok && o != nil && o.n == e.n
}

func (e *element) ID() string {
	v, _ := e.Attr("id")
	return v
}

func (e *element) TagName() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return e.n.Data
}

func (e *element) classes() []string {
	v, _ := e.attr("class")
	return strings.Fields(v)
}

func (e *element) HasClass(name string) bool {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return slices.Contains(e.classes(), name)
}

func (e *element) AddClass(name string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	cs := e.classes()
	if !slices.Contains(cs, name) {
		e.setAttr("class", strings.Join(append(cs, name), " "))
	}
}

func (e *element) RemoveClass(name string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	cs := slices.DeleteFunc(e.classes(), func(c string) bool { return c == name })
	e.setAttr("class", strings.Join(cs, " "))
}

func (e *element) attr(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (e *element) setAttr(name, value string) {
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

func (e *element) Attr(name string) (string, bool) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return e.attr(name)
}

func (e *element) SetAttr(name, value string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.setAttr(name, value)
}

func (e *element) RemoveAttr(name string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.n.Attr = slices.DeleteFunc(e.n.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == name
	})
}

func (e *element) Style(prop string) string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	v, _ := e.attr("style")
	for _, d := range parseStyle(v) {
		if d[0] == prop {
			return d[1]
		}
	}
	return ""
}

// SetStyle sets an inline declaration; an empty value removes it.
func (e *element) SetStyle(prop, value string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	v, _ := e.attr("style")
	decls := parseStyle(v)
	i := slices.IndexFunc(decls, func(d [2]string) bool { return d[0] == prop })
	switch {
	case value == "" && i >= 0:
		decls = slices.Delete(decls, i, i+1)
	case value == "":
	case i >= 0:
		decls[i][1] = value
	default:
		decls = append(decls, [2]string{prop, value})
	}
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d[0]+": "+d[1])
	}
	e.setAttr("style", strings.Join(parts, "; "))
}

func parseStyle(s string) [][2]string {
	var out [][2]string
	for _, decl := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		out = append(out, [2]string{strings.TrimSpace(k), strings.TrimSpace(v)})
	}
	return out
}

func (e *element) Text() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
			walk(c)
		}
	}
	walk(e.n)
	return b.String()
}

func (e *element) removeChildren() {
	for c := e.n.FirstChild; c != nil; c = e.n.FirstChild {
		e.n.RemoveChild(c)
	}
}

func (e *element) SetText(text string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.removeChildren()
	e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func (e *element) InnerHTML() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var buf bytes.Buffer
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

func (e *element) SetInnerHTML(src string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	ctx := &html.Node{Type: html.ElementNode, Data: e.n.Data, DataAtom: e.n.DataAtom, Namespace: e.n.Namespace}
	nodes, err := html.ParseFragment(strings.NewReader(src), ctx)
	if err != nil {
		return
	}
	e.removeChildren()
	for _, n := range nodes {
		e.n.AppendChild(n)
	}
}

func (e *element) Value() string {
	v, _ := e.Attr("value")
	return v
}

func (e *element) SetValue(v string) { e.SetAttr("value", v) }

func (e *element) Parent() dom.Element {
	e.doc.mu.Lock()
	p := e.n.Parent
	e.doc.mu.Unlock()
	return e.doc.wrap(p)
}

func (e *element) AppendChild(child dom.Element) {
	c := nodeOf(child)
	if c == nil {
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
	e.n.AppendChild(c)
}

func (e *element) InsertBefore(child, ref dom.Element) {
	c, r := nodeOf(child), nodeOf(ref)
	if c == nil {
		return
	}
	if r == nil {
		e.AppendChild(child)
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
	e.n.InsertBefore(c, r)
}

func (e *element) Remove() {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if e.n.Parent != nil {
		e.n.Parent.RemoveChild(e.n)
	}
}

func (e *element) Contains(other dom.Element) bool {
	o := nodeOf(other)
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for n := o; n != nil; n = n.Parent {
		if n == e.n {
			return true
		}
	}
	return false
}

func (e *element) Find(m dom.Matcher) dom.Element {
	for _, n := range e.doc.descendants(e.n) {
		if el := e.doc.wrap(n); m(el) {
			return el
		}
	}
	return nil
}

func (e *element) FindAll(m dom.Matcher) []dom.Element {
	var out []dom.Element
	for _, n := range e.doc.descendants(e.n) {
		if el := e.doc.wrap(n); m(el) {
			out = append(out, el)
		}
	}
	return out
}

func (e *element) Closest(m dom.Matcher) dom.Element {
	for cur := dom.Element(e); cur != nil; cur = cur.Parent() {
		if m(cur) {
			return cur
		}
	}
	return nil
}

func (e *element) Focus() {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.doc.active = e.n
}

func (e *element) Select() {
	v, _ := e.Attr("value")
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.doc.selection = v
}
