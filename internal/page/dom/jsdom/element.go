//go:build js && wasm

package jsdom

import (
	"strings"
	"syscall/js"

	"git.home.luguber.info/inful/bookbuilder/internal/page/dom"
)

type element struct{ v js.Value }

func unwrap(e dom.Element) (js.Value, bool) {
	el, ok := e.(element)
	return el.v, ok
}

func (e element) AddEventListener(typ string, fn dom.Listener) func() {
	return listen(e.v, typ, fn)
}

func (e element) Is(other dom.Element) bool {
	o, ok := unwrap(other)
	return ok && e.v.Equal(o)
}

func (e element) ID() string      { return e.v.Get("id").String() }
func (e element) TagName() string { return strings.ToLower(e.v.Get("tagName").String()) }

func (e element) HasClass(name string) bool {
	return e.v.Get("classList").Call("contains", name).Bool()
}
func (e element) AddClass(name string)    { e.v.Get("classList").Call("add", name) }
func (e element) RemoveClass(name string) { e.v.Get("classList").Call("remove", name) }

func (e element) Attr(name string) (string, bool) {
	v := e.v.Call("getAttribute", name)
	if v.IsNull() {
		return "", false
	}
	return v.String(), true
}

func (e element) SetAttr(name, value string) { e.v.Call("setAttribute", name, value) }
func (e element) RemoveAttr(name string)     { e.v.Call("removeAttribute", name) }

func (e element) Style(prop string) string {
	return e.v.Get("style").Call("getPropertyValue", prop).String()
}

func (e element) SetStyle(prop, value string) {
	if value == "" {
		e.v.Get("style").Call("removeProperty", prop)
		return
	}
	e.v.Get("style").Call("setProperty", prop, value)
}

func (e element) Text() string            { return e.v.Get("textContent").String() }
func (e element) SetText(text string)     { e.v.Set("textContent", text) }
func (e element) InnerHTML() string       { return e.v.Get("innerHTML").String() }
func (e element) SetInnerHTML(src string) { e.v.Set("innerHTML", src) }

func (e element) Value() string {
	v := e.v.Get("value")
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

func (e element) SetValue(v string)   { e.v.Set("value", v) }
func (e element) Parent() dom.Element { return wrap(e.v.Get("parentElement")) }

func (e element) AppendChild(child dom.Element) {
	if c, ok := unwrap(child); ok {
		e.v.Call("appendChild", c)
	}
}

func (e element) InsertBefore(child, ref dom.Element) {
	c, ok := unwrap(child)
	if !ok {
		return
	}
	r, ok := unwrap(ref)
	if !ok {
		e.v.Call("appendChild", c)
		return
	}
	e.v.Call("insertBefore", c, r)
}

func (e element) Remove() { e.v.Call("remove") }

func (e element) Contains(other dom.Element) bool {
	o, ok := unwrap(other)
	return ok && e.v.Call("contains", o).Bool()
}

func (e element) Find(m dom.Matcher) dom.Element      { return first(e.v, m) }
func (e element) FindAll(m dom.Matcher) []dom.Element { return all(e.v, m) }

func (e element) Closest(m dom.Matcher) dom.Element {
	for cur := dom.Element(e); cur != nil; cur = cur.Parent() {
		if m(cur) {
			return cur
		}
	}
	return nil
}

func (e element) Focus()  { e.v.Call("focus") }
func (e element) Select() { e.v.Call("select") }
