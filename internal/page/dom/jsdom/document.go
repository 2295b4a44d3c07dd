//go:build js && wasm

package jsdom

import (
	"syscall/js"

	"git.home.luguber.info/inful/bookbuilder/internal/page/dom"
)

// Document wraps window.document.
type Document struct{ v js.Value }

func (d *Document) AddEventListener(typ string, fn dom.Listener) func() {
	return listen(d.v, typ, fn)
}

func (d *Document) GetElementByID(id string) dom.Element {
	return wrap(d.v.Call("getElementById", id))
}

func (d *Document) Find(m dom.Matcher) dom.Element {
	return first(d.v, m)
}

func (d *Document) FindAll(m dom.Matcher) []dom.Element {
	return all(d.v, m)
}

func (d *Document) CreateElement(tag string) dom.Element {
	return wrap(d.v.Call("createElement", tag))
}

func (d *Document) Head() dom.Element          { return wrap(d.v.Get("head")) }
func (d *Document) Body() dom.Element          { return wrap(d.v.Get("body")) }
func (d *Document) ActiveElement() dom.Element { return wrap(d.v.Get("activeElement")) }

// ExecCommand reports false when the command throws.
func (d *Document) ExecCommand(cmd string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return d.v.Call("execCommand", cmd).Truthy()
}

func descendants(root js.Value) []js.Value {
	list := root.Call("getElementsByTagName", "*")
	n := list.Length()
	out := make([]js.Value, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, list.Index(i))
	}
	return out
}

func first(root js.Value, m dom.Matcher) dom.Element {
	for _, v := range descendants(root) {
		if e := (element{v: v}); m(e) {
			return e
		}
	}
	return nil
}

func all(root js.Value, m dom.Matcher) []dom.Element {
	var out []dom.Element
	for _, v := range descendants(root) {
		if e := (element{v: v}); m(e) {
			out = append(out, e)
		}
	}
	return out
}
