//go:build js && wasm

// Package jsdom implements the dom interfaces over syscall/js.
package jsdom

import (
	"context"
	"errors"
	"net/url"
	"syscall/js"

	"git.home.luguber.info/inful/bookbuilder/internal/page/dom"
)

func listen(target js.Value, typ string, fn dom.Listener) func() {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) > 0 {
			fn(event{v: args[0]})
		}
		return nil
	})
	target.Call("addEventListener", typ, cb)
	return func() {
		target.Call("removeEventListener", typ, cb)
		cb.Release()
	}
}

// wrap returns nil for anything that is not an element node, including
// window and text nodes.
func wrap(v js.Value) dom.Element {
	if v.Type() != js.TypeObject {
		return nil
	}
	nt := v.Get("nodeType")
	if nt.Type() != js.TypeNumber || nt.Int() != 1 {
		return nil
	}
	return element{v: v}
}

// Window is the global browsing context.
type Window struct {
	v   js.Value
	doc *Document
}

// NewWindow wraps the global window object.
func NewWindow() *Window {
	w := js.Global()
	return &Window{v: w, doc: &Document{v: w.Get("document")}}
}

func (w *Window) AddEventListener(typ string, fn dom.Listener) func() {
	return listen(w.v, typ, fn)
}

func (w *Window) Document() dom.Document { return w.doc }

func (w *Window) InnerWidth() int { return w.v.Get("innerWidth").Int() }

func (w *Window) Location() *url.URL {
	u, err := url.Parse(w.v.Get("location").Get("href").String())
	if err != nil {
		return &url.URL{Path: "/"}
	}
	return u
}

func (w *Window) IsSecureContext() bool { return w.v.Get("isSecureContext").Truthy() }

func (w *Window) Clipboard() dom.Clipboard {
	c := w.v.Get("navigator").Get("clipboard")
	if !c.Truthy() {
		return nil
	}
	return clipboard{v: c}
}

func (w *Window) Analytics() dom.Analytics {
	g := w.v.Get("gtag")
	if g.Type() != js.TypeFunction {
		return nil
	}
	return gtag{fn: g}
}

// WhenReady runs fn once the document has been parsed.
func (w *Window) WhenReady(fn func()) {
	if w.doc.v.Get("readyState").String() != "loading" {
		fn()
		return
	}
	var remove func()
	remove = listen(w.doc.v, "DOMContentLoaded", func(dom.Event) {
		remove()
		fn()
	})
}

type clipboard struct{ v js.Value }

// WriteText awaits navigator.clipboard.writeText. It blocks, so callers run it
// off the event-loop callback.
func (c clipboard) WriteText(ctx context.Context, text string) error {
	done := make(chan error, 1)
	var onOK, onErr js.Func
	onOK = js.FuncOf(func(js.Value, []js.Value) any {
		done <- nil
		return nil
	})
	onErr = js.FuncOf(func(_ js.Value, args []js.Value) any {
		msg := "clipboard write rejected"
		if len(args) > 0 && args[0].Truthy() {
			msg = args[0].Call("toString").String()
		}
		done <- errors.New(msg)
		return nil
	})
	defer onOK.Release()
	defer onErr.Release()

	c.v.Call("writeText", text).Call("then", onOK, onErr)
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

type gtag struct{ fn js.Value }

func (g gtag) Event(name string, params map[string]string) {
	obj := map[string]any{}
	for k, v := range params {
		obj[k] = v
	}
	g.fn.Invoke("event", name, obj)
}

type event struct{ v js.Value }

func (e event) Type() string        { return e.v.Get("type").String() }
func (e event) Target() dom.Element { return wrap(e.v.Get("target")) }
func (e event) PreventDefault()     { e.v.Call("preventDefault") }
func (e event) ShiftKey() bool      { return e.v.Get("shiftKey").Truthy() }

func (e event) Key() string {
	k := e.v.Get("key")
	if k.Type() != js.TypeString {
		return ""
	}
	return k.String()
}
