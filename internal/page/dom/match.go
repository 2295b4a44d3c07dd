package dom

import "strings"

// Matcher selects elements.
type Matcher func(Element) bool

// ByID matches the element with the given id.
func ByID(id string) Matcher {
	return func(e Element) bool { return e.ID() == id }
}

// ByClass matches elements carrying class name.
func ByClass(name string) Matcher {
	return func(e Element) bool { return e.HasClass(name) }
}

// ByTag matches elements by case-insensitive tag name.
func ByTag(tag string) Matcher {
	return func(e Element) bool { return strings.EqualFold(e.TagName(), tag) }
}

// HasAttr matches elements that carry attribute name.
func HasAttr(name string) Matcher {
	return func(e Element) bool {
		_, ok := e.Attr(name)
		return ok
	}
}

// AttrEquals matches elements whose attribute name equals value.
func AttrEquals(name, value string) Matcher {
	return func(e Element) bool {
		v, ok := e.Attr(name)
		return ok && v == value
	}
}

// ChildOf matches elements whose parent matches m.
func ChildOf(m Matcher) Matcher {
	return func(e Element) bool {
		p := e.Parent()
		return p != nil && m(p)
	}
}

// And matches when every matcher matches.
func And(ms ...Matcher) Matcher {
	return func(e Element) bool {
		for _, m := range ms {
			if !m(e) {
				return false
			}
		}
		return true
	}
}

// Or matches when any matcher matches.
func Or(ms ...Matcher) Matcher {
	return func(e Element) bool {
		for _, m := range ms {
			if m(e) {
				return true
			}
		}
		return false
	}
}

// Not inverts m.
func Not(m Matcher) Matcher {
	return func(e Element) bool { return !m(e) }
}

// Focusable matches links with an href, enabled buttons and elements with a
// non-negative tabindex.
var Focusable = Or(
	And(ByTag("a"), HasAttr("href")),
	And(ByTag("button"), Not(HasAttr("disabled"))),
	And(HasAttr("tabindex"), Not(AttrEquals("tabindex", "-1"))),
)

// CodeBlock matches code elements directly inside a pre element.
var CodeBlock = And(ByTag("code"), ChildOf(ByTag("pre")))
