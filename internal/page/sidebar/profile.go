package sidebar

import "git.home.luguber.info/inful/bookbuilder/internal/page/dom"

// Profile names the markup a sidebar binds to and which optional behaviors
// it runs.
type Profile struct {
	Name string
	// SidebarID is the id of the sidebar container.
	SidebarID string
	Overlay   dom.Matcher
	Toggle    dom.Matcher
	// NavLinks match links that close the sidebar on mobile and take part
	// in active-link highlighting.
	NavLinks dom.Matcher
	// FirstFocus matches the link focused after a mobile open.
	FirstFocus   dom.Matcher
	OpenClass    string
	VisibleClass string
	FocusTrap    bool
	Highlight    bool
}

// StandardProfile binds the full book layout.
var StandardProfile = Profile{
	Name:         "standard",
	SidebarID:    "sidebar",
	Overlay:      dom.ByID("sidebar-overlay"),
	Toggle:       dom.ByClass("sidebar-toggle"),
	NavLinks:     dom.Or(dom.ByClass("nav-link"), dom.ByClass("nav-sublink")),
	FirstFocus:   dom.ByClass("nav-link"),
	OpenClass:    "is-open",
	VisibleClass: "is-visible",
	FocusTrap:    true,
	Highlight:    true,
}

// CompactProfile binds the simplified layout, which has no focus trap and no
// highlighting.
var CompactProfile = Profile{
	Name:         "compact",
	SidebarID:    "book-sidebar",
	Overlay:      dom.ByClass("sidebar-backdrop"),
	Toggle:       dom.ByClass("menu-toggle"),
	NavLinks:     dom.ByClass("menu-link"),
	FirstFocus:   dom.ByClass("menu-link"),
	OpenClass:    "sidebar-open",
	VisibleClass: "is-visible",
}

// DetectProfile picks the profile whose container exists in doc.
func DetectProfile(doc dom.Document) (Profile, bool) {
	for _, p := range []Profile{StandardProfile, CompactProfile} {
		if doc.GetElementByID(p.SidebarID) != nil {
			return p, true
		}
	}
	return Profile{}, false
}
