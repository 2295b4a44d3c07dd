package page

import (
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookbuilder/internal/page/dom"
	"git.home.luguber.info/inful/bookbuilder/internal/page/dom/domtest"
	"git.home.luguber.info/inful/bookbuilder/internal/page/sidebar"
)

const bookPage = `<html><head><title>Book</title></head><body>
<button class="sidebar-toggle"><svg></svg></button>
<div id="sidebar-overlay" class="sidebar-overlay"></div>
<aside id="sidebar"><a class="nav-link" href="/">Home</a></aside>
<input id="search-input">
<main><pre><code class="language-sh">make book</code></pre></main>
</body></html>`

func TestInitBindsComponents(t *testing.T) {
	w, err := domtest.NewWindow(bookPage, 600, "https://book.example/")
	require.NoError(t, err)

	p := Init(w, Options{Clock: clockwork.NewFakeClock()})
	t.Cleanup(p.Detach)

	require.NotNil(t, p.Sidebar)
	assert.Equal(t, sidebar.State{IsOpen: false, IsMobile: true}, p.Sidebar.State())
	assert.True(t, p.Search.Active())
	assert.Len(t, w.Document().FindAll(dom.ByClass("code-copy-button")), 1)

	style := w.Document().GetElementByID(StyleElementID)
	require.NotNil(t, style)
	assert.Contains(t, style.Text(), ".sidebar-overlay")
	assert.Contains(t, style.Text(), ".code-copy-button")
}

func TestInitInjectsStylesOnce(t *testing.T) {
	w, err := domtest.NewWindow(bookPage, 1024, "https://book.example/")
	require.NoError(t, err)

	first := Init(w, Options{Clock: clockwork.NewFakeClock()})
	first.Detach()
	second := Init(w, Options{Clock: clockwork.NewFakeClock()})
	t.Cleanup(second.Detach)

	styles := w.Document().FindAll(dom.ByTag("style"))
	assert.Len(t, styles, 1)
	assert.Len(t, w.Document().FindAll(dom.ByClass("code-copy-button")), 1)
}

func TestInitWithoutSidebar(t *testing.T) {
	w, err := domtest.NewWindow(`<html><head></head><body><p>x</p></body></html>`, 1024, "https://book.example/")
	require.NoError(t, err)

	p := Init(w, Options{})
	t.Cleanup(p.Detach)
	assert.Nil(t, p.Sidebar)
	assert.False(t, p.Search.Active())
}
