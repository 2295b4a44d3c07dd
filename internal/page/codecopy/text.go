package codecopy

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CleanText returns the copyable text of a code element's inner HTML. Line
// number elements are dropped, highlight markup contributes only its text,
// and line endings are normalized to LF.
func CleanText(innerHTML string) string {
	ctx := &html.Node{Type: html.ElementNode, Data: "code", DataAtom: atom.Code}
	nodes, err := html.ParseFragment(strings.NewReader(innerHTML), ctx)
	if err != nil {
		return normalize(innerHTML)
	}
	var b strings.Builder
	for _, n := range nodes {
		collectText(&b, n)
	}
	return normalize(b.String())
}

func collectText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if isLineNumber(n) {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
}

func isLineNumber(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "class" {
			classes := strings.Fields(a.Val)
			return slices.Contains(classes, "line-number") || slices.Contains(classes, "lineno")
		}
	}
	return false
}

func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.TrimSpace(s)
}
