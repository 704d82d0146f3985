package dom

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NewElement creates a detached HTML element.
func NewElement(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// ParseFragment runs the HTML fragment parsing algorithm with a div context
// and returns a detached div holding the resulting nodes.
// https://html.spec.whatwg.org/#html-fragment-parsing-algorithm
func ParseFragment(markup string) (*html.Node, error) {
	container := NewElement("div")
	nodes, err := html.ParseFragment(strings.NewReader(markup), container)
	if err != nil {
		return nil, errors.Wrap(err, "parse html fragment")
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// MustParseFragment is ParseFragment for literals known to be valid.
func MustParseFragment(markup string) *html.Node {
	n, err := ParseFragment(markup)
	if err != nil {
		panic(err)
	}
	return n
}

// InnerHTML serializes the children of n.
// https://html.spec.whatwg.org/#serialising-html-fragments
func InnerHTML(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		// Render only fails on writer errors, strings.Builder has none.
		_ = html.Render(&sb, c)
	}
	return sb.String()
}

func OuterHTML(n *html.Node) string {
	var sb strings.Builder
	_ = html.Render(&sb, n)
	return sb.String()
}
