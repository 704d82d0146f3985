package dom

import (
	"golang.org/x/net/html"
)

// NewText creates a detached text node.
func NewText(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

// SplitText is https://dom.spec.whatwg.org/#dom-text-splittext
// The offset counts runes and is clamped to the node length. The new node
// holds the data after offset and is inserted as the next sibling when t
// has a parent.
func SplitText(t *html.Node, offset int) *html.Node {
	rest := NewText("")
	MoveDataAfter(t, offset, rest)
	if t.Parent != nil {
		InsertAfter(rest, t)
	}
	return rest
}

// MoveDataAfter moves the data of t after the rune offset to the front of
// into, which keeps its place in the tree.
func MoveDataAfter(t *html.Node, offset int, into *html.Node) {
	runes := []rune(t.Data)
	if offset < 0 {
		offset = 0
	}
	if offset > len(runes) {
		offset = len(runes)
	}
	into.Data = string(runes[offset:]) + into.Data
	t.Data = string(runes[:offset])
}

// AppendData is https://dom.spec.whatwg.org/#dom-characterdata-appenddata
func AppendData(t *html.Node, data string) {
	t.Data += data
}

// SubstringData is https://dom.spec.whatwg.org/#dom-characterdata-substringdata
func SubstringData(t *html.Node, offset, count int) string {
	runes := []rune(t.Data)
	if offset < 0 || offset > len(runes) {
		return ""
	}
	end := offset + count
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[offset:end])
}
