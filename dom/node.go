package dom

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Length is https://dom.spec.whatwg.org/#concept-node-length
// Text length is counted in runes.
func Length(n *html.Node) int {
	switch n.Type {
	case html.TextNode, html.CommentNode:
		return utf8.RuneCountInString(n.Data)
	default:
		return ChildCount(n)
	}
}

func ChildCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// ChildAt returns the i-th child of n or nil when i is out of bounds.
func ChildAt(n *html.Node, i int) *html.Node {
	if i < 0 {
		return nil
	}
	c := n.FirstChild
	for ; c != nil && i > 0; i-- {
		c = c.NextSibling
	}
	return c
}

// IndexOf is https://dom.spec.whatwg.org/#concept-tree-index
func IndexOf(child *html.Node) int {
	i := 0
	for c := child.PrevSibling; c != nil; c = c.PrevSibling {
		i++
	}
	return i
}

// Contains is https://dom.spec.whatwg.org/#dom-node-contains
func Contains(n, other *html.Node) bool {
	for c := other; c != nil; c = c.Parent {
		if c == n {
			return true
		}
	}
	return false
}

// InsertAfter inserts on as the next sibling of ref.
func InsertAfter(on, ref *html.Node) {
	ref.Parent.InsertBefore(on, ref.NextSibling)
}

// Unwrap moves the children of n into n's parent at n's position and
// detaches n. The moved children are returned in order.
func Unwrap(n *html.Node) []*html.Node {
	parent := n.Parent
	if parent == nil {
		return nil
	}
	var moved []*html.Node
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
		moved = append(moved, c)
	}
	parent.RemoveChild(n)
	return moved
}

// Wrap replaces n with wrapper and appends n to it.
func Wrap(n, wrapper *html.Node) {
	n.Parent.InsertBefore(wrapper, n)
	n.Parent.RemoveChild(n)
	wrapper.AppendChild(n)
}

// CloneShallow copies n without its children and without tree links.
func CloneShallow(n *html.Node) *html.Node {
	attrs := make([]html.Attribute, len(n.Attr))
	copy(attrs, n.Attr)
	return &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      attrs,
	}
}

func GetAttribute(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val
		}
	}
	return ""
}

func HasAttribute(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return true
		}
	}
	return false
}

// SetAttribute updates the attribute in place or appends it, so attribute
// order stays stable across updates.
func SetAttribute(n *html.Node, name, value string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

func RemoveAttribute(n *html.Node, name string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == name {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// ClassList is https://dom.spec.whatwg.org/#dom-element-classlist
func ClassList(n *html.Node) []string {
	return strings.Fields(GetAttribute(n, "class"))
}

func HasClass(n *html.Node, class string) bool {
	for _, c := range ClassList(n) {
		if c == class {
			return true
		}
	}
	return false
}

// TextContent is https://dom.spec.whatwg.org/#dom-node-textcontent
func TextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for _, t := range TextNodes(n) {
		sb.WriteString(t.Data)
	}
	return sb.String()
}
