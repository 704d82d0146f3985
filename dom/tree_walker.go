package dom

import "golang.org/x/net/html"

// TreeWalker walks the subtree of root in tree order.
// https://dom.spec.whatwg.org/#treewalker
type TreeWalker struct {
	root        *html.Node
	currentNode *html.Node
	accept      func(*html.Node) bool
}

// NewTreeWalker creates a walker positioned on root. A nil accept function
// accepts every node.
func NewTreeWalker(root *html.Node, accept func(*html.Node) bool) *TreeWalker {
	return &TreeWalker{root: root, currentNode: root, accept: accept}
}

// NextNode advances to the next accepted node in tree order and returns it,
// or nil once the subtree is exhausted.
func (t *TreeWalker) NextNode() *html.Node {
	for n := NextInOrder(t.currentNode, t.root); n != nil; n = NextInOrder(n, t.root) {
		if t.accept == nil || t.accept(n) {
			t.currentNode = n
			return n
		}
	}
	return nil
}

// NextInOrder returns the node following n in tree order without leaving
// root's subtree.
func NextInOrder(n, root *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	return NextSkippingChildren(n, root)
}

// NextSkippingChildren returns the first node after n's subtree in tree
// order without leaving root's subtree.
func NextSkippingChildren(n, root *html.Node) *html.Node {
	for c := n; c != nil && c != root; c = c.Parent {
		if c.NextSibling != nil {
			return c.NextSibling
		}
	}
	return nil
}

// TextNodes returns every text node below root in tree order.
func TextNodes(root *html.Node) []*html.Node {
	var nodes []*html.Node
	w := NewTreeWalker(root, func(n *html.Node) bool {
		return n.Type == html.TextNode
	})
	for n := w.NextNode(); n != nil; n = w.NextNode() {
		nodes = append(nodes, n)
	}
	return nodes
}
