package dom

import "golang.org/x/net/html"

// Range is https://dom.spec.whatwg.org/#range
// Offsets count runes when the container is a text node and children
// otherwise. Ranges here are static: they are not updated when the tree
// they point into is mutated.
type Range struct {
	StartContainer *html.Node
	StartOffset    int
	EndContainer   *html.Node
	EndOffset      int
}

// NewRange returns a range collapsed at the start of n.
func NewRange(n *html.Node) *Range {
	return &Range{StartContainer: n, EndContainer: n}
}

func (r *Range) SetStart(n *html.Node, offset int) {
	r.StartContainer, r.StartOffset = n, offset
}

func (r *Range) SetEnd(n *html.Node, offset int) {
	r.EndContainer, r.EndOffset = n, offset
}

func (r *Range) SetStartBefore(n *html.Node) {
	if n.Parent == nil {
		return
	}
	r.SetStart(n.Parent, IndexOf(n))
}

func (r *Range) SetEndAfter(n *html.Node) {
	if n.Parent == nil {
		return
	}
	r.SetEnd(n.Parent, IndexOf(n)+1)
}

// SelectNode is https://dom.spec.whatwg.org/#dom-range-selectnode
func (r *Range) SelectNode(n *html.Node) {
	r.SetStartBefore(n)
	r.SetEndAfter(n)
}

// SelectNodeContents is https://dom.spec.whatwg.org/#dom-range-selectnodecontents
func (r *Range) SelectNodeContents(n *html.Node) {
	r.SetStart(n, 0)
	r.SetEnd(n, Length(n))
}

func (r *Range) Collapse(toStart bool) {
	if toStart {
		r.SetEnd(r.StartContainer, r.StartOffset)
		return
	}
	r.SetStart(r.EndContainer, r.EndOffset)
}

func (r *Range) Collapsed() bool {
	return r.StartContainer == r.EndContainer && r.StartOffset == r.EndOffset
}

func (r *Range) Clone() *Range {
	c := *r
	return &c
}

// NewRangeFromTextOffsets builds a range covering the flattened text of root
// between start and end. Boundaries land inside text nodes: the start on the
// node that holds the character at start, the end on the node that holds
// the character before end. A collapsed range sits where its start would.
func NewRangeFromTextOffsets(root *html.Node, start, end int) *Range {
	r := NewRange(root)
	texts := TextNodes(root)
	if len(texts) == 0 {
		return r
	}
	if end < start {
		start, end = end, start
	}

	sn, so := locateText(texts, start, false)
	r.SetStart(sn, so)
	if start == end {
		r.SetEnd(sn, so)
		return r
	}
	en, eo := locateText(texts, end, true)
	r.SetEnd(en, eo)
	return r
}

// locateText finds the text node and offset for a flattened offset. With
// preferEnd an offset on a node boundary lands at the end of the earlier
// node, otherwise at the start of the later one.
func locateText(texts []*html.Node, offset int, preferEnd bool) (*html.Node, int) {
	pos := 0
	for _, t := range texts {
		l := Length(t)
		if preferEnd && offset > pos && offset <= pos+l {
			return t, offset - pos
		}
		if !preferEnd && offset >= pos && offset < pos+l {
			return t, offset - pos
		}
		pos += l
	}
	if offset <= 0 {
		return texts[0], 0
	}
	last := texts[len(texts)-1]
	return last, Length(last)
}
