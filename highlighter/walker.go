package highlighter

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/heathj/gohighlight/dom"
)

// CoveredSpan is the part of one text node touched by a range.
type CoveredSpan struct {
	Node         *html.Node
	StartOffset  int
	EndOffset    int
	FullyCovered bool
}

// textSpan is a half-open interval of the container's flattened text.
// Flattened offsets survive splitting and wrapping, so they stay valid while
// earlier ranges of the same call mutate the tree.
type textSpan struct {
	start, end int
}

// textIndex maps every text node of a container to its flattened offset.
type textIndex struct {
	root   *html.Node
	nodes  []*html.Node
	starts []int
	pos    map[*html.Node]int
	total  int
}

func newTextIndex(root *html.Node) *textIndex {
	idx := &textIndex{root: root, pos: map[*html.Node]int{}}
	for _, t := range dom.TextNodes(root) {
		idx.pos[t] = len(idx.nodes)
		idx.nodes = append(idx.nodes, t)
		idx.starts = append(idx.starts, idx.total)
		idx.total += dom.Length(t)
	}
	return idx
}

// offset converts a range boundary point into a flattened offset.
// https://dom.spec.whatwg.org/#concept-range-bp
func (idx *textIndex) offset(container *html.Node, offset int) int {
	if offset < 0 {
		offset = 0
	}
	if i, ok := idx.pos[container]; ok {
		if l := dom.Length(container); offset > l {
			offset = l
		}
		return idx.starts[i] + offset
	}

	from := dom.ChildAt(container, offset)
	if from == nil {
		if container == idx.root {
			return idx.total
		}
		from = dom.NextSkippingChildren(container, idx.root)
	}
	for n := from; n != nil; n = dom.NextInOrder(n, idx.root) {
		if i, ok := idx.pos[n]; ok {
			return idx.starts[i]
		}
	}
	return idx.total
}

// RangeWalker turns ranges into the text spans they cover.
type RangeWalker struct {
	*tree
	classifier *Classifier
}

// Walk returns the eligible spans covered by r in tree order.
func (w *RangeWalker) Walk(r *dom.Range) []CoveredSpan {
	span, ok := w.resolve(r)
	if !ok {
		return nil
	}
	return w.spans(span)
}

// resolve validates r against the container and converts it to flattened
// offsets. An end boundary at offset 0 of a node lands on the end of the
// previous text node, so that node is covered fully and the next one not
// at all.
func (w *RangeWalker) resolve(r *dom.Range) (textSpan, bool) {
	log := w.log.WithField("method", "RangeWalker.resolve")
	if r == nil || r.StartContainer == nil || r.EndContainer == nil {
		log.Debug("ignoring incomplete range")
		return textSpan{}, false
	}
	if !dom.Contains(w.root, r.StartContainer) || !dom.Contains(w.root, r.EndContainer) {
		log.Debug("ignoring range outside of the container")
		return textSpan{}, false
	}
	idx := newTextIndex(w.root)
	start := idx.offset(r.StartContainer, r.StartOffset)
	end := idx.offset(r.EndContainer, r.EndOffset)
	if end < start {
		start, end = end, start
	}
	if start == end {
		return textSpan{}, false
	}
	return textSpan{start: start, end: end}, true
}

func (w *RangeWalker) spans(span textSpan) []CoveredSpan {
	idx := newTextIndex(w.root)
	var spans []CoveredSpan
	for i, t := range idx.nodes {
		nodeStart := idx.starts[i]
		length := dom.Length(t)
		s := max(span.start, nodeStart) - nodeStart
		e := min(span.end, nodeStart+length) - nodeStart
		if s >= e {
			continue
		}
		if !w.classifier.IsEligible(t) {
			continue
		}
		if lineBreakOnly(dom.SubstringData(t, s, e-s)) {
			continue
		}
		spans = append(spans, CoveredSpan{
			Node:         t,
			StartOffset:  s,
			EndOffset:    e,
			FullyCovered: s == 0 && e == length,
		})
	}
	return spans
}

// lineBreakOnly reports text that only holds whitespace including a line
// break, which renders as nothing to highlight.
func lineBreakOnly(s string) bool {
	if !strings.ContainsAny(s, "\r\n") {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
