package highlighter

import (
	"golang.org/x/net/html"

	"github.com/heathj/gohighlight/dom"
)

// Remover unwraps markers and undoes the splits they no longer need.
type Remover struct {
	*tree
}

// ClearAll unwraps every marker in the container.
func (r *Remover) ClearAll() {
	markers := r.markers.all(r.root)
	for _, m := range markers {
		r.ClearOne(m)
	}
	r.log.WithField("method", "Remover.ClearAll").Debugf("cleared %d markers", len(markers))
}

// ClearGroup unwraps every marker of group.
func (r *Remover) ClearGroup(group int) {
	for _, m := range r.markers.all(r.root) {
		if groupOf(m) == group {
			r.ClearOne(m)
		}
	}
}

// ClearOne unwraps marker and merges its text with the neighbouring text
// nodes it was split from. Boundaries that existed in the original markup
// are kept.
func (r *Remover) ClearOne(marker *html.Node) {
	if !r.markers.isMarker(marker) || marker.Parent == nil || !dom.Contains(r.root, marker) {
		return
	}
	moved := dom.Unwrap(marker)
	if len(moved) == 0 {
		return
	}
	first, last := moved[0], moved[len(moved)-1]
	if first.Type == html.TextNode {
		merged := r.mergeLeft(first)
		if last == first {
			last = merged
		}
	}
	if last.Type == html.TextNode {
		r.mergeRight(last)
	}
}

// mergeLeft returns the node that holds t's data afterwards.
func (r *Remover) mergeLeft(t *html.Node) *html.Node {
	prev := r.neighbour(t, true)
	if prev != nil && r.ledger.joinable(prev, t) {
		r.merge(prev, t)
		return prev
	}
	return t
}

func (r *Remover) mergeRight(t *html.Node) {
	next := r.neighbour(t, false)
	if next != nil && r.ledger.joinable(t, next) {
		r.merge(t, next)
	}
}

// neighbour returns the adjacent sibling of t, looking through zero-length
// split artifacts. In default mode those artifacts are removed on the way.
func (r *Remover) neighbour(t *html.Node, before bool) *html.Node {
	step := func(n *html.Node) *html.Node {
		if before {
			return n.PrevSibling
		}
		return n.NextSibling
	}
	n := step(t)
	for isEmptyText(n) {
		following := step(n)
		if !r.keepEmptyNodes {
			n.Parent.RemoveChild(n)
			r.ledger.forget(n)
		}
		n = following
	}
	return n
}

// merge appends b's data to a. In keep-empty-nodes mode b stays behind as a
// zero-length node with its split flags intact.
func (r *Remover) merge(a, b *html.Node) {
	dom.AppendData(a, b.Data)
	r.ledger.set(a, SplitFlags{
		BeforeWasSplit: r.ledger.get(a).BeforeWasSplit,
		AfterWasSplit:  r.ledger.get(b).AfterWasSplit,
	})
	if r.keepEmptyNodes {
		b.Data = ""
		return
	}
	b.Parent.RemoveChild(b)
	r.ledger.forget(b)
}
