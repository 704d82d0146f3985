package highlighter

import (
	"golang.org/x/net/html"

	"github.com/heathj/gohighlight/dom"
)

// Mutator wraps covered text in markers and keeps group ids coherent.
type Mutator struct {
	*tree
}

// Apply highlights spans with colorClass as one group and returns the group
// id, or 0 when there was nothing to highlight. Spans already inside a
// marker of the same color keep their group; spans inside a marker of
// another color are recolored.
func (m *Mutator) Apply(spans []CoveredSpan, colorClass string) int {
	group := m.apply(spans, colorClass, 0)
	if group == 0 {
		return 0
	}
	ranks := m.finish()
	return ranks[group]
}

// apply does the wrapping for one group. A positive group forces the id and
// skips joining with neighbouring groups.
func (m *Mutator) apply(spans []CoveredSpan, colorClass string, group int) int {
	if len(spans) == 0 {
		return 0
	}
	joined := map[int]struct{}{}
	covered := make([]*html.Node, 0, len(spans))
	for _, s := range spans {
		marker, prevGroup, prevColor := m.isolate(s, colorClass)
		if prevGroup > 0 && prevColor == colorClass {
			joined[prevGroup] = struct{}{}
		}
		covered = append(covered, marker)
	}

	if group <= 0 {
		for _, n := range []*html.Node{m.abutting(covered[0], true), m.abutting(covered[len(covered)-1], false)} {
			if n != nil && m.markers.colorOf(n) == colorClass {
				joined[groupOf(n)] = struct{}{}
			}
		}
		group = m.resolveGroup(joined)
	}

	for _, c := range covered {
		m.markers.setColor(c, colorClass)
		setGroup(c, group)
	}
	m.log.WithField("method", "Mutator.apply").Debugf("highlighted %d spans as group %d", len(covered), group)
	return group
}

// isolate makes the covered characters of s the sole content of one marker.
// It returns that marker and the group and color it had before, which are
// zero values for a freshly created marker.
func (m *Mutator) isolate(s CoveredSpan, colorClass string) (*html.Node, int, string) {
	t := s.Node
	m.ledger.touch(t)
	if s.EndOffset < dom.Length(t) {
		m.ledger.split(t, s.EndOffset)
	}
	if s.StartOffset > 0 {
		t = m.ledger.split(t, s.StartOffset)
	}

	if marker := m.markers.enclosing(t); marker != nil {
		return m.detach(marker, t), groupOf(marker), m.markers.colorOf(marker)
	}
	marker := m.markers.create(colorClass, 0)
	dom.Wrap(t, marker)
	return marker, 0, ""
}

// detach moves the siblings of child into copies of marker on either side,
// leaving child alone in marker.
func (m *Mutator) detach(marker, child *html.Node) *html.Node {
	if child.PrevSibling != nil {
		left := dom.CloneShallow(marker)
		marker.Parent.InsertBefore(left, marker)
		for c := marker.FirstChild; c != child; c = marker.FirstChild {
			marker.RemoveChild(c)
			left.AppendChild(c)
		}
	}
	if child.NextSibling != nil {
		right := dom.CloneShallow(marker)
		dom.InsertAfter(right, marker)
		for c := child.NextSibling; c != nil; c = child.NextSibling {
			marker.RemoveChild(c)
			right.AppendChild(c)
		}
	}
	return marker
}

// abutting returns the marker holding the nearest non-empty text before
// (or after) marker in tree order, if that text is marked.
func (m *Mutator) abutting(marker *html.Node, before bool) *html.Node {
	edge := lastText(marker)
	if before {
		edge = firstText(marker)
	}
	if edge == nil {
		return nil
	}
	idx := newTextIndex(m.root)
	i, ok := idx.pos[edge]
	if !ok {
		return nil
	}
	step := 1
	if before {
		step = -1
	}
	for j := i + step; j >= 0 && j < len(idx.nodes); j += step {
		if idx.nodes[j].Data == "" {
			continue
		}
		return m.markers.enclosing(idx.nodes[j])
	}
	return nil
}

// resolveGroup picks the lowest of the joined groups and relabels the
// others, or allocates a new id when nothing is joined.
func (m *Mutator) resolveGroup(joined map[int]struct{}) int {
	if len(joined) == 0 {
		return m.markers.maxGroup(m.root) + 1
	}
	target := 0
	for g := range joined {
		if target == 0 || g < target {
			target = g
		}
	}
	for _, marker := range m.markers.all(m.root) {
		if _, ok := joined[groupOf(marker)]; ok {
			setGroup(marker, target)
		}
	}
	return target
}

// finish merges adjacent markers, renumbers groups to 1..n and refreshes
// split attributes. It returns the renumbering that was applied.
func (m *Mutator) finish() map[int]int {
	m.mergeAdjacent()
	ranks := m.renumber()
	m.syncSplitAttrs()
	return ranks
}

// mergeAdjacent joins sibling markers of the same group and color whose
// shared boundary was created by a split.
func (m *Mutator) mergeAdjacent() {
	for _, marker := range m.markers.all(m.root) {
		if marker.Parent == nil {
			continue
		}
		for {
			next := nextSibling(marker)
			if !m.markers.isMarker(next) || groupOf(next) != groupOf(marker) || m.markers.colorOf(next) != m.markers.colorOf(marker) {
				break
			}
			a, b := lastText(marker), firstText(next)
			if a == nil || b == nil || a.Parent != marker || b.Parent != next || !m.ledger.joinable(a, b) {
				break
			}
			dom.AppendData(a, b.Data)
			m.ledger.set(a, SplitFlags{
				BeforeWasSplit: m.ledger.get(a).BeforeWasSplit,
				AfterWasSplit:  m.ledger.get(b).AfterWasSplit,
			})
			next.RemoveChild(b)
			m.ledger.forget(b)
			for c := next.FirstChild; c != nil; c = next.FirstChild {
				next.RemoveChild(c)
				marker.AppendChild(c)
			}
			next.Parent.RemoveChild(next)
		}
	}
}

// renumber rewrites group ids to 1..n keeping their relative order.
func (m *Mutator) renumber() map[int]int {
	ranks := m.markers.ranks(m.root)
	for _, marker := range m.markers.all(m.root) {
		if r := ranks[groupOf(marker)]; r != groupOf(marker) {
			setGroup(marker, r)
		}
	}
	return ranks
}
