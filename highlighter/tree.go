package highlighter

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/heathj/gohighlight/dom"
)

// tree is the state shared by the highlighter components: the container
// they operate on and the split bookkeeping for its text nodes.
type tree struct {
	root           *html.Node
	markers        markerSet
	ledger         *splitLedger
	keepEmptyNodes bool
	log            logrus.FieldLogger
}

func (t *tree) textBearing(n *html.Node) bool {
	return n != nil && (n.Type == html.TextNode || t.markers.isMarker(n))
}

// adopt records split flags for markers that were not created through this
// tree, such as markup saved from an earlier session. Flags come from the
// split attributes when present. Otherwise a boundary between adjacent
// text-bearing siblings is taken to be a split, since the HTML parser never
// produces adjacent text nodes.
func (t *tree) adopt() {
	fresh := map[*html.Node]bool{}
	unknown := func(n *html.Node) bool {
		return !t.ledger.known(n) || fresh[n]
	}
	for _, m := range t.markers.all(t.root) {
		var texts []*html.Node
		for c := m.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				texts = append(texts, c)
			}
		}
		if len(texts) == 0 {
			continue
		}
		first, last := texts[0], texts[len(texts)-1]
		if !unknown(first) && !unknown(last) {
			continue
		}

		edges, hasAttrs := readSplitAttrs(m)
		if !hasAttrs {
			edges = SplitFlags{
				BeforeWasSplit: t.textBearing(prevSibling(m)),
				AfterWasSplit:  t.textBearing(nextSibling(m)),
			}
		}
		for i, c := range texts {
			if !unknown(c) {
				continue
			}
			f := SplitFlags{BeforeWasSplit: true, AfterWasSplit: true}
			if i == 0 {
				f.BeforeWasSplit = edges.BeforeWasSplit
			}
			if i == len(texts)-1 {
				f.AfterWasSplit = edges.AfterWasSplit
			}
			t.ledger.set(c, f)
			fresh[c] = true
		}

		if prev := prevSibling(m); prev != nil && prev.Type == html.TextNode && unknown(prev) {
			f := t.ledger.get(prev)
			f.AfterWasSplit = t.ledger.get(first).BeforeWasSplit
			t.ledger.set(prev, f)
			fresh[prev] = true
		}
		if next := nextSibling(m); next != nil && next.Type == html.TextNode && unknown(next) {
			f := t.ledger.get(next)
			f.BeforeWasSplit = t.ledger.get(last).AfterWasSplit
			t.ledger.set(next, f)
			fresh[next] = true
		}
		t.log.WithField("method", "adopt").Debugf("adopted marker of group %d", groupOf(m))
	}
}

// syncSplitAttrs mirrors split flags onto marker attributes in
// keep-empty-nodes mode. In default mode the attributes of adopted markers
// are dropped once their flags are in the ledger.
func (t *tree) syncSplitAttrs() {
	for _, m := range t.markers.all(t.root) {
		if !t.keepEmptyNodes {
			dom.RemoveAttribute(m, beforeSplitAttr)
			dom.RemoveAttribute(m, afterSplitAttr)
			continue
		}
		writeSplitAttrs(m, t.ledger.markerFlags(m))
	}
}
