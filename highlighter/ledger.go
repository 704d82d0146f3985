package highlighter

import (
	"strconv"

	"golang.org/x/net/html"

	"github.com/heathj/gohighlight/dom"
)

// SplitFlags records whether the edges of a text node were produced by
// splitting a larger text node.
type SplitFlags struct {
	BeforeWasSplit bool
	AfterWasSplit  bool
}

// splitLedger tracks SplitFlags for text nodes the highlighter has split,
// wrapped or adopted. Unknown text nodes are original markup.
type splitLedger struct {
	flags map[*html.Node]SplitFlags
}

func newSplitLedger() *splitLedger {
	return &splitLedger{flags: map[*html.Node]SplitFlags{}}
}

func (l *splitLedger) get(t *html.Node) SplitFlags {
	return l.flags[t]
}

func (l *splitLedger) known(t *html.Node) bool {
	_, ok := l.flags[t]
	return ok
}

func (l *splitLedger) set(t *html.Node, f SplitFlags) {
	l.flags[t] = f
}

// touch records t with its current flags.
func (l *splitLedger) touch(t *html.Node) {
	l.flags[t] = l.flags[t]
}

func (l *splitLedger) forget(t *html.Node) {
	delete(l.flags, t)
}

// joinable reports whether the boundary between a and b was created by a
// split, which is the only kind of boundary the highlighter may undo.
func (l *splitLedger) joinable(a, b *html.Node) bool {
	if a == nil || b == nil || a.Type != html.TextNode || b.Type != html.TextNode {
		return false
	}
	return l.get(a).AfterWasSplit && l.get(b).BeforeWasSplit
}

// split cuts t at offset and records the new inner boundary on both halves.
// A zero-length remnant of an earlier split that follows t receives the data
// after offset instead of a new node.
func (l *splitLedger) split(t *html.Node, offset int) *html.Node {
	f := l.get(t)
	var rest *html.Node
	if r := l.remnantAfter(t); r != nil {
		dom.MoveDataAfter(t, offset, r)
		rest = r
	} else {
		rest = dom.SplitText(t, offset)
	}
	l.set(t, SplitFlags{BeforeWasSplit: f.BeforeWasSplit, AfterWasSplit: true})
	l.set(rest, SplitFlags{BeforeWasSplit: true, AfterWasSplit: f.AfterWasSplit})
	return rest
}

// remnantAfter returns the last of the zero-length split remnants directly
// following t, or nil. Taking the last one leaves the others in between for
// a second split of t.
func (l *splitLedger) remnantAfter(t *html.Node) *html.Node {
	var last *html.Node
	for c := t.NextSibling; isEmptyText(c) && l.known(c) && l.get(c).BeforeWasSplit; c = c.NextSibling {
		last = c
	}
	return last
}

// markerFlags returns the split flags of a marker's outer edges.
func (l *splitLedger) markerFlags(m *html.Node) SplitFlags {
	var f SplitFlags
	if t := firstText(m); t != nil {
		f.BeforeWasSplit = l.get(t).BeforeWasSplit
	}
	if t := lastText(m); t != nil {
		f.AfterWasSplit = l.get(t).AfterWasSplit
	}
	return f
}

func writeSplitAttrs(m *html.Node, f SplitFlags) {
	dom.SetAttribute(m, beforeSplitAttr, strconv.FormatBool(f.BeforeWasSplit))
	dom.SetAttribute(m, afterSplitAttr, strconv.FormatBool(f.AfterWasSplit))
}

// readSplitAttrs returns the flags stored on m and whether both were present.
func readSplitAttrs(m *html.Node) (SplitFlags, bool) {
	if !dom.HasAttribute(m, beforeSplitAttr) || !dom.HasAttribute(m, afterSplitAttr) {
		return SplitFlags{}, false
	}
	before, err1 := strconv.ParseBool(dom.GetAttribute(m, beforeSplitAttr))
	after, err2 := strconv.ParseBool(dom.GetAttribute(m, afterSplitAttr))
	if err1 != nil || err2 != nil {
		return SplitFlags{}, false
	}
	return SplitFlags{BeforeWasSplit: before, AfterWasSplit: after}, true
}
