package highlighter

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/net/html"

	"github.com/heathj/gohighlight/dom"
)

// Index describes the marker layout of a container, one entry per logical
// child in tree order.
type Index []IndexEntry

// IndexEntry is either unhighlighted, uniformly highlighted (GroupID and
// ColorClass set) or highlighted in slices (InlineRanges set).
type IndexEntry struct {
	Highlighted  bool          `json:"highlighted"`
	GroupID      string        `json:"groupId,omitempty"`
	ColorClass   string        `json:"colorClass,omitempty"`
	InlineRanges []InlineRange `json:"inlineRanges,omitempty"`
}

// InlineRange is a highlighted slice of a child's flattened text. A zero
// StartOffset means the start of the child and a zero EndOffset its end.
type InlineRange struct {
	GroupID     string `json:"groupId"`
	ColorClass  string `json:"colorClass"`
	StartOffset int    `json:"startOffset,omitempty"`
	EndOffset   int    `json:"endOffset,omitempty"`
}

// Encode returns the JSON form of the index.
func (idx Index) Encode() ([]byte, error) {
	data, err := json.Marshal(idx)
	if err != nil {
		return nil, errors.Wrap(err, "encode highlight index")
	}
	return data, nil
}

// ParseIndex decodes an index produced by Encode.
func ParseIndex(data []byte) (Index, error) {
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, errors.Wrap(err, "decode highlight index")
	}
	return idx, nil
}

// IndexCodec snapshots the marker layout of a container and replays it.
type IndexCodec struct {
	*tree
	walker  *RangeWalker
	mutator *Mutator
}

// unit is one logical child of the container: an element, or the text
// pieces and markers that together stand for one original text node.
type unit struct {
	nodes []*html.Node
}

func (u unit) texts() []*html.Node {
	var texts []*html.Node
	for _, n := range u.nodes {
		if n.Type == html.TextNode {
			texts = append(texts, n)
			continue
		}
		texts = append(texts, dom.TextNodes(n)...)
	}
	return texts
}

// units groups the container's children into logical children. Markers are
// transparent and text pieces separated only by splits are joined.
// Zero-length split artifacts are skipped.
func (c *IndexCodec) units() []unit {
	var units []unit
	var tail *html.Node
	for n := c.root.FirstChild; n != nil; n = n.NextSibling {
		if isEmptyText(n) {
			continue
		}
		if !c.textBearing(n) {
			units = append(units, unit{nodes: []*html.Node{n}})
			tail = nil
			continue
		}
		if tail != nil && c.ledger.joinable(lastText(tail), firstText(n)) {
			units[len(units)-1].nodes = append(units[len(units)-1].nodes, n)
		} else {
			units = append(units, unit{nodes: []*html.Node{n}})
		}
		tail = n
	}
	return units
}

type markedRun struct {
	start, end int
	group      int
	colorClass string
}

// Snapshot describes the current markers. Group ids are reported as 1..n.
func (c *IndexCodec) Snapshot() Index {
	ranks := c.markers.ranks(c.root)
	units := c.units()
	index := make(Index, 0, len(units))
	for _, u := range units {
		index = append(index, c.describe(u, ranks))
	}
	return index
}

func (c *IndexCodec) describe(u unit, ranks map[int]int) IndexEntry {
	var runs []markedRun
	pos := 0
	for _, t := range u.texts() {
		l := dom.Length(t)
		if l == 0 {
			continue
		}
		if m := c.markers.enclosing(t); m != nil {
			group, colorClass := ranks[groupOf(m)], c.markers.colorOf(m)
			if n := len(runs); n > 0 && runs[n-1].end == pos && runs[n-1].group == group && runs[n-1].colorClass == colorClass {
				runs[n-1].end += l
			} else {
				runs = append(runs, markedRun{start: pos, end: pos + l, group: group, colorClass: colorClass})
			}
		}
		pos += l
	}

	switch {
	case len(runs) == 0:
		return IndexEntry{Highlighted: false}
	case len(runs) == 1 && runs[0].start == 0 && runs[0].end == pos:
		return IndexEntry{
			Highlighted: true,
			GroupID:     strconv.Itoa(runs[0].group),
			ColorClass:  runs[0].colorClass,
		}
	}
	entry := IndexEntry{Highlighted: true}
	for _, r := range runs {
		ir := InlineRange{GroupID: strconv.Itoa(r.group), ColorClass: r.colorClass}
		if r.start > 0 {
			ir.StartOffset = r.start
		}
		if r.end < pos {
			ir.EndOffset = r.end
		}
		entry.InlineRanges = append(entry.InlineRanges, ir)
	}
	return entry
}

type replay struct {
	span       textSpan
	colorClass string
	group      int
}

// Restore applies index to the container. The container must hold the same
// children with the same text as the one the index was taken from. Entries
// are replayed in order with their recorded group ids.
func (c *IndexCodec) Restore(index Index) {
	log := c.log.WithField("method", "IndexCodec.Restore")
	units := c.units()
	if len(index) != len(units) {
		log.Warnf("index has %d entries but the container has %d children", len(index), len(units))
	}

	flat := newTextIndex(c.root)
	var plan []replay
	for i, entry := range index {
		if i >= len(units) {
			log.Warnf("skipping %d entries without a matching child", len(index)-i)
			break
		}
		if !entry.Highlighted {
			continue
		}
		texts := units[i].texts()
		if len(texts) == 0 {
			log.Warnf("entry %d is highlighted but child %d has no text", i, i)
			continue
		}
		base := flat.starts[flat.pos[texts[0]]]
		total := 0
		for _, t := range texts {
			total += dom.Length(t)
		}

		slices := entry.InlineRanges
		if len(slices) == 0 {
			slices = []InlineRange{{GroupID: entry.GroupID, ColorClass: entry.ColorClass}}
		}
		for _, ir := range slices {
			step, ok := c.plan(ir, base, total)
			if !ok {
				log.Warnf("skipping invalid range %+v of entry %d", ir, i)
				continue
			}
			plan = append(plan, step)
		}
	}

	for _, step := range plan {
		c.mutator.apply(c.walker.spans(step.span), step.colorClass, step.group)
	}
	c.mutator.finish()
}

// plan turns an inline range into a span of the container by building the
// range a user selection of the same characters would produce.
func (c *IndexCodec) plan(ir InlineRange, base, total int) (replay, bool) {
	group, err := strconv.Atoi(ir.GroupID)
	if err != nil || group <= 0 || !c.markers.knows(ir.ColorClass) {
		return replay{}, false
	}
	end := ir.EndOffset
	if end == 0 {
		end = total
	}
	if ir.StartOffset < 0 || ir.StartOffset >= end || end > total {
		return replay{}, false
	}
	r := dom.NewRangeFromTextOffsets(c.root, base+ir.StartOffset, base+end)
	span, ok := c.walker.resolve(r)
	if !ok {
		return replay{}, false
	}
	return replay{span: span, colorClass: ir.ColorClass, group: group}, true
}
