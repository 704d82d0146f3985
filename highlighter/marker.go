package highlighter

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/heathj/gohighlight/dom"
)

const (
	markerTag       = "span"
	groupAttr       = "data-hl-group"
	beforeSplitAttr = "data-before-was-split"
	afterSplitAttr  = "data-after-was-split"
)

// markerSet recognizes and creates marker elements.
type markerSet struct {
	classes map[string]struct{}
}

func newMarkerSet(classes []string) markerSet {
	s := markerSet{classes: make(map[string]struct{}, len(classes))}
	for _, c := range classes {
		s.classes[c] = struct{}{}
	}
	return s
}

func (s markerSet) knows(class string) bool {
	_, ok := s.classes[class]
	return ok
}

func (s markerSet) isMarker(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode || n.Data != markerTag || n.Namespace != "" {
		return false
	}
	if !dom.HasAttribute(n, groupAttr) {
		return false
	}
	for _, c := range dom.ClassList(n) {
		if s.knows(c) {
			return true
		}
	}
	return false
}

// create returns a detached marker. Attribute order is fixed so rendered
// markup is stable.
func (s markerSet) create(colorClass string, group int) *html.Node {
	m := dom.NewElement(markerTag)
	dom.SetAttribute(m, "class", colorClass)
	dom.SetAttribute(m, groupAttr, strconv.Itoa(group))
	return m
}

// enclosing returns the marker that directly holds t, if any.
func (s markerSet) enclosing(t *html.Node) *html.Node {
	if t != nil && s.isMarker(t.Parent) {
		return t.Parent
	}
	return nil
}

// closest returns n or its nearest ancestor that is a marker, stopping at root.
func (s markerSet) closest(n, root *html.Node) *html.Node {
	for c := n; c != nil; c = c.Parent {
		if s.isMarker(c) {
			return c
		}
		if c == root {
			break
		}
	}
	return nil
}

// all returns every marker below root in tree order.
func (s markerSet) all(root *html.Node) []*html.Node {
	var markers []*html.Node
	w := dom.NewTreeWalker(root, s.isMarker)
	for n := w.NextNode(); n != nil; n = w.NextNode() {
		markers = append(markers, n)
	}
	return markers
}

func groupOf(m *html.Node) int {
	g, err := strconv.Atoi(dom.GetAttribute(m, groupAttr))
	if err != nil {
		return 0
	}
	return g
}

func setGroup(m *html.Node, group int) {
	dom.SetAttribute(m, groupAttr, strconv.Itoa(group))
}

// colorOf returns the first class of m that is a marker class.
func (s markerSet) colorOf(m *html.Node) string {
	for _, c := range dom.ClassList(m) {
		if s.knows(c) {
			return c
		}
	}
	return ""
}

// setColor replaces the marker class of m and keeps any other class.
func (s markerSet) setColor(m *html.Node, colorClass string) {
	var classes []string
	placed := false
	for _, c := range dom.ClassList(m) {
		if s.knows(c) {
			if placed {
				continue
			}
			c, placed = colorClass, true
		}
		classes = append(classes, c)
	}
	if !placed {
		classes = append([]string{colorClass}, classes...)
	}
	dom.SetAttribute(m, "class", strings.Join(classes, " "))
}

// groupIDs returns the distinct groups used below root in ascending order.
func (s markerSet) groupIDs(root *html.Node) []int {
	seen := map[int]struct{}{}
	var ids []int
	for _, m := range s.all(root) {
		g := groupOf(m)
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		ids = append(ids, g)
	}
	sort.Ints(ids)
	return ids
}

// ranks maps every group below root to its position in 1..n.
func (s markerSet) ranks(root *html.Node) map[int]int {
	ranks := map[int]int{}
	for i, g := range s.groupIDs(root) {
		ranks[g] = i + 1
	}
	return ranks
}

func (s markerSet) maxGroup(root *html.Node) int {
	ids := s.groupIDs(root)
	if len(ids) == 0 {
		return 0
	}
	return ids[len(ids)-1]
}

// firstText and lastText return the outermost text nodes of a piece, which
// is either a text node or a marker.
func firstText(n *html.Node) *html.Node {
	if n.Type == html.TextNode {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := firstText(c); t != nil {
			return t
		}
	}
	return nil
}

func lastText(n *html.Node) *html.Node {
	if n.Type == html.TextNode {
		return n
	}
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		if t := lastText(c); t != nil {
			return t
		}
	}
	return nil
}

func isEmptyText(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode && n.Data == ""
}

// nextSibling and prevSibling skip zero-length text nodes.
func nextSibling(n *html.Node) *html.Node {
	c := n.NextSibling
	for isEmptyText(c) {
		c = c.NextSibling
	}
	return c
}

func prevSibling(n *html.Node) *html.Node {
	c := n.PrevSibling
	for isEmptyText(c) {
		c = c.PrevSibling
	}
	return c
}
