// Package highlighter marks ranges of an HTML tree with marker elements,
// snapshots the marker layout into a serializable index and removes markers
// without disturbing the original text node boundaries.
//
// A Highlighter is synchronous and keeps no locks. Callers must serialize
// operations on one Highlighter and must not mutate its container while an
// operation runs.
package highlighter

import (
	"github.com/andybalholm/cascadia"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/heathj/gohighlight/dom"
)

// Highlighter is the entry point used by UI code.
type Highlighter struct {
	cfg         Config
	activeColor string
	activeClass string
	log         logrus.FieldLogger

	tree       *tree
	classifier *Classifier
	walker     *RangeWalker
	mutator    *Mutator
	codec      *IndexCodec
	remover    *Remover
}

// New creates a Highlighter working below doc, or below the first element of
// doc matching cfg.ContainerSelector.
func New(doc *html.Node, cfg Config, opts ...Option) (*Highlighter, error) {
	if doc == nil {
		return nil, ErrNoContainer
	}
	cfg.defaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	h := &Highlighter{
		cfg:         cfg,
		activeClass: cfg.ClassName,
		log:         logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}

	root := doc
	if cfg.ContainerSelector != "" {
		sel, err := cascadia.Compile(cfg.ContainerSelector)
		if err != nil {
			return nil, errors.Wrapf(err, "containerSelector %q", cfg.ContainerSelector)
		}
		if root = sel.MatchFirst(doc); root == nil {
			return nil, errors.Wrapf(ErrNoContainer, "selector %q", cfg.ContainerSelector)
		}
	}

	classifier, err := NewClassifier(root, cfg.ContainersBlackList, cfg.ContainersWhiteList)
	if err != nil {
		return nil, err
	}
	h.classifier = classifier
	h.tree = &tree{
		root:           root,
		markers:        newMarkerSet(cfg.markerClasses()),
		ledger:         newSplitLedger(),
		keepEmptyNodes: cfg.KeepEmptyNodes,
		log:            h.log,
	}
	h.walker = &RangeWalker{tree: h.tree, classifier: classifier}
	h.mutator = &Mutator{tree: h.tree}
	h.codec = &IndexCodec{tree: h.tree, walker: h.walker, mutator: h.mutator}
	h.remover = &Remover{tree: h.tree}
	return h, nil
}

// Root returns the container the highlighter operates on.
func (h *Highlighter) Root() *html.Node {
	return h.tree.root
}

// Classifier returns the eligibility rules built from the container lists.
func (h *Highlighter) Classifier() *Classifier {
	return h.classifier
}

// SetActiveColor selects the color used by later HighlightRanges calls.
func (h *Highlighter) SetActiveColor(name string) error {
	class, ok := h.cfg.Colors[name]
	if !ok {
		return errors.Wrapf(ErrUnknownColor, "%q", name)
	}
	h.activeColor, h.activeClass = name, class
	return nil
}

// ActiveColor returns the selected color name, empty for the default class.
func (h *Highlighter) ActiveColor() string {
	return h.activeColor
}

// HighlightRanges highlights each range with the active color, one group per
// range. Ranges outside the container or covering nothing eligible are
// ignored. All ranges are resolved before the tree is touched, so several
// ranges may point into the same text node.
func (h *Highlighter) HighlightRanges(ranges ...*dom.Range) {
	log := h.log.WithField("method", "HighlightRanges")
	h.tree.adopt()

	spans := make([]textSpan, 0, len(ranges))
	for _, r := range ranges {
		if span, ok := h.walker.resolve(r); ok {
			spans = append(spans, span)
		}
	}
	for _, span := range spans {
		covered := h.walker.spans(span)
		if len(covered) == 0 {
			log.Debugf("nothing to highlight in [%d, %d)", span.start, span.end)
			continue
		}
		h.mutator.Apply(covered, h.activeClass)
	}
}

// GetHighlightIndex snapshots the current markers.
func (h *Highlighter) GetHighlightIndex() Index {
	h.tree.adopt()
	return h.codec.Snapshot()
}

// HighlightFromIndex replays index onto the container, which must hold the
// markup the index was taken from.
func (h *Highlighter) HighlightFromIndex(index Index) {
	h.tree.adopt()
	h.codec.Restore(index)
}

// ClearHighlights removes every marker.
func (h *Highlighter) ClearHighlights() {
	h.tree.adopt()
	h.remover.ClearAll()
}

// ClearSingleHighlight removes the marker n belongs to. n may be the marker
// itself or any node inside it. Remaining groups are renumbered to 1..n.
func (h *Highlighter) ClearSingleHighlight(n *html.Node) {
	h.tree.adopt()
	marker := h.tree.markers.closest(n, h.tree.root)
	if marker == nil {
		return
	}
	h.remover.ClearOne(marker)
	h.mutator.renumber()
	h.tree.syncSplitAttrs()
}

// ClearGroup removes every marker of the given group, as numbered by the
// markers and by GetHighlightIndex. Remaining groups are renumbered to 1..n.
func (h *Highlighter) ClearGroup(group int) {
	h.tree.adopt()
	h.remover.ClearGroup(group)
	h.mutator.renumber()
	h.tree.syncSplitAttrs()
}

// HandleClick clears the marker under target when clearOnClick is set and
// reports whether it did.
func (h *Highlighter) HandleClick(target *html.Node) bool {
	if !h.cfg.ClearOnClick {
		return false
	}
	if h.tree.markers.closest(target, h.tree.root) == nil {
		return false
	}
	h.ClearSingleHighlight(target)
	return true
}

// Markers returns the marker elements of the container in tree order.
func (h *Highlighter) Markers() []*html.Node {
	return h.tree.markers.all(h.tree.root)
}
