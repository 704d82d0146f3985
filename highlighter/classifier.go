package highlighter

import (
	"github.com/andybalholm/cascadia"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// excludedTags are form controls and raw-text containers whose content is
// not part of the rendered document text.
var excludedTags = map[string]struct{}{
	"textarea": {},
	"input":    {},
	"select":   {},
	"option":   {},
	"optgroup": {},
	"button":   {},
	"script":   {},
	"style":    {},
	"noscript": {},
	"template": {},
	"iframe":   {},
	"title":    {},
}

func compileSelectors(selectors []string) ([]cascadia.Selector, error) {
	compiled := make([]cascadia.Selector, 0, len(selectors))
	for _, s := range selectors {
		sel, err := cascadia.Compile(s)
		if err != nil {
			return nil, errors.Wrapf(err, "selector %q", s)
		}
		compiled = append(compiled, sel)
	}
	return compiled, nil
}

func matchAny(selectors []cascadia.Selector, n *html.Node) bool {
	for _, sel := range selectors {
		if sel.Match(n) {
			return true
		}
	}
	return false
}

// Classifier decides which nodes of a container may be highlighted.
type Classifier struct {
	root      *html.Node
	blackList []cascadia.Selector
	whiteList []cascadia.Selector
}

// NewClassifier compiles the black and white lists for nodes below root.
func NewClassifier(root *html.Node, blackList, whiteList []string) (*Classifier, error) {
	black, err := compileSelectors(blackList)
	if err != nil {
		return nil, errors.Wrap(err, "containersBlackList")
	}
	white, err := compileSelectors(whiteList)
	if err != nil {
		return nil, errors.Wrap(err, "containersWhiteList")
	}
	return &Classifier{root: root, blackList: black, whiteList: white}, nil
}

// IsEligible reports whether n may be wrapped in a marker. Nodes inside form
// controls are never eligible. Otherwise the nearest element between n and
// the container root that matches either list decides: a white list match
// rescues, a black list match excludes.
func (c *Classifier) IsEligible(n *html.Node) bool {
	if n == nil || n == c.root {
		return n != nil
	}
	e := n
	if n.Type != html.ElementNode {
		e = n.Parent
	}

	decided, eligible := false, true
	for ; e != nil; e = e.Parent {
		if e == c.root {
			return eligible
		}
		if e.Type != html.ElementNode {
			continue
		}
		if _, ok := excludedTags[e.Data]; ok && e.Namespace == "" {
			return false
		}
		if decided {
			continue
		}
		switch {
		case matchAny(c.whiteList, e):
			decided = true
		case matchAny(c.blackList, e):
			decided, eligible = true, false
		}
	}
	// n is not inside the container.
	return false
}
