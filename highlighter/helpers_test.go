package highlighter

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/heathj/gohighlight/dom"
)

var testColors = map[string]string{
	"red":  "hl-red",
	"blue": "hl-blue",
}

func newTestHighlighter(t *testing.T, markup string, cfg Config) (*Highlighter, *html.Node) {
	t.Helper()
	root, err := dom.ParseFragment(markup)
	require.NoError(t, err)
	log, _ := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	h, err := New(root, cfg, WithLogger(log))
	require.NoError(t, err)
	return h, root
}

// selectText returns a range over the first occurrence of needle in the
// flattened text of root.
func selectText(t *testing.T, root *html.Node, needle string) *dom.Range {
	t.Helper()
	text := dom.TextContent(root)
	i := strings.Index(text, needle)
	require.GreaterOrEqual(t, i, 0, "%q not found in %q", needle, text)
	start := utf8.RuneCountInString(text[:i])
	return dom.NewRangeFromTextOffsets(root, start, start+utf8.RuneCountInString(needle))
}

func selectAll(root *html.Node) *dom.Range {
	r := dom.NewRange(root)
	r.SelectNodeContents(root)
	return r
}

func groupsOf(index Index) map[string]struct{} {
	groups := map[string]struct{}{}
	for _, e := range index {
		if e.GroupID != "" {
			groups[e.GroupID] = struct{}{}
		}
		for _, ir := range e.InlineRanges {
			groups[ir.GroupID] = struct{}{}
		}
	}
	return groups
}

func countTextNodes(n *html.Node) int {
	return len(dom.TextNodes(n))
}
