package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestParseFragmentRoundTrip(t *testing.T) {
	tests := []string{
		"plain text",
		"<p>We <strong>all</strong> live</p>",
		`<div class="a b">x<br/>y</div>`,
		"<textarea>Leave me alone...</textarea>",
	}
	for _, in := range tests {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			root, err := ParseFragment(in)
			require.NoError(t, err)
			again, err := ParseFragment(InnerHTML(root))
			require.NoError(t, err)
			assert.Equal(t, InnerHTML(root), InnerHTML(again))
		})
	}
}

func TestSplitText(t *testing.T) {
	root := MustParseFragment("héllo world")
	text := root.FirstChild
	rest := SplitText(text, 5)

	assert.Equal(t, "héllo", text.Data)
	assert.Equal(t, " world", rest.Data)
	assert.Equal(t, rest, text.NextSibling)
	assert.Equal(t, root, rest.Parent)
	assert.Equal(t, "héllo world", InnerHTML(root))

	tail := SplitText(rest, 100)
	assert.Equal(t, "", tail.Data)
	assert.Equal(t, " world", rest.Data)
}

func TestMoveDataAfter(t *testing.T) {
	root := MustParseFragment("héllo world")
	text := root.FirstChild
	remnant := NewText("")
	InsertAfter(remnant, text)

	MoveDataAfter(text, 2, remnant)
	assert.Equal(t, "hé", text.Data)
	assert.Equal(t, "llo world", remnant.Data)
	assert.Equal(t, remnant, text.NextSibling)

	MoveDataAfter(text, -1, remnant)
	assert.Equal(t, "", text.Data)
	assert.Equal(t, "héllo world", remnant.Data)
}

func TestSubstringData(t *testing.T) {
	text := NewText("héllo")
	assert.Equal(t, "él", SubstringData(text, 1, 2))
	assert.Equal(t, "llo", SubstringData(text, 2, 10))
	assert.Equal(t, "", SubstringData(text, 9, 1))
}

func TestWrapAndUnwrap(t *testing.T) {
	root := MustParseFragment("<p>a<b>b</b>c</p>")
	p := root.FirstChild
	bold := ChildAt(p, 1)
	require.Equal(t, "b", bold.Data)

	span := NewElement("span")
	Wrap(bold, span)
	assert.Equal(t, "<p>a<span><b>b</b></span>c</p>", InnerHTML(root))

	moved := Unwrap(span)
	require.Len(t, moved, 1)
	assert.Equal(t, bold, moved[0])
	assert.Equal(t, "<p>a<b>b</b>c</p>", InnerHTML(root))
	assert.Nil(t, span.Parent)
}

func TestAttributes(t *testing.T) {
	n := NewElement("span")
	SetAttribute(n, "class", "hl")
	SetAttribute(n, "data-hl-group", "1")
	SetAttribute(n, "class", "hl-red")

	assert.Equal(t, `<span class="hl-red" data-hl-group="1"></span>`, OuterHTML(n))
	assert.True(t, HasClass(n, "hl-red"))
	assert.False(t, HasClass(n, "hl"))

	RemoveAttribute(n, "class")
	assert.False(t, HasAttribute(n, "class"))
	assert.Equal(t, "1", GetAttribute(n, "data-hl-group"))

	c := CloneShallow(n)
	SetAttribute(c, "data-hl-group", "2")
	assert.Equal(t, "1", GetAttribute(n, "data-hl-group"))
}

func TestTreeOrder(t *testing.T) {
	root := MustParseFragment("<p>a<b>b<i>c</i></b>d</p>e")
	var got string
	for _, n := range TextNodes(root) {
		got += n.Data
	}
	assert.Equal(t, "abcde", got)
	assert.Equal(t, "abcde", TextContent(root))

	p := root.FirstChild
	assert.Equal(t, root.LastChild, NextSkippingChildren(p, root))
	assert.Nil(t, NextSkippingChildren(root.LastChild, root))
	assert.True(t, Contains(root, p.FirstChild))
	assert.False(t, Contains(p, root))
	assert.Equal(t, 2, ChildCount(root))
	assert.Nil(t, ChildAt(root, 2))
}

func TestRangeSetters(t *testing.T) {
	root := MustParseFragment("<p>one</p><p>two</p><p>three</p>")
	second := ChildAt(root, 1)

	r := NewRange(root)
	assert.True(t, r.Collapsed())

	r.SelectNode(second)
	assert.Equal(t, root, r.StartContainer)
	assert.Equal(t, 1, r.StartOffset)
	assert.Equal(t, 2, r.EndOffset)

	r.SelectNodeContents(root)
	assert.Equal(t, 0, r.StartOffset)
	assert.Equal(t, 3, r.EndOffset)

	c := r.Clone()
	c.Collapse(true)
	assert.True(t, c.Collapsed())
	assert.False(t, r.Collapsed())
}

func TestNewRangeFromTextOffsets(t *testing.T) {
	root := MustParseFragment("<p>We <strong>all</strong> live</p>")
	texts := TextNodes(root)
	require.Len(t, texts, 3)

	tests := []struct {
		name               string
		start, end         int
		startNode, endNode *html.Node
		startOff, endOff   int
	}{
		{"inside first", 0, 2, texts[0], texts[0], 0, 2},
		{"end on node boundary", 0, 3, texts[0], texts[0], 0, 3},
		{"start on node boundary", 3, 6, texts[1], texts[1], 0, 3},
		{"across nodes", 1, 8, texts[0], texts[2], 1, 2},
		{"whole", 0, 11, texts[0], texts[2], 0, 5},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := NewRangeFromTextOffsets(root, tt.start, tt.end)
			assert.Equal(t, tt.startNode, r.StartContainer)
			assert.Equal(t, tt.startOff, r.StartOffset)
			assert.Equal(t, tt.endNode, r.EndContainer)
			assert.Equal(t, tt.endOff, r.EndOffset)
		})
	}
}
