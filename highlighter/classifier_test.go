package highlighter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heathj/gohighlight/dom"
)

func TestClassifierIsEligible(t *testing.T) {
	root := dom.MustParseFragment(`<p>free</p>` +
		`<div class="bl">outside<div class="wh">inside<div class="bl">again<span class="wh">rescued</span></div></div></div>` +
		`<textarea>typed</textarea><div class="wh"><button>press</button></div>` +
		`<div class="bl wh">both</div>`)
	c, err := NewClassifier(root, []string{".bl"}, []string{".wh"})
	require.NoError(t, err)

	want := map[string]bool{
		"free":    true,
		"outside": false,
		"inside":  true,
		"again":   false,
		"rescued": true,
		"typed":   false,
		"press":   false,
		"both":    true,
	}
	for _, text := range dom.TextNodes(root) {
		expected, ok := want[text.Data]
		require.True(t, ok, text.Data)
		assert.Equal(t, expected, c.IsEligible(text), text.Data)
	}
}

func TestClassifierOutsideContainer(t *testing.T) {
	root := dom.MustParseFragment("<p>in</p>")
	other := dom.MustParseFragment("<p>out</p>")
	c, err := NewClassifier(root, nil, nil)
	require.NoError(t, err)

	assert.True(t, c.IsEligible(root))
	assert.True(t, c.IsEligible(root.FirstChild))
	assert.False(t, c.IsEligible(other.FirstChild.FirstChild))
	assert.False(t, c.IsEligible(nil))
}

func TestClassifierBadSelector(t *testing.T) {
	_, err := NewClassifier(dom.NewElement("div"), []string{"[["}, nil)
	assert.Error(t, err)
}
