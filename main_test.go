package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	config := writeFile(t, dir, "highlight.yaml", "colors:\n  red: hl-red\n")
	page := writeFile(t, dir, "page.html", "<p>I should end up partially highlighted</p>")
	index := writeFile(t, dir, "page.json",
		`[{"highlighted":true,"inlineRanges":[{"groupId":"1","colorClass":"hl-red","startOffset":16,"endOffset":25}]}]`)
	log, _ := test.NewNullLogger()

	var out bytes.Buffer
	require.NoError(t, run(&out, log, config, index, false, page))
	highlighted := `<p>I should end up <span class="hl-red" data-hl-group="1">partially</span> highlighted</p>` + "\n"
	assert.Equal(t, highlighted, out.String())

	marked := writeFile(t, dir, "marked.html", strings.TrimSpace(highlighted))
	out.Reset()
	require.NoError(t, run(&out, log, config, "", true, marked))
	assert.JSONEq(t,
		`[{"highlighted":true,"inlineRanges":[{"groupId":"1","colorClass":"hl-red","startOffset":16,"endOffset":25}]}]`,
		out.String())

	assert.Error(t, run(&out, log, config, "", false, filepath.Join(dir, "missing.html")))
	bad := writeFile(t, dir, "bad.json", "{")
	assert.Error(t, run(&out, log, config, bad, false, page))
}
