package text

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDocument(t *testing.T) {
	html := "<h2>Notes</h2>\n" +
		`<p>an <span class="italic" data-contents="aside" data-processed="true">aside</span> here</p>` + "\n" +
		"<ul>\n<li>one</li>\n<li>two<ul>\n<li>deep</li>\n</ul></li>\n</ul>\n" +
		"<p>line<br/>break</p>"

	buf := &bytes.Buffer{}
	r, err := New(buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderDocument(html))

	expected := "Notes\n\n" +
		"an aside here\n\n" +
		"- one\n" +
		"- two\n" +
		"  - deep\n\n" +
		"line\nbreak\n"
	assert.Equal(t, expected, buf.String())
}

func TestRenderDocument_Empty(t *testing.T) {
	buf := &bytes.Buffer{}
	r, _ := New(buf)
	require.NoError(t, r.RenderDocument(""))
	assert.Empty(t, buf.String())
}
