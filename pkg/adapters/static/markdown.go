package static

import (
	"bytes"

	"github.com/arthur-debert/regexmark/pkg/errors"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM, emoji.Emoji),
	goldmark.WithRendererOptions(html.WithXHTML()),
)

// RenderMarkdown converts a markdown body to XHTML that Process can parse.
func RenderMarkdown(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(src, &buf); err != nil {
		return "", errors.Wrap(err, errors.ErrInvalidInput, "cannot render markdown")
	}
	return buf.String(), nil
}

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("span", "code", "pre", "div")
	p.AllowDataAttributes()
	return p
}

// Sanitize strips unsafe markup while keeping decoration spans and their
// data attributes.
func Sanitize(html string) string {
	return policy.Sanitize(html)
}
