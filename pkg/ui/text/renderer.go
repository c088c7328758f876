// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/regexmark/pkg/ui/layout"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderDocument writes the visible text of a decorated HTML document.
func (r *Renderer) RenderDocument(html string) error {
	blocks, err := layout.Parse(html)
	if err != nil {
		return err
	}
	_, err = io.WriteString(r.output, Plain(blocks))
	return err
}

// Plain lays blocks out as unstyled text with a trailing newline.
func Plain(blocks []layout.Block) string {
	var b strings.Builder
	for i, block := range blocks {
		if i > 0 {
			b.WriteString(layout.Separator(blocks[i-1], block))
		}
		prefix := layout.Prefix(block)
		for j, line := range layout.Lines(block) {
			if j > 0 {
				b.WriteString("\n")
			}
			b.WriteString(prefix)
			for _, run := range line {
				b.WriteString(run.Text)
			}
		}
	}
	if len(blocks) > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
