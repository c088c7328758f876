// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/regexmark/pkg/ui/layout"
	"github.com/arthur-debert/regexmark/pkg/ui/styles"
	"github.com/charmbracelet/lipgloss"
)

// Renderer styles decorated documents with the class styles of a registry
type Renderer struct {
	output io.Writer
	styles *styles.Registry
	width  int
}

// New creates a new terminal renderer. A nil registry uses the built-in
// styles; width 0 disables wrapping.
func New(w io.Writer, reg *styles.Registry, width int) (*Renderer, error) {
	if reg == nil {
		reg = styles.Default()
	}
	return &Renderer{output: w, styles: reg, width: width}, nil
}

// RenderDocument writes a decorated HTML document with styled spans.
func (r *Renderer) RenderDocument(html string) error {
	blocks, err := layout.Parse(html)
	if err != nil {
		return err
	}
	_, err = io.WriteString(r.output, r.Styled(blocks))
	return err
}

// Styled lays blocks out, rendering every run with the combined style of
// its classes.
func (r *Renderer) Styled(blocks []layout.Block) string {
	var b strings.Builder
	for i, block := range blocks {
		if i > 0 {
			b.WriteString(layout.Separator(blocks[i-1], block))
		}
		b.WriteString(r.block(block))
	}
	if len(blocks) > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) block(block layout.Block) string {
	if block.Kind == "hr" {
		return r.styles.Get("muted").Render(strings.Repeat("─", max(r.width, 20)))
	}
	prefix := layout.Prefix(block)
	indent := strings.Repeat(" ", lipgloss.Width(prefix))

	var out []string
	for _, line := range layout.Lines(block) {
		var sb strings.Builder
		for _, run := range line {
			sb.WriteString(r.run(run))
		}
		text := sb.String()
		if r.width > 0 && block.Kind != "pre" {
			text = wrap(text, max(r.width-len(indent), 1))
		}
		out = append(out, strings.Split(text, "\n")...)
	}
	for i := range out {
		if i == 0 {
			out[i] = prefix + out[i]
		} else {
			out[i] = indent + out[i]
		}
	}
	return strings.Join(out, "\n")
}

// wrap folds styled text at width cells. lipgloss pads wrapped lines to the
// full width; the padding is dropped again.
func wrap(text string, width int) string {
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) run(run layout.Run) string {
	if len(run.Classes) == 0 {
		return run.Text
	}
	return r.styles.Combine(run.Classes...).Render(run.Text)
}

// RenderError renders an error with the error style
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintln(r.output, r.styles.Get("error").Render("Error: ")+err.Error())
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, r.styles.Get("info").Render(msg))
	return err
}
