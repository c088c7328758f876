// Package ui renders decorated documents in different formats.
// It supports terminal (styled), text (plain) and raw HTML output.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/regexmark/pkg/errors"
	"github.com/arthur-debert/regexmark/pkg/ui/styles"
	"github.com/arthur-debert/regexmark/pkg/ui/terminal"
	"github.com/arthur-debert/regexmark/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderDocument renders a decorated HTML document
	RenderDocument(html string) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// Options tune the terminal renderer.
type Options struct {
	Styles *styles.Registry
	Width  int
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer, opts Options) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output, opts)
		}
		// not a terminal we can inspect
		return NewRenderer(FormatText, output, opts)
	case FormatTerminal:
		return terminal.New(output, opts.Styles, opts.Width)
	case FormatText:
		return text.New(output)
	case FormatHTML:
		return &htmlRenderer{output: output}, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}

type htmlRenderer struct {
	output io.Writer
}

func (r *htmlRenderer) RenderDocument(html string) error {
	_, err := fmt.Fprintln(r.output, html)
	return err
}

func (r *htmlRenderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "<!-- error: %v -->\n", err)
	return err2
}

func (r *htmlRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintf(r.output, "<!-- %s -->\n", msg)
	return err
}
