// Package json writes decorations as JSON for editor integrations.
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/regexmark/pkg/errors"
)

// Span is one decoration as an editor host applies it.
type Span struct {
	From  int    `json:"from"`
	To    int    `json:"to"`
	Kind  string `json:"kind"`
	Class string `json:"class"`
	Text  string `json:"text"`
	HTML  string `json:"html,omitempty"`
	// Rule is the index of the rule that produced the span, or -1.
	Rule int `json:"rule"`
}

// Renderer provides JSON output for machine consumption
type Renderer struct {
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return &Renderer{encoder: encoder}
}

// RenderSpans writes spans under a "decorations" key. An empty list is
// written as [] rather than null.
func (r *Renderer) RenderSpans(spans []Span) error {
	if spans == nil {
		spans = []Span{}
	}
	return r.encoder.Encode(map[string][]Span{"decorations": spans})
}

// RenderError renders an error with its code
func (r *Renderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]string{
		"error": err.Error(),
		"code":  string(errors.GetErrorCode(err)),
	})
}
