// Package layout flattens decorated HTML into lines of classed text runs,
// the common input of the text and terminal renderers.
package layout

import (
	"strings"

	"github.com/arthur-debert/regexmark/pkg/adapters/static"
	"github.com/arthur-debert/regexmark/pkg/decoration"
	"github.com/beevik/etree"
)

// Run is a stretch of text with the classes of its enclosing spans,
// outermost first.
type Run struct {
	Text    string
	Classes []string
}

// Block is one rendered paragraph, heading, list item or code block.
type Block struct {
	Kind  string // element tag the block came from
	Depth int    // list and quote nesting
	Runs  []Run
}

// Text joins the runs of b.
func (b Block) Text() string {
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

var blockTags = map[string]bool{
	"p": true, "li": true, "pre": true, "blockquote": true, "tr": true, "hr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

var nestTags = map[string]bool{"ul": true, "ol": true, "blockquote": true}

// structural classes given to elements that carry no rule class
var tagClasses = map[string]string{
	"h1": "heading", "h2": "heading", "h3": "heading",
	"h4": "heading", "h5": "heading", "h6": "heading",
	"code": "code", "blockquote": "quote",
	"strong": "bold", "b": "bold", "em": "italic", "i": "italic",
	"del": "strike", "s": "strike", "u": "underline",
}

type flattener struct {
	blocks  []Block
	current *Block
	classes []string
	depth   int
	pre     bool
}

// Parse flattens an HTML fragment.
func Parse(html string) ([]Block, error) {
	root, err := static.ParseHTML(html)
	if err != nil {
		return nil, err
	}
	return Flatten(root), nil
}

// Flatten walks root in document order.
func Flatten(root *etree.Element) []Block {
	f := &flattener{}
	f.element(root)
	f.flush()
	return f.blocks
}

func (f *flattener) flush() {
	if f.current == nil {
		return
	}
	b := f.current
	if n := len(b.Runs); n > 0 && b.Kind != "pre" {
		b.Runs[n-1].Text = strings.TrimRight(b.Runs[n-1].Text, " ")
	}
	if b.Kind == "pre" && len(b.Runs) > 0 {
		n := len(b.Runs)
		b.Runs[n-1].Text = strings.TrimRight(b.Runs[n-1].Text, "\n")
	}
	if strings.TrimSpace(b.Text()) != "" || b.Kind == "hr" {
		f.blocks = append(f.blocks, *b)
	}
	f.current = nil
}

func (f *flattener) open(kind string) {
	f.flush()
	f.current = &Block{Kind: kind, Depth: f.depth}
}

func (f *flattener) text(s string) {
	if !f.pre {
		s = collapse(s)
	}
	if s == "" {
		return
	}
	if f.current == nil {
		if strings.TrimSpace(s) == "" {
			return
		}
		f.open("p")
	}
	if !f.pre && f.lineStart() {
		if s = strings.TrimLeft(s, " "); s == "" {
			return
		}
	}
	classes := append([]string(nil), f.classes...)
	f.current.Runs = append(f.current.Runs, Run{Text: s, Classes: classes})
}

// lineStart reports whether the next run begins a line of the current block.
func (f *flattener) lineStart() bool {
	runs := f.current.Runs
	return len(runs) == 0 || strings.HasSuffix(runs[len(runs)-1].Text, "\n")
}

func (f *flattener) element(el *etree.Element) {
	tag := strings.ToLower(el.Tag)
	block := blockTags[tag]
	if block {
		f.open(tag)
	}
	if tag == "br" && f.current != nil {
		f.current.Runs = append(f.current.Runs, Run{Text: "\n"})
	}
	if nestTags[tag] {
		f.depth++
		defer func() { f.depth-- }()
	}
	if tag == "pre" {
		f.pre = true
		defer func() { f.pre = false }()
	}

	pushed := 0
	if class := tagClasses[tag]; class != "" {
		f.classes = append(f.classes, class)
		pushed++
	}
	if class := el.SelectAttrValue("class", ""); class != "" && tag == "span" {
		if class == decoration.ConcealClass {
			return
		}
		f.classes = append(f.classes, strings.Fields(class)...)
		pushed += len(strings.Fields(class))
	}

	for i, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			if tag == "tr" {
				continue
			}
			f.text(t.Data)
		case *etree.Element:
			if tag == "tr" && i > 0 && isCell(t) && f.current != nil && len(f.current.Runs) > 0 {
				f.text(" | ")
			}
			f.element(t)
		}
	}
	f.classes = f.classes[:len(f.classes)-pushed]
	if block {
		f.flush()
	}
}

func isCell(el *etree.Element) bool {
	return el.Tag == "td" || el.Tag == "th"
}

// collapse folds whitespace runs the way a browser would.
func collapse(s string) string {
	if s == "" {
		return s
	}
	fields := strings.Fields(s)
	out := strings.Join(fields, " ")
	if isSpace(s[0]) {
		out = " " + out
	}
	if len(fields) > 0 && isSpace(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r'
}

// Prefix is the indentation and bullet written before a block.
func Prefix(b Block) string {
	switch {
	case b.Kind == "li":
		return strings.Repeat("  ", max(b.Depth-1, 0)) + "- "
	case b.Kind == "pre":
		return ""
	default:
		return strings.Repeat("  ", b.Depth)
	}
}

// Separator is written between prev and next. List items stay together.
func Separator(prev, next Block) string {
	if prev.Kind == "li" && next.Kind == "li" {
		return "\n"
	}
	if prev.Kind == "tr" && next.Kind == "tr" {
		return "\n"
	}
	return "\n\n"
}

// Lines splits the runs of b at hard line breaks, keeping classes.
func Lines(b Block) [][]Run {
	lines := [][]Run{nil}
	for _, r := range b.Runs {
		parts := strings.Split(r.Text, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part != "" {
				last := len(lines) - 1
				lines[last] = append(lines[last], Run{Text: part, Classes: r.Classes})
			}
		}
	}
	return lines
}
