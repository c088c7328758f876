// Package static decorates rendered HTML for non-interactive display.
//
// Text nodes inside paragraph-like elements are scanned and replaced in
// place by the decorated spans. Hidden delimiters are removed outright,
// since nobody edits the output.
package static

import (
	"sort"
	"strings"

	"github.com/arthur-debert/regexmark/pkg/decoration"
	"github.com/arthur-debert/regexmark/pkg/errors"
	"github.com/arthur-debert/regexmark/pkg/logging"
	"github.com/arthur-debert/regexmark/pkg/scanner"
	"github.com/beevik/etree"
)

// BlockTags are the elements whose text is scanned.
var BlockTags = []string{"p", "li", "h1", "h2", "h3", "h4", "h5", "h6", "td", "th", "code"}

// BlockClasses mark further elements to scan, whatever their tag.
var BlockClasses = []string{"callout-title-inner", "table-cell-wrapper"}

// Processor decorates HTML trees with a scanner.
type Processor struct {
	scanner *scanner.Scanner
	pass    scanner.Pass
}

// New creates a processor running pass on every block.
func New(s *scanner.Scanner, pass scanner.Pass) *Processor {
	return &Processor{scanner: s, pass: pass}
}

// ParseHTML reads an XHTML fragment into a tree rooted at a wrapping div.
func ParseHTML(html string) (*etree.Element, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{Permissive: true, Entity: htmlEntities}
	if err := doc.ReadFromString("<div>" + html + "</div>"); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "cannot parse HTML")
	}
	return doc.Root(), nil
}

// ProcessHTML decorates an HTML fragment and returns it serialised.
func (p *Processor) ProcessHTML(html string) (string, error) {
	root, err := ParseHTML(html)
	if err != nil {
		return "", err
	}
	p.Process(root)

	var b strings.Builder
	settings := &etree.WriteSettings{CanonicalEndTags: true, CanonicalText: true}
	for _, t := range root.Child {
		t.WriteTo(&b, settings)
	}
	return b.String(), nil
}

// Process decorates every block under root and returns the number of
// decorations applied.
func (p *Processor) Process(root *etree.Element) int {
	log := logging.GetLogger("adapters.static")
	count := 0
	for _, el := range blocks(root) {
		count += p.processBlock(el)
	}
	log.Debug().Int("decorations", count).Msg("Processed HTML")
	return count
}

func isBlock(el *etree.Element) bool {
	for _, t := range BlockTags {
		if el.Tag == t {
			return true
		}
	}
	classes := strings.Fields(el.SelectAttrValue("class", ""))
	for _, c := range classes {
		for _, want := range BlockClasses {
			if c == want {
				return true
			}
		}
	}
	return false
}

// blocks lists the outermost block elements under root, root included.
func blocks(root *etree.Element) []*etree.Element {
	if isBlock(root) {
		return []*etree.Element{root}
	}
	var out []*etree.Element
	for _, c := range root.ChildElements() {
		out = append(out, blocks(c)...)
	}
	return out
}

func skipped(el *etree.Element) bool {
	return el.SelectAttr("data-processed") != nil || el.SelectAttr("data-group") != nil
}

type textRef struct {
	data *etree.CharData
	code bool
}

func collect(el *etree.Element, code bool, out *[]textRef) {
	if skipped(el) {
		return
	}
	code = code || el.Tag == "code"
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			*out = append(*out, textRef{data: t, code: code})
		case *etree.Element:
			collect(t, code, out)
		}
	}
}

func (p *Processor) processBlock(el *etree.Element) int {
	var refs []textRef
	collect(el, false, &refs)
	if len(refs) == 0 {
		return 0
	}

	block := scanner.Block{}
	offset := 0
	for _, r := range refs {
		block.Segments = append(block.Segments, scanner.Segment{Text: r.data.Data, Offset: offset, Code: r.code})
		offset += len(r.data.Data)
	}

	decorations := p.scanner.Scan(p.pass, block)
	bySegment := map[int][]scanner.Decoration{}
	for _, d := range decorations {
		bySegment[d.Segment] = append(bySegment[d.Segment], d)
	}
	for i, ds := range bySegment {
		replace(refs[i].data, block.Segments[i], ds)
	}
	return len(decorations)
}

// replace swaps a text node for its decorated pieces.
func replace(data *etree.CharData, seg scanner.Segment, ds []scanner.Decoration) {
	sort.Slice(ds, func(i, j int) bool { return ds[i].From < ds[j].From })

	holder := etree.NewElement("holder")
	pos := 0
	for _, d := range ds {
		from, to := d.From-seg.Offset, d.To-seg.Offset
		if from > pos {
			holder.CreateText(seg.Text[pos:from])
		}
		decoration.AppendTo(holder, d.Node, decoration.Remove)
		pos = to
	}
	if pos < len(seg.Text) {
		holder.CreateText(seg.Text[pos:])
	}

	parent := data.Parent()
	index := data.Index()
	parent.RemoveChildAt(index)
	tokens := append([]etree.Token(nil), holder.Child...)
	for i, t := range tokens {
		parent.InsertChildAt(index+i, t)
	}
}

// htmlEntities resolves the named references HTML renderers commonly emit
// beyond the five XML ones.
var htmlEntities = map[string]string{
	"nbsp":   " ",
	"copy":   "©",
	"reg":    "®",
	"trade":  "™",
	"hellip": "…",
	"mdash":  "—",
	"ndash":  "–",
	"laquo":  "«",
	"raquo":  "»",
	"lsquo":  "‘",
	"rsquo":  "’",
	"ldquo":  "“",
	"rdquo":  "”",
}
