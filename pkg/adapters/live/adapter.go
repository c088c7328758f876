package live

import (
	"sort"
	"strings"

	"github.com/arthur-debert/regexmark/pkg/decoration"
	"github.com/arthur-debert/regexmark/pkg/logging"
	"github.com/arthur-debert/regexmark/pkg/rules"
	"github.com/arthur-debert/regexmark/pkg/scanner"
)

// Kind says how the host applies a Spec.
type Kind int

const (
	// Mark styles the range with Class and leaves the text editable.
	Mark Kind = iota
	// Replace swaps the range for the rendered widget HTML.
	Replace
)

// Spec is one decoration for the host to apply.
type Spec struct {
	From  int
	To    int
	Kind  Kind
	Class string
	// Text is the source text of the range.
	Text string
	// HTML is the widget markup of Replace specs.
	HTML string
	Node *decoration.Node
	Rule *rules.Rule
}

// Equal reports whether two specs render the same widget, so the host can
// keep the existing one.
func (s Spec) Equal(o Spec) bool {
	return s.Kind == o.Kind && s.Class == o.Class && s.Text == o.Text && s.HTML == o.HTML &&
		s.Rule != nil && o.Rule != nil && s.Rule.Equal(o.Rule)
}

// Changes tells the adapter what moved since the last update.
type Changes struct {
	Doc       bool
	Viewport  bool
	Selection bool
}

// Adapter keeps the decoration specs of one editor view.
type Adapter struct {
	scanner     *scanner.Scanner
	mode        rules.Mode
	text        TextProvider
	selection   SelectionProvider
	documents   DocumentProvider
	Composition Composition

	specs       []Spec
	built       bool
	composition Range
	composing   bool
}

// New creates an adapter for an editor in mode, which is live when empty.
// selection and documents may be nil.
func New(s *scanner.Scanner, mode rules.Mode, text TextProvider, selection SelectionProvider, documents DocumentProvider) *Adapter {
	a := &Adapter{scanner: s, text: text, selection: selection, documents: documents}
	a.SetMode(mode)
	return a
}

// SetMode switches the editor mode. Specs are rebuilt on next use.
func (a *Adapter) SetMode(mode rules.Mode) {
	if mode == "" {
		mode = rules.ModeLive
	}
	if mode != a.mode {
		a.mode = mode
		a.built = false
	}
}

// Mode returns the editor mode rules are gated on.
func (a *Adapter) Mode() rules.Mode {
	return a.mode
}

// Specs returns the current specs, building them on first use.
func (a *Adapter) Specs() []Spec {
	if !a.built {
		a.Rebuild()
	}
	return a.specs
}

// Update rebuilds when the document, viewport, selection or composition
// changed and reports whether it did.
func (a *Adapter) Update(c Changes) bool {
	rng, composing := a.Composition.Active()
	compositionChanged := composing != a.composing || rng != a.composition
	if a.built && !c.Doc && !c.Viewport && !c.Selection && !compositionChanged {
		return false
	}
	a.Rebuild()
	return true
}

// Rebuild scans every visible range again.
func (a *Adapter) Rebuild() {
	done := logging.LogOperationStart(logging.GetLogger("adapters.live"), "rebuild")
	defer done()

	a.composition, a.composing = a.Composition.Active()
	pass := scanner.Pass{Mode: a.mode}
	if a.documents != nil {
		pass.Document = a.documents.Document()
	}

	var specs []Spec
	for _, r := range a.lineRanges() {
		text := a.text.Slice(r.From, r.To)
		before := a.text.Slice(0, r.From)
		for _, block := range Segments(text, r.From, before) {
			for _, d := range a.scanner.Scan(pass, block) {
				specs = append(specs, a.spec(d))
			}
		}
	}
	sort.SliceStable(specs, func(i, j int) bool { return specs[i].From < specs[j].From })

	a.specs = specs
	a.built = true
}

// lineRanges widens the visible ranges to whole lines and merges overlaps.
func (a *Adapter) lineRanges() []Range {
	var out []Range
	for _, r := range a.text.VisibleRanges() {
		before := a.text.Slice(0, r.From)
		if i := strings.LastIndexByte(before, '\n'); i >= 0 {
			r.From = i + 1
		} else {
			r.From = 0
		}
		rest := a.text.Slice(r.To, r.To+lineTail(a.text, r.To))
		r.To += len(rest)

		if n := len(out); n > 0 && r.From <= out[n-1].To {
			if r.To > out[n-1].To {
				out[n-1].To = r.To
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// lineTail measures the bytes from offset to the end of its line.
func lineTail(text TextProvider, offset int) int {
	const chunk = 256
	n := 0
	for {
		s := text.Slice(offset+n, offset+n+chunk)
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			return n + i
		}
		if len(s) < chunk {
			return n + len(s)
		}
		n += len(s)
	}
}

func (a *Adapter) touched(from, to int) bool {
	if a.composing && a.composition.Overlaps(from, to) {
		return true
	}
	if a.selection == nil {
		return false
	}
	for _, sel := range a.selection.Selections() {
		if sel.Overlaps(from, to) {
			return true
		}
	}
	return false
}

func (a *Adapter) spec(d scanner.Decoration) Spec {
	s := Spec{
		From:  d.From,
		To:    d.To,
		Class: d.Rule.Class,
		Text:  decoration.Source(d.Node),
		Node:  d.Node,
		Rule:  d.Rule,
	}
	if a.touched(d.From, d.To) {
		s.Kind = Mark
		return s
	}
	s.Kind = Replace
	s.HTML = decoration.HTML(d.Node, decoration.Conceal)
	return s
}
