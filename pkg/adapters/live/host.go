package live

import "github.com/arthur-debert/regexmark/pkg/document"

// Range is a half-open byte range of the buffer.
type Range struct {
	From int
	To   int
}

// Overlaps reports whether r touches [from, to]. Touching either end counts,
// so a cursor sitting right after a match still reveals it.
func (r Range) Overlaps(from, to int) bool {
	return r.To >= from && r.From <= to
}

// TextProvider gives access to the buffer.
type TextProvider interface {
	// VisibleRanges lists the ranges currently on screen, in order.
	VisibleRanges() []Range
	// Slice returns the text between two byte offsets. Offsets past the
	// end of the buffer are clamped.
	Slice(from, to int) string
}

// SelectionProvider reports the cursor ranges.
type SelectionProvider interface {
	Selections() []Range
}

// DocumentProvider reports the document open in the editor.
type DocumentProvider interface {
	Document() *document.Info
}

// Composition tracks the range of an active IME composition across
// start, update and end events.
type Composition struct {
	active bool
	rng    Range
}

// Start begins a composition at offset.
func (c *Composition) Start(offset int) {
	c.active = true
	c.rng = Range{From: offset, To: offset}
}

// Update moves the composed range.
func (c *Composition) Update(from, to int) {
	if !c.active {
		return
	}
	c.rng = Range{From: from, To: to}
}

// End finishes the composition.
func (c *Composition) End() {
	c.active = false
	c.rng = Range{}
}

// Active returns the composed range, if any.
func (c *Composition) Active() (Range, bool) {
	return c.rng, c.active
}
