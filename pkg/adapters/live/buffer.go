package live

import "github.com/arthur-debert/regexmark/pkg/document"

// Buffer is an in-memory text buffer implementing every host interface.
// It serves callers without an editor, such as the CLI and tests.
type Buffer struct {
	Content string
	// Visible defaults to the whole buffer when nil.
	Visible []Range
	Cursors []Range
	Doc     *document.Info
}

// NewBuffer creates a buffer showing all of content with no cursor.
func NewBuffer(content string) *Buffer {
	return &Buffer{Content: content}
}

func (b *Buffer) VisibleRanges() []Range {
	if b.Visible == nil {
		return []Range{{From: 0, To: len(b.Content)}}
	}
	return b.Visible
}

func (b *Buffer) Slice(from, to int) string {
	from, to = clampRange(from, to, len(b.Content))
	return b.Content[from:to]
}

func (b *Buffer) Selections() []Range {
	return b.Cursors
}

func (b *Buffer) Document() *document.Info {
	return b.Doc
}

// SetCursor places a single collapsed cursor at offset.
func (b *Buffer) SetCursor(offset int) {
	b.Cursors = []Range{{From: offset, To: offset}}
}

func clampRange(from, to, n int) (int, int) {
	if from < 0 {
		from = 0
	}
	if to > n {
		to = n
	}
	if from > to {
		from = to
	}
	return from, to
}
