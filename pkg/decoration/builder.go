package decoration

import (
	"sort"

	"github.com/arthur-debert/regexmark/pkg/errors"
	"github.com/arthur-debert/regexmark/pkg/pattern"
	"github.com/dlclark/regexp2"
)

// Marker search range: the BMP private use area.
const (
	MarkerFirst rune = 0xE000
	MarkerLast  rune = 0xF8FF
)

// FindMarker returns the first private-use code point absent from text.
// It fails with ErrMarkerExhausted when text uses the whole range.
func FindMarker(text string) (rune, error) {
	used := map[rune]bool{}
	for _, r := range text {
		if r >= MarkerFirst && r <= MarkerLast {
			used[r] = true
		}
	}
	for r := MarkerFirst; r <= MarkerLast; r++ {
		if !used[r] {
			return r, nil
		}
	}
	return 0, errors.Newf(errors.ErrMarkerExhausted,
		"text uses every code point from U+%04X to U+%04X", MarkerFirst, MarkerLast)
}

// Rule is what the builder needs to know about the rule that matched.
type Rule struct {
	Class      string
	Hide       bool
	Delimiters pattern.Delimiters
}

// Flat wraps the whole match in a single span. It is used for rules that
// neither hide nor name groups.
func Flat(text string, m MatchResult, class string) *Fragment {
	return &Fragment{
		Before: text[:m.Index],
		Node: &Node{
			Kind:     Match,
			Class:    class,
			Contents: m.Text,
			Children: []*Node{{Kind: Text, Text: m.Text}},
		},
		After: text[m.End():],
		From:  m.Index,
		To:    m.End(),
	}
}

// Build decorates m: hidden delimiter runs become Hidden leaves and named
// groups become nested Group nodes.
//
// With Hide set, every character starts hidden, characters inside any
// capturing group are revealed, and the rule's open and close delimiters,
// anchored to the start and end of the match, are hidden again. Hidden
// characters are swapped one for one with a private-use marker, so group
// offsets stay valid while the tree is cut; marker runs then become Hidden
// leaves holding the original text.
func Build(text string, m MatchResult, rule Rule) (*Fragment, error) {
	original := []rune(m.Text)
	masked := append([]rune(nil), original...)
	toRune := byteToRune(m.Text)

	var marker rune
	if rule.Hide {
		var err error
		if marker, err = FindMarker(m.Text); err != nil {
			return nil, err
		}
		hidden, err := hiddenMask(m, toRune, rule.Delimiters)
		if err != nil {
			return nil, err
		}
		for i, h := range hidden {
			if h {
				masked[i] = marker
			}
		}
	}

	b := &treeBuilder{original: original, masked: masked, marker: marker, hide: rule.Hide}
	root := &span{start: 0, end: len(original), children: nest(m.Groups, toRune)}

	return &Fragment{
		Before: text[:m.Index],
		Node: &Node{
			Kind:     Match,
			Class:    rule.Class,
			Contents: m.Text,
			Children: b.children(root),
		},
		After: text[m.End():],
		From:  m.Index,
		To:    m.End(),
	}, nil
}

// byteToRune maps each byte offset of s that starts a rune, and len(s), to
// a rune index.
func byteToRune(s string) map[int]int {
	out := make(map[int]int, len(s)+1)
	n := 0
	for i := range s {
		out[i] = n
		n++
	}
	out[len(s)] = n
	return out
}

// hiddenMask computes the per-rune hidden flags of the match.
func hiddenMask(m MatchResult, toRune map[int]int, d pattern.Delimiters) ([]bool, error) {
	hidden := make([]bool, toRune[len(m.Text)])
	for i := range hidden {
		hidden[i] = true
	}
	for _, g := range m.Groups {
		for i := toRune[g.Start]; i < toRune[g.End]; i++ {
			hidden[i] = false
		}
	}

	for _, re := range []*regexp2.Regexp{d.Open, d.Close} {
		if re == nil {
			continue
		}
		found, err := re.FindStringMatch(m.Text)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrRegexConstruct, "delimiter search failed")
		}
		if found == nil {
			continue
		}
		for i := found.Index; i < found.Index+found.Length; i++ {
			hidden[i] = true
		}
	}
	return hidden, nil
}

// span is a named group interval in rune offsets relative to the match.
type span struct {
	name       string
	start, end int
	children   []*span
}

// nest arranges the named groups into a containment tree. Groups are
// ordered by start, longer first on ties; a group that starts inside an
// open group becomes its child and is clipped to the parent's end.
// Empty groups produce no span.
func nest(groups []Capture, toRune map[int]int) []*span {
	var flat []*span
	for _, g := range groups {
		if g.Name == "" || g.End <= g.Start {
			continue
		}
		flat = append(flat, &span{name: g.Name, start: toRune[g.Start], end: toRune[g.End]})
	}
	sort.SliceStable(flat, func(i, j int) bool {
		if flat[i].start != flat[j].start {
			return flat[i].start < flat[j].start
		}
		return flat[i].end > flat[j].end
	})

	root := &span{end: int(^uint(0) >> 1)}
	stack := []*span{root}
	for _, s := range flat {
		for len(stack) > 1 && stack[len(stack)-1].end <= s.start {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		if s.end > parent.end {
			s.end = parent.end
		}
		parent.children = append(parent.children, s)
		stack = append(stack, s)
	}
	return root.children
}

type treeBuilder struct {
	original []rune
	masked   []rune
	marker   rune
	hide     bool
}

// children emits the nodes covering s: leaves for the gaps between child
// spans and a Group node per child.
func (b *treeBuilder) children(s *span) []*Node {
	var out []*Node
	pos := s.start
	for _, c := range s.children {
		out = append(out, b.leaves(pos, c.start)...)
		out = append(out, &Node{
			Kind:     Group,
			Class:    c.name,
			Contents: string(b.original[c.start:c.end]),
			Children: b.children(c),
		})
		pos = c.end
	}
	return append(out, b.leaves(pos, s.end)...)
}

// leaves splits [from, to) into Text and Hidden runs.
func (b *treeBuilder) leaves(from, to int) []*Node {
	var out []*Node
	for from < to {
		isHidden := b.hide && b.masked[from] == b.marker
		end := from + 1
		for end < to && (b.hide && b.masked[end] == b.marker) == isHidden {
			end++
		}
		kind := Text
		if isHidden {
			kind = Hidden
		}
		out = append(out, &Node{Kind: kind, Text: string(b.original[from:end])})
		from = end
	}
	return out
}
