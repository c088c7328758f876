package decoration

import (
	"unicode/utf8"

	"github.com/arthur-debert/regexmark/pkg/regex"
	"github.com/dlclark/regexp2"
)

// MatchResult is a regex match with byte offsets: Index into the scanned
// text, group offsets relative to the match start.
type MatchResult struct {
	Index  int
	Text   string
	Groups []Capture
}

// Capture is one capturing group of a match. Unnamed groups have an empty
// Name. Groups that did not participate are left out.
type Capture struct {
	Name  string
	Start int
	End   int
	Text  string
}

// End is the byte offset just past the match.
func (m MatchResult) End() int {
	return m.Index + len(m.Text)
}

// Named reports whether any named group participated.
func (m MatchResult) Named() bool {
	for _, g := range m.Groups {
		if g.Name != "" {
			return true
		}
	}
	return false
}

// runeOffsets maps rune index to byte offset, with a trailing entry for the
// end of s.
func runeOffsets(s string) []int {
	offsets := make([]int, 0, utf8.RuneCountInString(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}

// FromRegexp converts a regexp2 match over text into byte offsets, as
// regexp2 reports rune offsets. Group 0 is dropped and the other groups
// are clamped to the match.
func FromRegexp(text string, m *regexp2.Match) MatchResult {
	offsets := runeOffsets(text)
	start := offsets[m.Index]
	end := offsets[m.Index+m.Length]

	res := MatchResult{Index: start, Text: text[start:end]}
	for _, g := range m.Groups() {
		if g.Name == "0" || len(g.Captures) == 0 {
			continue
		}
		gs, ge := offsets[g.Index], offsets[g.Index+g.Length]
		// lookaround groups may reach outside the match
		gs, ge = clamp(gs, start, end), clamp(ge, start, end)
		if ge < gs {
			continue
		}
		c := Capture{Start: gs - start, End: ge - start, Text: text[gs:ge]}
		if regex.IsNamed(g.Name) {
			c.Name = g.Name
		}
		res.Groups = append(res.Groups, c)
	}
	return res
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
