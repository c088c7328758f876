// Test Type: Unit Test
// Description: Tests for the match scanner

package scanner_test

import (
	"testing"

	"github.com/arthur-debert/regexmark/pkg/decoration"
	"github.com/arthur-debert/regexmark/pkg/document"
	"github.com/arthur-debert/regexmark/pkg/pattern"
	"github.com/arthur-debert/regexmark/pkg/rules"
	"github.com/arthur-debert/regexmark/pkg/ruleset"
	"github.com/arthur-debert/regexmark/pkg/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reading = scanner.Pass{Mode: rules.ModeReading}

func scan(pass scanner.Pass, text string, rs ...*rules.Rule) []scanner.Decoration {
	set := ruleset.New(rs, pattern.Default(), "")
	return scanner.New(set, nil).Scan(pass, scanner.Block{Segments: []scanner.Segment{{Text: text}}})
}

type span struct {
	from, to int
	class    string
}

func spans(ds []scanner.Decoration) []span {
	var out []span
	for _, d := range ds {
		out = append(out, span{d.From, d.To, d.Rule.Class})
	}
	return out
}

func withFlags(raw, class, flags string) *rules.Rule {
	r := rules.New(raw, class)
	r.Flags = rules.ParseFlags(flags)
	return r
}

func TestScan_GlobalRuleDecoratesEveryMatch(t *testing.T) {
	got := scan(reading, "1 and 22 and 333", withFlags(`\d+`, "num", "g"))
	assert.Equal(t, []span{{0, 1, "num"}, {6, 8, "num"}, {13, 16, "num"}}, spans(got))
}

func TestScan_NonGlobalRuleDecoratesOnce(t *testing.T) {
	got := scan(reading, "1 and 22 and 333", withFlags(`\d+`, "num", "i"))
	assert.Equal(t, []span{{0, 1, "num"}}, spans(got))
}

func TestScan_Sticky(t *testing.T) {
	sticky := withFlags(`\d+`, "num", "gy")
	assert.Equal(t, []span{{0, 2, "num"}}, spans(scan(reading, "12ab34", sticky)))
	assert.Empty(t, scan(reading, "ab12", sticky))
}

func TestScan_FirstRuleWins(t *testing.T) {
	got := scan(reading, "x ==y== z",
		rules.New(`==(.+?)==`, "hl"),
		rules.New(`=+`, "eq"),
	)
	assert.Equal(t, []span{{2, 7, "hl"}}, spans(got))

	got = scan(reading, "x ==y== z",
		rules.New(`=+`, "eq"),
		rules.New(`==(.+?)==`, "hl"),
	)
	assert.Equal(t, []span{{2, 4, "eq"}, {5, 7, "eq"}}, spans(got))
}

func TestScan_NewlineMatchesAreDropped(t *testing.T) {
	assert.Empty(t, scan(reading, "a\nb", rules.New(`a\sb`, "x")))

	hidden := &rules.Rule{Pattern: `{{open:_}}([^_]*){{close:_}}`, Flags: rules.DefaultFlags(), Class: "i", Hide: true, ViewMode: rules.DefaultViewMode()}
	assert.Empty(t, scan(reading, "_a\nb_", hidden))
	assert.Len(t, scan(reading, "_ab_", hidden), 1)
}

func TestScan_ViewModeGating(t *testing.T) {
	r := rules.New(`==(.+?)==`, "hl")
	r.ViewMode.Reading = false

	assert.Empty(t, scan(reading, "==a==", r))
	assert.Len(t, scan(scanner.Pass{Mode: rules.ModeLive}, "==a==", r), 1)
}

func TestScan_AutoRuleGating(t *testing.T) {
	r := rules.New(`==(.+?)==`, "hl")
	r.ViewMode.AutoRules = []rules.AutoRule{{Type: rules.AutoRulePath, Value: `^private/`, Exclude: true}}

	excluded := scanner.Pass{Mode: rules.ModeReading, Document: &document.Info{Path: "private/a.md"}}
	assert.Empty(t, scan(excluded, "==a==", r))
}

func TestScan_CodeVisibility(t *testing.T) {
	noCode := rules.New(`==(.+?)==`, "hl")
	noCode.ViewMode.CodeBlock = rules.Bool(false)
	anywhere := rules.New(`\+\+(.+?)\+\+`, "ins")

	set := ruleset.New([]*rules.Rule{noCode, anywhere}, pattern.Default(), "")
	block := scanner.Block{Segments: []scanner.Segment{
		{Text: "==a== ", Offset: 0},
		{Text: "==b== ++c++", Offset: 6, Code: true},
	}}

	got := scanner.New(set, nil).Scan(reading, block)
	assert.Equal(t, []span{{0, 5, "hl"}, {12, 17, "ins"}}, spans(got))
	assert.Equal(t, 0, got[0].Segment)
	assert.Equal(t, 1, got[1].Segment)
}

func TestScan_SkipsProcessedSegments(t *testing.T) {
	set := ruleset.New([]*rules.Rule{rules.New(`==(.+?)==`, "hl")}, pattern.Default(), "")
	block := scanner.Block{Segments: []scanner.Segment{
		{Text: "==a==", Offset: 0, Processed: true},
		{Text: " ==b==", Offset: 5},
	}}

	got := scanner.New(set, nil).Scan(reading, block)
	assert.Equal(t, []span{{6, 11, "hl"}}, spans(got))
}

func TestScan_NoMatchInBlock(t *testing.T) {
	assert.Nil(t, scan(reading, "nothing here", rules.New(`==(.+?)==`, "hl")))
	assert.Nil(t, scan(reading, "==a=="))
}

func TestScan_HiddenDelimiters(t *testing.T) {
	r := &rules.Rule{Pattern: `{{open:_}}(.*?){{close:_}}`, Flags: rules.DefaultFlags(), Class: "italic", Hide: true, ViewMode: rules.DefaultViewMode()}

	got := scan(reading, "an _italic_ word and _more_", r)
	require.Len(t, got, 2)
	assert.Equal(t, "italic", decoration.VisibleText(got[0].Node))
	assert.Equal(t, "_italic_", got[0].Node.Contents)
	assert.Equal(t, "more", decoration.VisibleText(got[1].Node))
	assert.Equal(t, span{21, 27, "italic"}, spans(got)[1])
}

func TestScan_NamedGroupsNest(t *testing.T) {
	got := scan(reading, "abc", rules.New(`(?<outer>a(?<inner>b)c)`, "cls"))
	require.Len(t, got, 1)

	outer := got[0].Node.Children[0]
	assert.Equal(t, decoration.Group, outer.Kind)
	assert.Equal(t, "outer", outer.Class)
	require.Len(t, outer.Children, 3)
	assert.Equal(t, "inner", outer.Children[1].Class)
}

func TestScan_Idempotent(t *testing.T) {
	rs := []*rules.Rule{
		{Pattern: `{{open:==}}(?<a>.+?){{close:==}}`, Flags: rules.DefaultFlags(), Class: "hl", Hide: true, ViewMode: rules.DefaultViewMode()},
		rules.New(`\d+`, "num"),
	}
	set := ruleset.New(rs, pattern.Default(), "")
	s := scanner.New(set, nil)
	block := scanner.Block{Segments: []scanner.Segment{{Text: "==x== 12 ==y== 3", Offset: 40}}}

	first := s.Scan(reading, block)
	second := s.Scan(reading, block)
	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestScan_EmptyMatchesAreIgnored(t *testing.T) {
	got := scan(reading, "abc", rules.New(`x*`, "empty"), rules.New(`b`, "b"))
	assert.Equal(t, []span{{1, 2, "b"}}, spans(got))
}

func TestScan_LaterMatchesSurviveANewlineMatch(t *testing.T) {
	got := scan(reading, "**a\nb** then **c**", rules.New(`\*\*[^*]+\*\*`, "bold"))
	assert.Equal(t, []span{{13, 18, "bold"}}, spans(got))

	got = scan(reading, "**a\nb** then **c**", withFlags(`\*\*[^*]+\*\*`, "bold", "i"))
	assert.Equal(t, []span{{13, 18, "bold"}}, spans(got))
}

func TestScan_BrokenRuleIsReportedAndSkipped(t *testing.T) {
	var notices []string
	notifier := scanner.Once(scanner.NotifyFunc(func(key, message string) {
		notices = append(notices, message)
	}))
	set := ruleset.New([]*rules.Rule{rules.New(`(unclosed`, "bad"), rules.New(`ok`, "good")}, pattern.Default(), "")
	s := scanner.New(set, notifier)
	block := scanner.Block{Segments: []scanner.Segment{{Text: "ok (unclosed"}}}

	got := s.Scan(reading, block)
	assert.Equal(t, []span{{0, 2, "good"}}, spans(got))
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0], "(unclosed")

	s.Scan(reading, block)
	assert.Len(t, notices, 1)
}

func TestScan_GatedBrokenRuleIsNotReported(t *testing.T) {
	var notices int
	broken := rules.New(`(unclosed`, "bad")
	broken.ViewMode.Reading = false
	set := ruleset.New([]*rules.Rule{broken}, pattern.Default(), "")

	scanner.New(set, scanner.NotifyFunc(func(string, string) { notices++ })).
		Scan(reading, scanner.Block{Segments: []scanner.Segment{{Text: "(unclosed"}}})
	assert.Zero(t, notices)
}

func TestScan_HiddenDelimitersFollowCaseFlag(t *testing.T) {
	r := &rules.Rule{Pattern: `{{open:x}}(.+?){{close:x}}`, Flags: rules.DefaultFlags(), Class: "x", Hide: true, ViewMode: rules.DefaultViewMode()}

	got := scan(reading, "a XyX b", r)
	require.Len(t, got, 1)
	assert.Equal(t, "y", decoration.VisibleText(got[0].Node))
}
