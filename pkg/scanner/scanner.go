// Package scanner finds rule matches in a block of text and turns them into
// decorations.
//
// A Block is one paragraph-like unit split into Segments, the host's text
// nodes. A pass filters the rules down to the eligible ones, skips the block
// when no rule matches its full text, then walks the segments: the first
// rule, in rule set order, that matches a segment decorates it and the
// segment is done. Text left around a match of a global rule is queued
// again for that same rule so every occurrence is decorated.
//
// Errors never escape a pass. A rule whose regex cannot be built is skipped
// for the pass and reported once per pattern and class; a match that spans
// a line break is dropped with a log warning.
package scanner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/regexmark/pkg/decoration"
	"github.com/arthur-debert/regexmark/pkg/document"
	"github.com/arthur-debert/regexmark/pkg/logging"
	"github.com/arthur-debert/regexmark/pkg/regex"
	"github.com/arthur-debert/regexmark/pkg/rules"
	"github.com/arthur-debert/regexmark/pkg/ruleset"
	"github.com/dlclark/regexp2"
)

// Segment is a host text node. Offset is its byte offset in the document.
type Segment struct {
	Text      string
	Offset    int
	Code      bool
	Processed bool
}

// Block is a run of segments scanned together.
type Block struct {
	Segments []Segment
}

// Text is the concatenated text of the block.
func (b Block) Text() string {
	var sb strings.Builder
	for _, s := range b.Segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Decoration is one decorated match. From and To are document byte
// offsets; Segment is the index of the segment the match was found in.
type Decoration struct {
	From    int
	To      int
	Segment int
	Rule    *rules.Rule
	Node    *decoration.Node
}

// Pass describes the render a scan belongs to.
type Pass struct {
	Mode     rules.Mode
	Document *document.Info
}

// Scanner decorates blocks with the rules of a rule set. It reads the set
// on every pass and never caches compiled rules.
type Scanner struct {
	set      *ruleset.RuleSet
	notifier Notifier
}

// New creates a scanner. A nil notifier reports to the log.
func New(set *ruleset.RuleSet, notifier Notifier) *Scanner {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Scanner{set: set, notifier: notifier}
}

type compiledRule struct {
	index      int
	rule       *rules.Rule
	re         *regexp2.Regexp
	delimiters decoration.Rule
}

// item is a piece of segment text waiting to be scanned. When only is not
// negative the item is scanned with that compiled rule alone.
type item struct {
	text    string
	offset  int
	code    bool
	segment int
	only    int
}

// compile returns the eligible rules of the set for pass, in order. Rules
// that fail to build are reported and left out.
func (s *Scanner) compile(pass Pass) []compiledRule {
	ctx := s.set.Context(pass.Mode, false, pass.Document)
	log := logging.GetLogger("scanner")

	var out []compiledRule
	for i, r := range s.set.Rules() {
		if !r.Applies(ctx) {
			continue
		}
		re, err := r.Compile(ctx.Pattern)
		if err == nil {
			if !r.IsValid(ctx.Pattern) {
				continue
			}
			var d decoration.Rule
			d, err = delimiterRule(r, ctx)
			if err == nil {
				out = append(out, compiledRule{index: i, rule: r, re: re, delimiters: d})
				continue
			}
		}
		log.Error().Err(err).Str("regex", r.Pattern).Str("class", r.Class).Msg("Cannot build rule, skipping it")
		s.notifier.Notify(r.Pattern+"\x00"+r.Class,
			fmt.Sprintf("Invalid regex /%s/ for class %q, rule skipped", r.Pattern, r.Class))
	}
	return out
}

func delimiterRule(r *rules.Rule, ctx rules.Context) (decoration.Rule, error) {
	d := decoration.Rule{Class: r.Class, Hide: r.Hide}
	if !r.Hide {
		return d, nil
	}
	delims, err := r.Delimiters(ctx.Pattern)
	if err != nil {
		return d, err
	}
	d.Delimiters = delims
	return d, nil
}

// Scan decorates block for pass and returns the decorations sorted by
// start offset.
func (s *Scanner) Scan(pass Pass, block Block) []Decoration {
	compiled := s.compile(pass)
	if len(compiled) == 0 {
		return nil
	}

	full := block.Text()
	hit := false
	for _, c := range compiled {
		if regex.Test(c.re, full) {
			hit = true
			break
		}
	}
	if !hit {
		return nil
	}

	var queue []item
	for i, seg := range block.Segments {
		if seg.Processed || seg.Text == "" {
			continue
		}
		queue = append(queue, item{text: seg.Text, offset: seg.Offset, code: seg.Code, segment: i, only: -1})
	}

	var out []Decoration
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		d, leftovers := s.scanItem(compiled, it)
		if d != nil {
			out = append(out, *d)
		}
		queue = append(queue, leftovers...)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].From < out[j].From })
	return out
}

// scanItem applies the first matching rule to it.
func (s *Scanner) scanItem(compiled []compiledRule, it item) (*Decoration, []item) {
	log := logging.GetLogger("scanner")
	runes := []rune(it.text)

	for ci, c := range compiled {
		if it.only >= 0 && ci != it.only {
			continue
		}
		if it.code && !c.rule.ViewMode.ShowInCode() {
			continue
		}

		res, ok := firstMatch(c, it, runes)
		if !ok {
			continue
		}
		if res.Text == "" {
			// decorates nothing and would requeue forever
			continue
		}

		var frag *decoration.Fragment
		if !c.rule.Hide && !res.Named() {
			frag = decoration.Flat(it.text, res, c.rule.Class)
		} else {
			var err error
			if frag, err = decoration.Build(it.text, res, c.delimiters); err != nil {
				log.Error().Err(err).Str("class", c.rule.Class).Msg("Cannot decorate match")
				return nil, nil
			}
		}

		d := &Decoration{
			From:    it.offset + frag.From,
			To:      it.offset + frag.To,
			Segment: it.segment,
			Rule:    c.rule,
			Node:    frag.Node,
		}

		var leftovers []item
		if c.rule.IsGlobal() {
			if frag.Before != "" {
				leftovers = append(leftovers, item{text: frag.Before, offset: it.offset, code: it.code, segment: it.segment, only: ci})
			}
			if frag.After != "" {
				leftovers = append(leftovers, item{text: frag.After, offset: it.offset + frag.To, code: it.code, segment: it.segment, only: ci})
			}
		}
		return d, leftovers
	}
	return nil, nil
}

// firstMatch finds the first match of c in it that stays on one line.
// Matches spanning a line break are logged and skipped.
func firstMatch(c compiledRule, it item, runes []rune) (decoration.MatchResult, bool) {
	log := logging.GetLogger("scanner")
	start := 0
	for start <= len(runes) {
		m := regex.FindAt(c.re, runes, start)
		if m == nil || (c.rule.IsSticky() && m.Index != 0) {
			break
		}
		res := decoration.FromRegexp(it.text, m)
		if !strings.ContainsAny(res.Text, "\n\r") {
			return res, true
		}
		log.Warn().Str("regex", c.rule.Pattern).Str("class", c.rule.Class).
			Int("offset", it.offset+res.Index).Msg("Match spans a line break, dropped")
		start = m.Index + m.Length
	}
	return decoration.MatchResult{}, false
}
