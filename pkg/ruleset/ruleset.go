package ruleset

import (
	"github.com/arthur-debert/regexmark/pkg/document"
	"github.com/arthur-debert/regexmark/pkg/errors"
	"github.com/arthur-debert/regexmark/pkg/logging"
	"github.com/arthur-debert/regexmark/pkg/pattern"
	"github.com/arthur-debert/regexmark/pkg/rules"
)

// DefaultPropertyName is the frontmatter key frontmatter auto-rules read.
const DefaultPropertyName = "regex_mark"

// RuleSet is an ordered list of rules sharing one pattern.
type RuleSet struct {
	rules        []*rules.Rule
	pattern      pattern.Pattern
	propertyName string
}

// Diagnostic is the problem list of the rule at Index.
type Diagnostic struct {
	Index int
	Codes []errors.ErrorCode
}

// New creates a rule set. An empty property name falls back to the default.
func New(rs []*rules.Rule, p pattern.Pattern, propertyName string) *RuleSet {
	if propertyName == "" {
		propertyName = DefaultPropertyName
	}
	return &RuleSet{
		rules:        append([]*rules.Rule(nil), rs...),
		pattern:      p,
		propertyName: propertyName,
	}
}

// Default is an empty set with the default pattern.
func Default() *RuleSet {
	return New(nil, pattern.Default(), DefaultPropertyName)
}

// Rules returns the rules in order. The slice is a copy; the rules are not.
func (s *RuleSet) Rules() []*rules.Rule {
	return append([]*rules.Rule(nil), s.rules...)
}

// Len returns the number of rules.
func (s *RuleSet) Len() int { return len(s.rules) }

// At returns the rule at i, or nil when out of range.
func (s *RuleSet) At(i int) *rules.Rule {
	if i < 0 || i >= len(s.rules) {
		return nil
	}
	return s.rules[i]
}

// IndexOf returns the position of r by identity, or -1.
func (s *RuleSet) IndexOf(r *rules.Rule) int {
	for i, x := range s.rules {
		if x == r {
			return i
		}
	}
	return -1
}

func (s *RuleSet) Pattern() pattern.Pattern { return s.pattern }

func (s *RuleSet) PropertyName() string { return s.propertyName }

func (s *RuleSet) SetPropertyName(name string) {
	s.propertyName = name
}

// Add appends rules at the end.
func (s *RuleSet) Add(rs ...*rules.Rule) {
	s.rules = append(s.rules, rs...)
}

// AddNew appends and returns an empty rule for an authoring surface to fill.
func (s *RuleSet) AddNew() *rules.Rule {
	r := rules.New("", "")
	s.rules = append(s.rules, r)
	return r
}

// Remove deletes r. It reports whether r was in the set.
func (s *RuleSet) Remove(r *rules.Rule) bool {
	return s.RemoveAt(s.IndexOf(r))
}

// RemoveAt deletes the rule at i.
func (s *RuleSet) RemoveAt(i int) bool {
	if i < 0 || i >= len(s.rules) {
		return false
	}
	s.rules = append(s.rules[:i], s.rules[i+1:]...)
	return true
}

// Move shifts r by delta positions. Moves past either end are ignored.
func (s *RuleSet) Move(r *rules.Rule, delta int) bool {
	return s.MoveAt(s.IndexOf(r), delta)
}

// MoveAt shifts the rule at i by delta positions.
func (s *RuleSet) MoveAt(i, delta int) bool {
	j := i + delta
	if i < 0 || i >= len(s.rules) || j < 0 || j >= len(s.rules) || delta == 0 {
		return false
	}
	r := s.rules[i]
	s.rules = append(s.rules[:i], s.rules[i+1:]...)
	s.rules = append(s.rules[:j], append([]*rules.Rule{r}, s.rules[j:]...)...)
	return true
}

// Replace swaps in a whole edited list and returns its diagnostics.
func (s *RuleSet) Replace(rs []*rules.Rule) []Diagnostic {
	s.rules = append([]*rules.Rule(nil), rs...)
	return s.Diagnostics()
}

// ChangePattern installs next as the shared pattern and ports every rule to
// it by rewriting its first open and close placeholder. Rules that are no
// longer valid afterwards are disabled in every view and returned.
//
// The rewrite is textual and best effort: text that merely looks like the
// old placeholder is rewritten as well. Disabling is the safety net.
func (s *RuleSet) ChangePattern(next pattern.Pattern) ([]*rules.Rule, error) {
	next = next.Normalize()
	if codes := next.Validate(); len(codes) > 0 {
		return nil, errors.Newf(codes[0], "pattern %q / %q is not usable", next.Open, next.Close).
			WithDetail("codes", codes)
	}

	log := logging.GetLogger("ruleset")
	var invalid []*rules.Rule
	for _, r := range s.rules {
		rewritten, err := s.pattern.Rewrite(r.Pattern, next)
		if err != nil {
			log.Warn().Err(err).Str("regex", r.Pattern).Msg("Cannot rewrite rule for new pattern")
		} else {
			r.Pattern = rewritten
		}
		if !r.IsValid(next) {
			r.Disable()
			invalid = append(invalid, r)
			log.Warn().Str("regex", r.Pattern).Str("class", r.Class).Msg("Rule disabled after pattern change")
		}
	}

	s.pattern = next
	return invalid, nil
}

// FindDuplicateIndexes returns the indexes of every rule whose raw pattern
// occurs more than once, grouped by pattern in order of first occurrence.
func (s *RuleSet) FindDuplicateIndexes() []int {
	var order []string
	groups := map[string][]int{}
	for i, r := range s.rules {
		if _, seen := groups[r.Pattern]; !seen {
			order = append(order, r.Pattern)
		}
		groups[r.Pattern] = append(groups[r.Pattern], i)
	}

	var out []int
	for _, raw := range order {
		if len(groups[raw]) > 1 {
			out = append(out, groups[raw]...)
		}
	}
	return out
}

// Diagnostics returns (index, codes) for every rule with problems, warnings
// included. Rules without problems are omitted.
func (s *RuleSet) Diagnostics() []Diagnostic {
	var out []Diagnostic
	for i, r := range s.rules {
		if codes := r.Validate(s.pattern); len(codes) > 0 {
			out = append(out, Diagnostic{Index: i, Codes: codes})
		}
	}
	return out
}

// Errors returns every problem of the pattern followed by those of the
// rules, in order.
func (s *RuleSet) Errors() []errors.ErrorCode {
	codes := s.pattern.Validate()
	for _, r := range s.rules {
		codes = append(codes, r.Validate(s.pattern)...)
	}
	return codes
}

// Context builds the eligibility context of a render pass.
func (s *RuleSet) Context(mode rules.Mode, inCode bool, doc *document.Info) rules.Context {
	return rules.Context{
		Mode:         mode,
		InCode:       inCode,
		Document:     doc,
		Pattern:      s.pattern,
		PropertyName: s.propertyName,
	}
}
