package testutil

import (
	"github.com/arthur-debert/regexmark/pkg/pattern"
	"github.com/arthur-debert/regexmark/pkg/rules"
	"github.com/arthur-debert/regexmark/pkg/ruleset"
)

// HidingRule returns a rule that hides its delimiters.
func HidingRule(raw, class string) *rules.Rule {
	r := rules.New(raw, class)
	r.Hide = true
	return r
}

// RuleSet builds a rule set over the default pattern.
func RuleSet(rs ...*rules.Rule) *ruleset.RuleSet {
	return ruleset.New(rs, pattern.Default(), "")
}

// MarkdownRules is a small realistic rule set: highlight, hidden-delimiter
// italics, underline with a named group and a key/value pair.
func MarkdownRules() *ruleset.RuleSet {
	return RuleSet(
		rules.New(`==(.+?)==`, "highlight"),
		HidingRule(`{{open:_}}(.+?){{close:_}}`, "italic"),
		HidingRule(`{{open:\+\+}}(?<u>.+?){{close:\+\+}}`, "underline"),
		rules.New(`(?<key>\w+)::(?<value>\w+)`, "field"),
	)
}
