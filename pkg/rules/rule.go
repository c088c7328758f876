package rules

import (
	"strings"

	"github.com/arthur-debert/regexmark/pkg/errors"
	"github.com/arthur-debert/regexmark/pkg/pattern"
	"github.com/arthur-debert/regexmark/pkg/regex"
	"github.com/dlclark/regexp2"
)

// Rule is one regex-to-class mapping with its visibility settings.
//
// Derived values (resolved source, compiled regex, delimiters) are computed
// on demand from Pattern, Flags and the shared pattern, never cached, so a
// mutation is always reflected by the next render.
type Rule struct {
	Pattern  string
	Flags    Flags
	Class    string
	Hide     bool
	ViewMode ViewMode
}

// New creates a rule with default flags and view mode.
func New(raw, class string) *Rule {
	return &Rule{
		Pattern:  raw,
		Flags:    DefaultFlags(),
		Class:    class,
		ViewMode: DefaultViewMode(),
	}
}

// Clone returns a deep copy.
func (r *Rule) Clone() *Rule {
	c := *r
	c.Flags = append(Flags(nil), r.Flags...)
	c.ViewMode = r.ViewMode.clone()
	return &c
}

// Equal compares the raw pattern text only; two rules with the same pattern
// would style the same text.
func (r *Rule) Equal(other *Rule) bool {
	return other != nil && r.Pattern == other.Pattern
}

// Disable clears every view flag so the rule stops applying anywhere.
func (r *Rule) Disable() {
	r.ViewMode.Reading = false
	r.ViewMode.Source = false
	r.ViewMode.Live = false
}

// IsGlobal reports whether the g flag is set.
func (r *Rule) IsGlobal() bool {
	return r.Flags.Has("g")
}

// IsSticky reports whether the y flag is set.
func (r *Rule) IsSticky() bool {
	return r.Flags.Has("y")
}

// Resolve expands the open/close placeholders of the raw pattern.
func (r *Rule) Resolve(p pattern.Pattern) (string, error) {
	return p.Resolve(r.Pattern)
}

// Compile builds the executable regex from the resolved source and flags.
func (r *Rule) Compile(p pattern.Pattern) (*regexp2.Regexp, error) {
	source, err := r.Resolve(p)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRegexSyntax, "cannot resolve %q", r.Pattern)
	}
	re, err := regex.Compile(source, r.Flags.String())
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRegexSyntax, "cannot compile /%s/%s", source, r.Flags.Source())
	}
	return re, nil
}

// Delimiters returns the anchored open/close fragments of the rule.
func (r *Rule) Delimiters(p pattern.Pattern) (pattern.Delimiters, error) {
	return p.SubDelimiters(r.Pattern, r.Flags.String())
}

// HasDelimiters reports whether the raw pattern embeds an open or close
// placeholder with a fragment.
func (r *Rule) HasDelimiters(p pattern.Pattern) bool {
	d, err := r.Delimiters(p)
	return err == nil && d.Any()
}

// HasNamedGroups reports whether the resolved regex declares named groups.
func (r *Rule) HasNamedGroups(p pattern.Pattern) bool {
	re, err := r.Compile(p)
	if err != nil {
		return false
	}
	return len(regex.NamedGroups(re)) > 0
}

// Validate lists every problem with the rule, warnings included.
func (r *Rule) Validate(p pattern.Pattern) []errors.ErrorCode {
	var codes []errors.ErrorCode
	switch {
	case strings.TrimSpace(r.Pattern) == "":
		codes = append(codes, errors.ErrRegexMissing)
	default:
		if _, err := r.Compile(p); err != nil {
			codes = append(codes, errors.ErrRegexSyntax)
			break
		}
		if MayMatchNewline(r.Pattern) {
			codes = append(codes, errors.ErrRegexMatchesNewline)
		}
		if r.Hide && !r.HasDelimiters(p) {
			codes = append(codes, errors.ErrHideMissingDelimiters)
		}
	}
	if strings.TrimSpace(r.Class) == "" {
		codes = append(codes, errors.ErrClassMissing)
	}
	return codes
}

// Errors lists the blocking problems only.
func (r *Rule) Errors(p pattern.Pattern) []errors.ErrorCode {
	var out []errors.ErrorCode
	for _, c := range r.Validate(p) {
		if !errors.IsWarning(c) {
			out = append(out, c)
		}
	}
	return out
}

// Warnings lists the non-blocking problems only.
func (r *Rule) Warnings(p pattern.Pattern) []errors.ErrorCode {
	var out []errors.ErrorCode
	for _, c := range r.Validate(p) {
		if errors.IsWarning(c) {
			out = append(out, c)
		}
	}
	return out
}

// IsValid reports whether the rule has no blocking problems.
func (r *Rule) IsValid(p pattern.Pattern) bool {
	return len(r.Errors(p)) == 0
}

// Applies runs the cheap gates for ctx: required fields, view mode, code
// visibility and auto-rules. It does not compile the regex.
func (r *Rule) Applies(ctx Context) bool {
	if strings.TrimSpace(r.Pattern) == "" || strings.TrimSpace(r.Class) == "" {
		return false
	}
	if !r.ViewMode.Enabled(ctx.Mode) {
		return false
	}
	if ctx.InCode && !r.ViewMode.ShowInCode() {
		return false
	}
	return r.ViewMode.Admits(ctx.Document, ctx.PropertyName)
}

// IsEligible reports whether the rule applies in ctx and is valid. The
// outcome does not depend on the order of the checks; cheap ones run first.
func (r *Rule) IsEligible(ctx Context) bool {
	return r.Applies(ctx) && r.IsValid(ctx.Pattern)
}
