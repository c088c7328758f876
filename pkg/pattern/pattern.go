// Package pattern implements the open/close delimiter syntax rule authors use
// to mark the parts of a match that should be hidden.
//
// A Pattern holds two expressions, one for the opening placeholder and one
// for the closing placeholder. Each must contain the literal marker
// ("open:" or "close:") and exactly one capture group extracting the
// delimiter fragment. With the default pattern a rule such as
//
//	{{open:__}}(.*?){{close:__}}
//
// resolves to the executable expression `(__)(.*?)(__)`, while the fragments
// `__` are kept apart so the decoration builder can hide them.
package pattern

import (
	"strings"

	"github.com/arthur-debert/regexmark/pkg/errors"
	"github.com/arthur-debert/regexmark/pkg/regex"
	"github.com/dlclark/regexp2"
)

// Default open/close expressions.
const (
	DefaultOpen  = `{{open:(.*?)}}`
	DefaultClose = `{{close:(.*?)}}`
)

// Side names one half of a Pattern.
type Side string

const (
	Open  Side = "open"
	Close Side = "close"
)

// Pattern is the shared open/close delimiter syntax. It is replaced as a
// whole, never edited in place.
type Pattern struct {
	Open  string `json:"open" yaml:"open"`
	Close string `json:"close" yaml:"close"`
}

// Default returns the built-in {{open:...}} / {{close:...}} syntax.
func Default() Pattern {
	return Pattern{Open: DefaultOpen, Close: DefaultClose}
}

func (p Pattern) side(which Side) string {
	if which == Open {
		return p.Open
	}
	return p.Close
}

// Validate returns the error codes of both sides, open first.
func (p Pattern) Validate() []errors.ErrorCode {
	codes := p.ValidateSide(Open)
	return append(codes, p.ValidateSide(Close)...)
}

// ValidateSide checks a single side. Empty and uncompilable expressions stop
// further checks.
func (p Pattern) ValidateSide(which Side) []errors.ErrorCode {
	expr := p.side(which)
	if strings.TrimSpace(expr) == "" {
		return []errors.ErrorCode{errors.ErrPatternEmpty}
	}
	if !regex.Valid(expr, "") {
		return []errors.ErrorCode{errors.ErrPatternInvalid}
	}

	var codes []errors.ErrorCode
	if which == Open && !strings.Contains(expr, "open:") {
		codes = append(codes, errors.ErrPatternNotOpen)
	}
	if which == Close && !strings.Contains(expr, "close:") {
		codes = append(codes, errors.ErrPatternNotClose)
	}
	if expr == string(which)+":(.*?)" {
		return append(codes, errors.ErrPatternNeedChar)
	}
	if !strings.Contains(expr, "(.*?)") && !strings.Contains(expr, "(.*)") {
		codes = append(codes, errors.ErrPatternWithoutGroup)
	}
	return codes
}

// IsValid reports whether both sides validate cleanly.
func (p Pattern) IsValid() bool {
	return len(p.Validate()) == 0
}

// Normalize turns a greedy (.*) capture into the lazy (.*?) form so a
// placeholder never swallows the rest of the rule.
func (p Pattern) Normalize() Pattern {
	return Pattern{
		Open:  normalizeSide(p.Open),
		Close: normalizeSide(p.Close),
	}
}

func normalizeSide(expr string) string {
	if strings.Contains(expr, "(.*?)") {
		return expr
	}
	return strings.Replace(expr, "(.*)", "(.*?)", 1)
}

func (p Pattern) compile(which Side) (*regexp2.Regexp, error) {
	re, err := regex.Compile(p.side(which), "")
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPatternInvalid, "%s pattern %q does not compile", which, p.side(which))
	}
	return re, nil
}

// placeholder is the first occurrence of one side inside a raw rule.
type placeholder struct {
	start, end int // rune offsets of the whole placeholder
	fragment   string
}

func (p Pattern) find(which Side, raw []rune) (*placeholder, error) {
	re, err := p.compile(which)
	if err != nil {
		return nil, err
	}
	m := regex.FindAt(re, raw, 0)
	if m == nil {
		return nil, nil
	}
	ph := &placeholder{start: m.Index, end: m.Index + m.Length}
	if g := m.GroupByNumber(1); g != nil && len(g.Captures) > 0 {
		ph.fragment = g.String()
	}
	return ph, nil
}

func splice(raw []rune, ph *placeholder, replacement string) []rune {
	out := make([]rune, 0, len(raw)+len(replacement))
	out = append(out, raw[:ph.start]...)
	out = append(out, []rune(replacement)...)
	return append(out, raw[ph.end:]...)
}

// Resolve expands the first open and the first close placeholder of raw into
// capture groups around their fragments. Further occurrences stay literal.
// A raw pattern without placeholders is returned unchanged.
func (p Pattern) Resolve(raw string) (string, error) {
	runes := []rune(raw)
	for _, which := range []Side{Open, Close} {
		ph, err := p.find(which, runes)
		if err != nil {
			return "", err
		}
		if ph == nil {
			continue
		}
		if !regex.Valid(ph.fragment, "") {
			return "", errors.Newf(errors.ErrPatternInvalid, "%s fragment %q does not compile", which, ph.fragment).
				WithDetail("fragment", ph.fragment)
		}
		runes = splice(runes, ph, "("+ph.fragment+")")
	}
	return string(runes), nil
}

// Delimiters are the open/close fragments of one rule, anchored to the start
// and end of a match respectively. Either may be nil.
type Delimiters struct {
	Open  *regexp2.Regexp
	Close *regexp2.Regexp
}

// Any reports whether at least one delimiter is present.
func (d Delimiters) Any() bool {
	return d.Open != nil || d.Close != nil
}

// SubDelimiters extracts the delimiter fragments of raw so they can be
// stripped from a match independently of the content groups. Only the i and
// u letters of flags apply to the fragments.
func (p Pattern) SubDelimiters(raw, flags string) (Delimiters, error) {
	var d Delimiters
	runes := []rune(raw)
	flags = fragmentFlags(flags)

	open, err := p.find(Open, runes)
	if err != nil {
		return d, err
	}
	if open != nil && open.fragment != "" {
		if d.Open, err = regex.Compile("^(?:"+open.fragment+")", flags); err != nil {
			return Delimiters{}, errors.Wrapf(err, errors.ErrPatternInvalid, "open fragment %q does not compile", open.fragment)
		}
	}

	closing, err := p.find(Close, runes)
	if err != nil {
		return d, err
	}
	if closing != nil && closing.fragment != "" {
		if d.Close, err = regex.Compile("(?:"+closing.fragment+")$", flags); err != nil {
			return Delimiters{}, errors.Wrapf(err, errors.ErrPatternInvalid, "close fragment %q does not compile", closing.fragment)
		}
	}
	return d, nil
}

func fragmentFlags(flags string) string {
	var b strings.Builder
	for _, f := range flags {
		if f == 'i' || f == 'u' {
			b.WriteRune(f)
		}
	}
	return b.String()
}

// Simplified returns the literal authoring form of p: the capture becomes
// the $1 substitution and escapes are dropped, so `\[\[open:(.*?)\]\]`
// reads `[[open:$1]]`.
func (p Pattern) Simplified() Pattern {
	return Pattern{
		Open:  simplifySide(p.Open),
		Close: simplifySide(p.Close),
	}
}

func simplifySide(expr string) string {
	expr = strings.Replace(expr, "(.*?)", "$1", 1)
	return strings.ReplaceAll(expr, `\`, "")
}

// Rewrite ports raw from p's syntax to next's by textual substitution of the
// first open and first close placeholder. It is best effort: placeholder
// look-alikes elsewhere in raw are rewritten too, and callers must validate
// the result.
func (p Pattern) Rewrite(raw string, next Pattern) (string, error) {
	target := next.Simplified()
	runes := []rune(raw)
	for _, which := range []Side{Open, Close} {
		ph, err := p.find(which, runes)
		if err != nil {
			return raw, err
		}
		if ph == nil {
			continue
		}
		runes = splice(runes, ph, strings.Replace(target.side(which), "$1", ph.fragment, 1))
	}
	return string(runes), nil
}
