package rules

import (
	"strings"

	"github.com/arthur-debert/regexmark/pkg/document"
	"github.com/arthur-debert/regexmark/pkg/pattern"
)

// Mode is the view a render pass runs for.
type Mode string

const (
	ModeReading Mode = "reading"
	ModeSource  Mode = "source"
	ModeLive    Mode = "live"
)

// ParseMode maps a mode name to a Mode. Unknown names yield the empty Mode,
// for which no view flag is consulted.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reading", "preview":
		return ModeReading
	case "source":
		return ModeSource
	case "live":
		return ModeLive
	}
	return ""
}

// LegalFlags are the regex flags an author may set. The match-indices flag
// d is implied and never stored.
const LegalFlags = "gimsuy"

// Flags is an ordered set of regex flag letters.
type Flags []string

// DefaultFlags is applied when a rule specifies none.
func DefaultFlags() Flags {
	return Flags{"g", "i"}
}

// ParseFlags filters s down to legal, unique, lower-case flag letters.
func ParseFlags(s string) Flags {
	flags := Flags{}
	for _, r := range strings.ToLower(s) {
		f := string(r)
		if strings.Contains(LegalFlags, f) && !flags.Has(f) {
			flags = append(flags, f)
		}
	}
	return flags
}

// FlagsFrom is ParseFlags over a list of letters.
func FlagsFrom(list []string) Flags {
	return ParseFlags(strings.Join(list, ""))
}

// Has reports whether f is set.
func (f Flags) Has(flag string) bool {
	for _, x := range f {
		if x == flag {
			return true
		}
	}
	return false
}

// String joins the letters, e.g. "gi".
func (f Flags) String() string {
	return strings.Join(f, "")
}

// Source is the flag string the host regex engine is built with, including
// the forced match-indices flag.
func (f Flags) Source() string {
	return f.String() + "d"
}

// AutoRuleType selects what an auto-rule inspects.
type AutoRuleType string

const (
	AutoRulePath        AutoRuleType = "path"
	AutoRuleFrontmatter AutoRuleType = "frontmatter"
)

// AutoRule gates a rule per document by path or frontmatter property.
type AutoRule struct {
	Type    AutoRuleType `json:"type" yaml:"type"`
	Value   string       `json:"value" yaml:"value"`
	Exclude bool         `json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// ViewMode holds the per-view visibility of a rule.
type ViewMode struct {
	Reading   bool       `json:"reading" yaml:"reading"`
	Source    bool       `json:"source" yaml:"source"`
	Live      bool       `json:"live" yaml:"live"`
	CodeBlock *bool      `json:"codeBlock,omitempty" yaml:"codeBlock,omitempty"`
	AutoRules []AutoRule `json:"autoRules,omitempty" yaml:"autoRules,omitempty"`
}

// DefaultViewMode enables a rule everywhere.
func DefaultViewMode() ViewMode {
	return ViewMode{Reading: true, Source: true, Live: true}
}

// Enabled reports whether the flag for mode is set. The empty mode is
// always enabled.
func (v ViewMode) Enabled(mode Mode) bool {
	switch mode {
	case ModeReading:
		return v.Reading
	case ModeSource:
		return v.Source
	case ModeLive:
		return v.Live
	}
	return true
}

// ShowInCode reports whether the rule applies inside code spans and blocks.
// Unset means yes.
func (v ViewMode) ShowInCode() bool {
	return v.CodeBlock == nil || *v.CodeBlock
}

// Off reports whether every view flag is cleared.
func (v ViewMode) Off() bool {
	return !v.Reading && !v.Source && !v.Live
}

func (v ViewMode) clone() ViewMode {
	out := v
	if v.CodeBlock != nil {
		b := *v.CodeBlock
		out.CodeBlock = &b
	}
	if v.AutoRules != nil {
		out.AutoRules = append([]AutoRule(nil), v.AutoRules...)
	}
	return out
}

// Bool returns a pointer to b, for optional view-mode fields.
func Bool(b bool) *bool {
	return &b
}

// Context is what eligibility checks know about the text being rendered.
type Context struct {
	Mode         Mode
	InCode       bool
	Document     *document.Info
	Pattern      pattern.Pattern
	PropertyName string
}
