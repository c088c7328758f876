// Package rules models a single regex-to-class mapping and decides where it
// applies.
//
// # Rule Anatomy
//
// A rule pairs an author-facing pattern with a CSS class:
//
//	pattern = "{{open:==}}(?<hl>.+?){{close:==}}"
//	flags   = ["g", "i"]
//	class   = "highlight"
//	hide    = true
//
// The pattern may embed open/close placeholders (see package pattern) which
// resolve to capture groups; with hide set, the delimiter text they match is
// suppressed when the match is rendered.
//
// # Eligibility
//
// A rule applies to a piece of text only when it is valid, enabled for the
// current view mode, allowed inside code when the text is code, and admitted
// by its auto-rules for the active document. Cheap checks run first; the
// regex is compiled last.
//
// # Validation
//
// Validate reports every problem as a stable error code. The newline
// heuristic is warning-class: it is surfaced to the author but does not stop
// the rule from applying, because matches spanning a line break are dropped
// at scan time anyway.
package rules
