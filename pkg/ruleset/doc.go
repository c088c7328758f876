// Package ruleset holds the ordered list of rules, the shared open/close
// pattern and the frontmatter property name, together with the settings
// codec that persists them.
//
// Order matters: when several rules match the same text, the earlier rule
// wins. Mutations are explicit calls that return their validation results
// synchronously; nothing observes the set behind the caller's back.
//
// Persisted layout (JSON):
//
//	{
//	  "mark":    [{"regex": "...", "flags": ["g","i"], "class": "...", "hide": false, "viewMode": {...}}],
//	  "pattern": {"open": "{{open:(.*?)}}", "close": "{{close:(.*?)}}"},
//	  "propertyName": "regex_mark"
//	}
//
// A bare array of rules and the deprecated per-rule "disable" flag are
// accepted on load and migrated.
package ruleset
