package rules

import (
	"regexp"
	"strings"
)

var (
	negatedClassRE = regexp.MustCompile(`\[\^((?:\\.|[^\]\\])*)\]`)
	newlineEscRE   = regexp.MustCompile(`\\(?:n|r|s|u000[aAdD]|u202[89])|[\n\r\x{2028}\x{2029}]`)
	classExcludeRE = regexp.MustCompile(`\\(?:n|s|u000[aA])|\n`)
)

// MayMatchNewline is a heuristic for raw patterns that could match across a
// line break: a negated class that does not exclude \n, or a newline-matching
// escape or literal line terminator outside negated classes. Doubled backslashes are literal and are
// stripped first.
func MayMatchNewline(raw string) bool {
	s := strings.ReplaceAll(raw, `\\`, "")

	for _, m := range negatedClassRE.FindAllStringSubmatch(s, -1) {
		if !classExcludeRE.MatchString(m[1]) {
			return true
		}
	}

	rest := negatedClassRE.ReplaceAllString(s, "")
	return newlineEscRE.MatchString(rest)
}
