// Package regex compiles user-authored expressions with JavaScript semantics.
//
// Rules are written for a JavaScript host, so expressions are compiled with
// regexp2 in ECMAScript mode: lazy quantifiers, lookaround, `(?<name>...)`
// groups and per-group indices all behave the way rule authors expect.
// Positions reported by regexp2 are rune offsets.
package regex

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// MatchTimeout bounds a single search so a pathological user pattern cannot
// stall a render pass.
var MatchTimeout = 250 * time.Millisecond

// Options translates JavaScript flag letters into regexp2 options.
// The g and y flags drive iteration and are handled by callers; d is implied
// because regexp2 always reports group positions.
func Options(flags string) regexp2.RegexOptions {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	for _, f := range flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'u':
			opts |= regexp2.Unicode
		}
	}
	return opts
}

// Compile builds expr with the given JavaScript flag letters.
func Compile(expr, flags string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(expr, Options(flags))
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = MatchTimeout
	return re, nil
}

// MustCompile is like Compile but panics on error. Only for constants.
func MustCompile(expr, flags string) *regexp2.Regexp {
	re, err := Compile(expr, flags)
	if err != nil {
		panic(err)
	}
	return re
}

// Valid reports whether expr compiles with flags.
func Valid(expr, flags string) bool {
	_, err := Compile(expr, flags)
	return err == nil
}

// Test reports whether re matches anywhere in s. Timeouts count as no match.
func Test(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}

// FindAt returns the first match at or after the rune offset start, or nil.
func FindAt(re *regexp2.Regexp, runes []rune, start int) *regexp2.Match {
	m, err := re.FindRunesMatchStartingAt(runes, start)
	if err != nil {
		return nil
	}
	return m
}

// IsNamed reports whether a group name was given by the author rather than
// assigned by number.
func IsNamed(name string) bool {
	if name == "" {
		return false
	}
	return strings.TrimLeft(name, "0123456789") != ""
}

// NamedGroups returns the author-named groups of re in declaration order.
func NamedGroups(re *regexp2.Regexp) []string {
	var names []string
	for _, n := range re.GetGroupNames() {
		if IsNamed(n) {
			names = append(names, n)
		}
	}
	return names
}
