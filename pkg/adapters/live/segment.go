package live

import (
	"strings"

	"github.com/arthur-debert/regexmark/pkg/scanner"
)

// fence returns the fence marker a line opens or closes, or "".
func fence(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return ""
	}
	for _, ch := range []string{"`", "~"} {
		n := 0
		for n < len(trimmed) && trimmed[n] == ch[0] {
			n++
		}
		if n >= 3 {
			return strings.Repeat(ch, n)
		}
	}
	return ""
}

// fenceTracker follows fenced code blocks line by line.
type fenceTracker struct {
	open string
}

// line feeds one line and reports whether it is code.
func (f *fenceTracker) line(line string) bool {
	marker := fence(line)
	switch {
	case f.open == "" && marker != "":
		f.open = marker
		return true
	case f.open != "":
		if marker != "" && marker[0] == f.open[0] && len(marker) >= len(f.open) &&
			strings.TrimSpace(strings.TrimLeft(line, " ")[len(marker):]) == "" {
			f.open = ""
		}
		return true
	}
	return false
}

// Segments splits text, which starts at byte offset base on a line
// boundary, into one block per line. before is the document text ahead of
// base and is only read for fence state. Lines inside fenced blocks are
// code; elsewhere backtick code spans become code segments.
func Segments(text string, base int, before string) []scanner.Block {
	var tracker fenceTracker
	for _, l := range strings.Split(before, "\n") {
		tracker.line(l)
	}

	var blocks []scanner.Block
	offset := base
	for _, l := range strings.Split(text, "\n") {
		code := tracker.line(l)
		if l != "" {
			if code {
				blocks = append(blocks, scanner.Block{Segments: []scanner.Segment{{Text: l, Offset: offset, Code: true}}})
			} else {
				blocks = append(blocks, scanner.Block{Segments: inlineSegments(l, offset)})
			}
		}
		offset += len(l) + 1
	}
	return blocks
}

// inlineSegments splits a line on backtick code spans. A run of n backticks
// opens a span closed by the next run of exactly n; an unclosed run is
// plain text.
func inlineSegments(line string, offset int) []scanner.Segment {
	var segs []scanner.Segment
	add := func(from, to int, code bool) {
		if to > from {
			segs = append(segs, scanner.Segment{Text: line[from:to], Offset: offset + from, Code: code})
		}
	}

	start := 0
	i := 0
	for i < len(line) {
		if line[i] != '`' {
			i++
			continue
		}
		n := runLength(line, i)
		closeAt := -1
		for j := i + n; j < len(line); {
			if line[j] != '`' {
				j++
				continue
			}
			m := runLength(line, j)
			if m == n {
				closeAt = j
				break
			}
			j += m
		}
		if closeAt < 0 {
			i += n
			continue
		}
		add(start, i, false)
		add(i, closeAt+n, true)
		i = closeAt + n
		start = i
	}
	add(start, len(line), false)
	return segs
}

func runLength(s string, i int) int {
	n := 0
	for i+n < len(s) && s[i+n] == '`' {
		n++
	}
	return n
}
