package parser

import (
	"regexp"
	"strings"
)

// thinkBlock matches a reasoning segment and the line break following it.
// An unclosed <think> never matches and is left in place until the closing
// tag arrives.
var thinkBlock = regexp.MustCompile(`(?s)<think>.*?</think>([ \t]*\n)?`)

// Clean normalizes line endings and strips <think>...</think> segments.
// A segment that starts a line takes its trailing line break with it, so
// "<think>x</think>\nSummary" leaves "Summary"; a segment embedded in a line
// only removes itself, so "a<think>x</think>\nb" leaves "a\nb".
func Clean(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")

	matches := thinkBlock.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		b.WriteString(s[last:start])
		if m[2] >= 0 && !atLineStart(s, start) {
			// keep the line break that ends the surrounding line
			b.WriteByte('\n')
		}
		last = end
	}
	b.WriteString(s[last:])
	return b.String()
}

func atLineStart(s string, i int) bool {
	return i == 0 || s[i-1] == '\n'
}
