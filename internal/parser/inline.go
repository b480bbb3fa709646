package parser

import (
	"regexp"
	"strings"
)

const boldMarker = "**"

// SpanKind identifies the style of an inline run
type SpanKind int

const (
	SpanPlain SpanKind = iota
	SpanBold
)

// Span is one inline run of text within a block
type Span struct {
	Kind SpanKind
	Text string
}

// Plain returns an unstyled span
func Plain(text string) Span { return Span{Kind: SpanPlain, Text: text} }

// Bold returns an emphasized span
func Bold(text string) Span { return Span{Kind: SpanBold, Text: text} }

// Markdown returns the span text with bold markers restored
func (s Span) Markdown() string {
	if s.Kind == SpanBold {
		return boldMarker + s.Text + boldMarker
	}
	return s.Text
}

// Inline is an ordered sequence of spans
type Inline []Span

// Text concatenates span text, dropping emphasis
func (in Inline) Text() string {
	var b strings.Builder
	for _, s := range in {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Markdown concatenates span text with bold markers restored. For any line,
// SplitInline(line).Markdown() == line.
func (in Inline) Markdown() string {
	var b strings.Builder
	for _, s := range in {
		b.WriteString(s.Markdown())
	}
	return b.String()
}

var boldRun = regexp.MustCompile(`\*\*.*?\*\*`)

// SplitInline splits text into plain and bold spans. Delimited runs
// "**...**" become Bold; everything between them is kept verbatim as Plain.
// Unbalanced markers never match, so the text stays a single Plain span.
// Zero-length plain fragments are not emitted.
func SplitInline(text string) Inline {
	var out Inline
	last := 0
	for _, loc := range boldRun.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			out = append(out, Plain(text[last:loc[0]]))
		}
		out = append(out, fragment(text[loc[0]:loc[1]]))
		last = loc[1]
	}
	if last < len(text) {
		out = append(out, Plain(text[last:]))
	}
	return out
}

func fragment(part string) Span {
	if len(part) >= 4 && strings.HasPrefix(part, boldMarker) && strings.HasSuffix(part, boldMarker) {
		return Bold(part[2 : len(part)-2])
	}
	return Plain(part)
}
