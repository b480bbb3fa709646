package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/summd/internal/parser"
)

func TestPlainRender(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "headings and lists",
			raw:      "# Title\n\n## Sub\n- **a** b\n- c\nText **bold**\n### Small",
			expected: "Title\n=====\n\nSub\n---\n• a b\n• c\nText bold\nSmall",
		},
		{
			name:     "reasoning stripped",
			raw:      "<think>ignore me</think>\nJust text",
			expected: "Just text",
		},
		{
			name:     "dewrapped bullet",
			raw:      "**- wrapped**",
			expected: "• wrapped",
		},
		{
			name:     "labeled plus fields",
			raw:      "+ Name: Alice + Age: 30",
			expected: "• Name: Alice\n• Age: 30",
		},
		{
			name:     "empty buffer",
			raw:      "",
			expected: "",
		},
	}

	r := NewPlainRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Render(parser.Parse(tt.raw))
			if got != tt.expected {
				t.Errorf("Render(%q) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestRenderSkipsEmptySpans(t *testing.T) {
	blocks := []parser.Block{
		parser.Paragraph(parser.Inline{parser.Bold(""), parser.Plain("x")}),
	}
	if got := NewPlainRenderer().Render(blocks); got != "x" {
		t.Errorf("Render = %q, want %q", got, "x")
	}
}

func TestStyledRenderWraps(t *testing.T) {
	raw := "A paragraph with **several** words that must wrap inside a narrow column\n- a bullet item that is also long enough to wrap"
	got := NewRenderer(DefaultStyles(), 20).Render(parser.Parse(raw))

	for _, line := range strings.Split(got, "\n") {
		if w := lipgloss.Width(line); w > 20 {
			t.Errorf("line %q has width %d, want <= 20", line, w)
		}
	}
	for _, word := range []string{"several", "column", "bullet", "wrap"} {
		if !strings.Contains(got, word) {
			t.Errorf("rendered output missing %q:\n%s", word, got)
		}
	}
	if !strings.Contains(got, bulletGlyph) {
		t.Errorf("rendered output missing bullet glyph:\n%s", got)
	}
}

func TestParseANSIColor(t *testing.T) {
	tests := []struct {
		code     string
		expected lipgloss.Color
	}{
		{"36", lipgloss.Color("6")},
		{"90", lipgloss.Color("8")},
		{"212", lipgloss.Color("212")},
		{"#ff00ff", lipgloss.Color("#ff00ff")},
	}
	for _, tt := range tests {
		if got := parseANSIColor(tt.code); got != tt.expected {
			t.Errorf("parseANSIColor(%q) = %q, want %q", tt.code, got, tt.expected)
		}
	}
}
