package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/gubarz/summd/internal/parser"
)

// RenderGlamour renders a raw buffer as general markdown with glamour after
// stripping reasoning segments. Unlike Renderer it does not apply the
// de-wrap or "+" field splitting rules.
func RenderGlamour(raw string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := r.Render(parser.Clean(raw))
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	// Trim trailing whitespace that glamour adds
	return strings.TrimRight(out, "\n "), nil
}
