package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/summd/internal/parser"
)

// ============================================================================
// String Builder Pool - the summary is re-rendered on every stream chunk
// ============================================================================

var builderPool = sync.Pool{
	New: func() interface{} {
		return &strings.Builder{}
	},
}

func getBuilder() *strings.Builder {
	b := builderPool.Get().(*strings.Builder)
	b.Reset()
	return b
}

func putBuilder(b *strings.Builder) {
	if b.Cap() < 64*1024 { // Don't pool huge builders
		builderPool.Put(b)
	}
}

// ============================================================================
// Block Renderer
// ============================================================================

const bulletGlyph = "• "

// Renderer maps parsed blocks to terminal text. A plain renderer emits no
// escape sequences and marks level 1 and 2 headings with an underline row.
type Renderer struct {
	styles *StyleManager
	width  int
	plain  bool
}

// NewRenderer creates a styled renderer wrapping at width (0 disables wrapping)
func NewRenderer(s *StyleManager, width int) *Renderer {
	return &Renderer{styles: s, width: width}
}

// NewPlainRenderer creates a renderer without styling or wrapping
func NewPlainRenderer() *Renderer {
	return &Renderer{styles: DefaultStyles(), plain: true}
}

// SetWidth changes the wrap width
func (r *Renderer) SetWidth(width int) {
	r.width = width
}

// Render renders blocks one per line group, in order
func (r *Renderer) Render(blocks []parser.Block) string {
	b := getBuilder()
	defer putBuilder(b)

	for i, block := range blocks {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch block.Kind {
		case parser.KindHeading:
			r.writeHeading(b, block)
		case parser.KindBulletList:
			r.writeList(b, block.Items)
		case parser.KindSpacer:
			// empty separator line
		default:
			b.WriteString(r.wrap(r.inline(block.Content, r.styles.Text), r.width))
		}
	}
	return b.String()
}

func (r *Renderer) writeHeading(b *strings.Builder, block parser.Block) {
	if r.plain {
		text := block.Content.Text()
		b.WriteString(text)
		switch block.Level {
		case 1:
			b.WriteString("\n" + strings.Repeat("=", lipgloss.Width(text)))
		case 2:
			b.WriteString("\n" + strings.Repeat("-", lipgloss.Width(text)))
		}
		return
	}
	style := r.styles.HeadingStyle(block.Level)
	b.WriteString(r.wrap(r.inline(block.Content, style), r.width))
}

func (r *Renderer) writeList(b *strings.Builder, items []parser.Inline) {
	marker := bulletGlyph
	if !r.plain {
		marker = r.styles.Bullet.Render(bulletGlyph)
	}
	indent := lipgloss.Width(bulletGlyph)

	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		body := r.inline(item, r.styles.Text)
		if r.width > indent {
			body = r.wrap(body, r.width-indent)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, marker, body))
	}
}

// inline renders spans in sequence, skipping zero-length spans
func (r *Renderer) inline(content parser.Inline, base lipgloss.Style) string {
	b := getBuilder()
	defer putBuilder(b)

	for _, span := range content {
		if span.Text == "" {
			continue
		}
		if r.plain {
			b.WriteString(span.Text)
			continue
		}
		style := base
		if span.Kind == parser.SpanBold {
			style = base.Inherit(r.styles.Bold)
		}
		b.WriteString(style.Render(span.Text))
	}
	return b.String()
}

func (r *Renderer) wrap(s string, width int) string {
	if r.plain || width <= 0 || s == "" {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
