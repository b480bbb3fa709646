package parser

import (
	"fmt"
	"strings"
)

// String renders a span as plain("...") or bold("...")
func (s Span) String() string {
	if s.Kind == SpanBold {
		return fmt.Sprintf("bold(%q)", s.Text)
	}
	return fmt.Sprintf("plain(%q)", s.Text)
}

func (in Inline) String() string {
	parts := make([]string, len(in))
	for i, s := range in {
		parts[i] = s.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// String renders a block on one or more lines for debugging
func (b Block) String() string {
	switch b.Kind {
	case KindHeading:
		return fmt.Sprintf("heading(%d) %s", b.Level, b.Content)
	case KindBulletList:
		var sb strings.Builder
		sb.WriteString("list")
		for _, item := range b.Items {
			sb.WriteString("\n  - ")
			sb.WriteString(item.String())
		}
		return sb.String()
	case KindSpacer:
		return "spacer"
	default:
		return fmt.Sprintf("paragraph %s", b.Content)
	}
}

// Dump renders a block sequence one block per line
func Dump(blocks []Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		sb.WriteString(b.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
