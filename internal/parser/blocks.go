package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind identifies the variant of a Block
type Kind int

const (
	KindParagraph Kind = iota
	KindHeading
	KindBulletList
	KindSpacer
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindBulletList:
		return "list"
	case KindSpacer:
		return "spacer"
	default:
		return "paragraph"
	}
}

// Block is one structurally classified unit of rendered output.
// Only the fields belonging to Kind are populated.
type Block struct {
	Kind    Kind
	Level   int      // Heading level, 1-3
	Content Inline   // Heading and Paragraph text
	Items   []Inline // BulletList entries, in line order
}

// Heading returns a heading block of the given level
func Heading(level int, content Inline) Block {
	return Block{Kind: KindHeading, Level: level, Content: content}
}

// Paragraph returns a paragraph block
func Paragraph(content Inline) Block {
	return Block{Kind: KindParagraph, Content: content}
}

// BulletList returns a list block with one entry per item
func BulletList(items ...Inline) Block {
	return Block{Kind: KindBulletList, Items: items}
}

// Spacer returns an empty separator block
func Spacer() Block {
	return Block{Kind: KindSpacer}
}

// headingPrefixes are checked in order, first match wins
var headingPrefixes = []struct {
	prefix string
	level  int
}{
	{"# ", 1},
	{"## ", 2},
	{"### ", 3},
}

const bulletMarkers = "•*+-"

var (
	// "+ Name: Alice + Age: 30" style lines joined by a generator
	plusSeparator = regexp.MustCompile(`[\s\p{Zs}]+\+[\s\p{Zs}]+`)
	labeledField  = regexp.MustCompile(`^[\p{Lu}\p{Nd}][^:]{0,70}:`)
)

// Parse cleans a raw buffer and converts it into blocks
func Parse(raw string) []Block {
	return ToBlocks(Clean(raw))
}

// ToBlocks walks the lines of a cleaned buffer and emits blocks in line order.
// Consecutive bullet lines coalesce into a single BulletList. Every line
// produces some block; unrecognized lines degrade to Paragraph.
func ToBlocks(cleaned string) []Block {
	if cleaned == "" {
		return nil
	}

	var blocks []Block
	var pending []string

	flush := func() {
		if len(pending) == 0 {
			return
		}
		items := make([]Inline, len(pending))
		for i, item := range pending {
			items[i] = SplitInline(item)
		}
		blocks = append(blocks, BulletList(items...))
		pending = nil
	}

	for _, line := range strings.Split(cleaned, "\n") {
		line = dewrap(strings.TrimSuffix(line, "\r"))

		if level, rest, ok := matchHeading(line); ok {
			flush()
			blocks = append(blocks, Heading(level, SplitInline(rest)))
			continue
		}

		if marker, content, ok := matchBullet(line); ok {
			pending = append(pending, bulletItems(marker, content)...)
			continue
		}

		flush()

		if strings.TrimSpace(line) == "" {
			blocks = append(blocks, Spacer())
			continue
		}

		blocks = append(blocks, Paragraph(SplitInline(line)))
	}

	flush()
	return blocks
}

// dewrap unwraps a line fully enclosed in ** when the inner text is itself a
// heading or bullet, so it renders as that structure instead of one bold run.
func dewrap(line string) string {
	if len(line) < 4 || !strings.HasPrefix(line, boldMarker) || !strings.HasSuffix(line, boldMarker) {
		return line
	}
	inner := strings.TrimSpace(line[2 : len(line)-2])
	for _, h := range headingPrefixes {
		if strings.HasPrefix(inner, h.prefix) {
			return inner
		}
	}
	if r, _ := utf8.DecodeRuneInString(inner); inner != "" && strings.ContainsRune(bulletMarkers, r) {
		return inner
	}
	return line
}

func matchHeading(line string) (int, string, bool) {
	for _, h := range headingPrefixes {
		if strings.HasPrefix(line, h.prefix) {
			return h.level, line[len(h.prefix):], true
		}
	}
	return 0, "", false
}

// matchBullet reports whether line is a bullet: optional indentation, one
// marker rune, then at least one whitespace character.
func matchBullet(line string) (rune, string, bool) {
	s := strings.TrimLeftFunc(line, unicode.IsSpace)
	marker, size := utf8.DecodeRuneInString(s)
	if s == "" || !strings.ContainsRune(bulletMarkers, marker) {
		return 0, "", false
	}
	rest := s[size:]
	next, _ := utf8.DecodeRuneInString(rest)
	if rest == "" || !unicode.IsSpace(next) {
		return 0, "", false
	}
	return marker, strings.TrimSpace(rest), true
}

// bulletItems returns the list entries a bullet line contributes. A "+" line
// holding several labeled fields ("+ Name: Alice + Age: 30") is split into one
// entry per field; anything else is a single entry.
func bulletItems(marker rune, content string) []string {
	if marker != '+' || !plusSeparator.MatchString(content) {
		return []string{content}
	}

	var segments []string
	labeled := 0
	for _, seg := range plusSeparator.Split(content, -1) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if labeledField.MatchString(seg) {
			labeled++
		}
		segments = append(segments, seg)
	}

	if len(segments) >= 2 && labeled >= 2 {
		return segments
	}
	return []string{content}
}
