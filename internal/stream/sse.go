package stream

import (
	"bufio"
	"io"
	"strings"
)

// event is a single Server-Sent Event. Only data lines matter for chat
// completion streams; event names and ids are ignored.
type event struct {
	Data string
}

// sseReader parses Server-Sent Events from an io.Reader.
type sseReader struct {
	scanner *bufio.Scanner
}

const maxLineSize = 1024 * 1024

func newSSEReader(r io.Reader) *sseReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &sseReader{scanner: s}
}

// Next returns the next event, or nil, io.EOF when the stream ends.
// Multiple data lines in one event are joined with "\n".
func (r *sseReader) Next() (*event, error) {
	var data []string
	var hasContent bool

	for r.scanner.Scan() {
		line := strings.TrimSuffix(r.scanner.Text(), "\r")

		if line == "" {
			if hasContent {
				return &event{Data: strings.Join(data, "\n")}, nil
			}
			continue
		}

		// comment
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "data":
			data = append(data, value)
			hasContent = true
		case "event", "id", "retry":
			hasContent = true
		}
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	if hasContent {
		return &event{Data: strings.Join(data, "\n")}, nil
	}
	return nil, io.EOF
}
