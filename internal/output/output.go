package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/gubarz/summd/internal/config"
)

// ============================================================================
// Clipboard Interface
// ============================================================================

// ErrNoClipboard is returned when no clipboard tool is installed and the
// clipboard has nowhere else to write
var ErrNoClipboard = errors.New("no clipboard tool found")

// Clipboard defines the interface for clipboard operations
type Clipboard interface {
	Copy(text string) error
}

// systemClipboard implements Clipboard using system commands. Without a
// fallback writer a missing clipboard tool is an error.
type systemClipboard struct {
	fallback io.Writer
}

// Copy copies text to the system clipboard
func (c *systemClipboard) Copy(text string) error {
	cmd := findClipboardCommand()
	if cmd == nil {
		if c.fallback == nil {
			return ErrNoClipboard
		}
		// No clipboard tool found, just print
		_, err := fmt.Fprintln(c.fallback, text)
		return err
	}
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}

// findClipboardCommand returns the appropriate clipboard command for the system
func findClipboardCommand() *exec.Cmd {
	switch {
	case commandExists("wl-copy"):
		return exec.Command("wl-copy")
	case commandExists("xclip"):
		return exec.Command("xclip", "-selection", "clipboard")
	case commandExists("xsel"):
		return exec.Command("xsel", "--clipboard", "--input")
	case commandExists("pbcopy"):
		return exec.Command("pbcopy")
	default:
		return nil
	}
}

// commandExists checks if a command is available in PATH
func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// ============================================================================
// Sink
// ============================================================================

// Mode represents how a finished summary is delivered
type Mode string

const (
	ModePrint Mode = "print"
	ModeCopy  Mode = "copy"
)

// ParseMode validates a mode name
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePrint, "":
		return ModePrint, nil
	case ModeCopy:
		return ModeCopy, nil
	default:
		return "", fmt.Errorf("unsupported output mode: %s (supported: print, copy)", s)
	}
}

// Sink writes finished summaries to stdout or the clipboard
type Sink struct {
	out       io.Writer
	clipboard Clipboard
}

// NewSink creates a sink writing to stdout
func NewSink() *Sink {
	return &Sink{
		out:       os.Stdout,
		clipboard: &systemClipboard{fallback: os.Stdout},
	}
}

// WithWriter sets the print destination (useful for testing)
func (s *Sink) WithWriter(w io.Writer) *Sink {
	s.out = w
	return s
}

// WithoutPrintFallback makes copy fail with ErrNoClipboard instead of printing
// when no clipboard tool exists. Used while a full-screen view owns stdout.
func (s *Sink) WithoutPrintFallback() *Sink {
	s.clipboard = &systemClipboard{}
	return s
}

// WithClipboard sets a custom clipboard implementation (useful for testing)
func (s *Sink) WithClipboard(c Clipboard) *Sink {
	s.clipboard = c
	return s
}

// Output delivers text using the configured mode
func (s *Sink) Output(text string) error {
	mode, err := ParseMode(config.GetOutput())
	if err != nil {
		return err
	}
	return s.OutputWithMode(text, mode)
}

// OutputWithMode delivers text with an explicit mode
func (s *Sink) OutputWithMode(text string, mode Mode) error {
	switch mode {
	case ModeCopy:
		return s.clipboard.Copy(text)
	default: // print
		_, err := fmt.Fprintln(s.out, strings.TrimRight(text, "\n"))
		return err
	}
}
