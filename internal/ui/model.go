package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gubarz/summd/internal/log"
	"github.com/gubarz/summd/internal/output"
	"github.com/gubarz/summd/internal/parser"
	"github.com/gubarz/summd/internal/session"
	"github.com/gubarz/summd/internal/stream"
)

// errorMessage is the only failure text shown to the user; details go to the log
const errorMessage = "Error summarizing video. Please try again."

// chromeHeight is the number of lines around the summary viewport
const chromeHeight = 6

// ============================================================================
// Messages
// ============================================================================

// chunkMsg carries one piece of streamed text for generation gen
type chunkMsg struct {
	gen  uint64
	text string
}

// streamDoneMsg ends the stream of generation gen
type streamDoneMsg struct {
	gen uint64
	err error
}

// copiedMsg reports the result of copying the summary
type copiedMsg struct {
	err error
}

// waitForEvent reads the next message of a running stream. Only one wait is
// outstanding at a time, so chunks are applied in arrival order.
func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

// ============================================================================
// Model
// ============================================================================

// Options configures the interactive summarizer
type Options struct {
	Client   *stream.Client
	Sink     *output.Sink
	VideoURL string
	UseLocal bool
	Timeout  time.Duration
}

// model is the Bubble Tea model for the summarizer. The summary view is
// re-derived from the session buffer after every chunk.
type model struct {
	width    int
	height   int
	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	renderer *Renderer
	quitting bool

	buffer  *session.Buffer
	client  *stream.Client
	sink    *output.Sink
	timeout time.Duration

	useLocal bool
	loading  bool
	errMsg   string
	status   string
	cancel   context.CancelFunc
	events   <-chan tea.Msg
}

func newModel(opts Options) model {
	ti := textinput.New()
	ti.Placeholder = "https://www.youtube.com/watch?v=..."
	ti.Prompt = "❯ "
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 60
	ti.SetValue(opts.VideoURL)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Dim

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	return model{
		width:    80,
		height:   24,
		input:    ti,
		spinner:  sp,
		viewport: viewport.New(80, 24-chromeHeight),
		renderer: NewRenderer(styles, 80),
		buffer:   session.New(),
		client:   opts.Client,
		sink:     opts.Sink,
		timeout:  timeout,
		useLocal: opts.UseLocal,
	}
}

// Init implements tea.Model
func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case chunkMsg:
		if !m.buffer.Current(msg.gen) {
			return m, nil
		}
		if m.buffer.Append(msg.gen, msg.text) {
			m.refresh()
		}
		return m, waitForEvent(m.events)

	case streamDoneMsg:
		if !m.buffer.Current(msg.gen) {
			return m, nil
		}
		m.finish(msg.err)
		return m, nil

	case copiedMsg:
		switch {
		case errors.Is(msg.err, output.ErrNoClipboard):
			m.status = "No clipboard tool found"
		case msg.err != nil:
			log.Error("copy failed: %v", msg.err)
			m.status = "Copy failed"
		default:
			m.status = "Copied summary"
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes keys that are not text input
func (m *model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.stop()
		m.quitting = true
		return tea.Quit, true
	case "enter":
		return m.summarize(), true
	case "ctrl+r":
		m.reset()
		return nil, true
	case "ctrl+l":
		m.useLocal = !m.useLocal
		return nil, true
	case "ctrl+y":
		return m.copySummary(), true
	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd, true
	}
	return nil, false
}

func (m *model) resize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(10, width-4)
	m.viewport.Width = width
	m.viewport.Height = max(1, height-chromeHeight)
	m.renderer.SetWidth(width)
	m.refresh()
}

// summarize starts a new stream, discarding whatever the buffer held
func (m *model) summarize() tea.Cmd {
	if m.loading {
		return nil
	}
	url := strings.TrimSpace(m.input.Value())
	if url == "" {
		m.errMsg = "Enter a video URL to summarize."
		return nil
	}

	gen := m.buffer.Reset()
	m.errMsg = ""
	m.status = ""
	m.loading = true
	m.refresh()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	events := make(chan tea.Msg, 64)
	m.events = events

	log.Debug("summarize: gen=%d url=%s local=%t", gen, url, m.useLocal)
	start := startStream(ctx, m.client, m.timeout, gen, stream.Request{VideoURL: url, UseLocal: m.useLocal}, events)
	return tea.Batch(start, waitForEvent(events), m.spinner.Tick)
}

// startStream runs the request in the background, publishing chunks on
// events until the stream ends or ctx is cancelled by a reset.
func startStream(ctx context.Context, client *stream.Client, timeout time.Duration, gen uint64, req stream.Request, events chan<- tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			defer close(events)
			send := func(msg tea.Msg) {
				select {
				case events <- msg:
				case <-ctx.Done():
				}
			}

			reqCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			err := client.Summarize(reqCtx, req, func(chunk string) {
				send(chunkMsg{gen: gen, text: chunk})
			})
			send(streamDoneMsg{gen: gen, err: err})
		}()
		return nil
	}
}

func (m *model) finish(err error) {
	m.loading = false
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("summarization failed: %v", err)
		m.errMsg = errorMessage
	}
}

// reset clears the summary and error, abandoning any running stream
func (m *model) reset() {
	m.stop()
	gen := m.buffer.Reset()
	log.Debug("reset: gen=%d", gen)
	m.loading = false
	m.errMsg = ""
	m.status = ""
	m.refresh()
}

func (m *model) stop() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m *model) copySummary() tea.Cmd {
	text := parser.Clean(m.buffer.Snapshot().Text)
	if strings.TrimSpace(text) == "" || m.sink == nil {
		return nil
	}
	sink := m.sink
	return func() tea.Msg {
		return copiedMsg{err: sink.OutputWithMode(text, output.ModeCopy)}
	}
}

// refresh re-parses the buffer and keeps the view pinned to the bottom while
// the user has not scrolled up
func (m *model) refresh() {
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderer.Render(m.buffer.Snapshot().Blocks()))
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// ============================================================================
// View
// ============================================================================

// View implements tea.Model
func (m model) View() string {
	if m.quitting {
		return ""
	}

	b := getBuilder()
	defer putBuilder(b)

	b.WriteString(styles.Title.Render("YouTube Video Summarizer"))
	b.WriteString("  ")
	b.WriteString(styles.Toggle.Render(m.inferenceLabel()))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(styles.Divider.Render(strings.Repeat("─", max(1, m.width))))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(styles.Error.Render(m.errMsg))
	}
	b.WriteString("\n")
	b.WriteString(styles.Dim.Render("Enter summarize • Ctrl+L local/remote • Ctrl+R reset • Ctrl+Y copy • ESC exit"))
	return b.String()
}

func (m model) inferenceLabel() string {
	if m.useLocal {
		return "Local"
	}
	return "Remote"
}

// statusLine shows progress; the spinner only runs for remote inference,
// where the summary arrives in one piece
func (m model) statusLine() string {
	switch {
	case m.loading && !m.useLocal:
		return fmt.Sprintf("%s Summarizing...", m.spinner.View())
	case m.loading:
		return styles.Dim.Render("Summarizing...")
	case m.status != "":
		return styles.Dim.Render(m.status)
	default:
		return ""
	}
}
