// Package session owns the growing summary buffer that stream chunks are
// appended to. Every read is a consistent snapshot; a reset starts a new
// generation so chunks and parse results from an earlier stream are dropped.
package session

import (
	"strings"
	"sync"

	"github.com/gubarz/summd/internal/parser"
)

// Snapshot is the buffer content at one generation
type Snapshot struct {
	Text string
	Gen  uint64
}

// Blocks parses the snapshot
func (s Snapshot) Blocks() []parser.Block {
	return parser.Parse(s.Text)
}

// Buffer is an append-only text buffer with whole-value reset
type Buffer struct {
	mu   sync.RWMutex
	text strings.Builder
	gen  uint64
}

// New creates an empty buffer at generation zero
func New() *Buffer {
	return &Buffer{}
}

// Generation returns the current generation
func (b *Buffer) Generation() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.gen
}

// Append adds a chunk if gen is still current. Chunks from a stream started
// before the last Reset are discarded and Append reports false.
func (b *Buffer) Append(gen uint64, chunk string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.gen {
		return false
	}
	b.text.WriteString(chunk)
	return true
}

// Reset replaces the content with empty and starts a new generation, which
// it returns.
func (b *Buffer) Reset() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = strings.Builder{}
	b.gen++
	return b.gen
}

// Snapshot returns the current content and generation atomically
func (b *Buffer) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Snapshot{Text: b.text.String(), Gen: b.gen}
}

// Len returns the content length in bytes
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.Len()
}

// Current reports whether a result derived from gen may still be shown
func (b *Buffer) Current(gen uint64) bool {
	return b.Generation() == gen
}
