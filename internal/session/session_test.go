package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/summd/internal/parser"
)

func TestAppendAndSnapshot(t *testing.T) {
	b := New()
	gen := b.Generation()

	require.True(t, b.Append(gen, "# Ti"))
	require.True(t, b.Append(gen, "tle\n- one"))

	snap := b.Snapshot()
	assert.Equal(t, "# Title\n- one", snap.Text)
	assert.Equal(t, gen, snap.Gen)
	assert.Equal(t, len(snap.Text), b.Len())

	blocks := snap.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, parser.KindHeading, blocks[0].Kind)
	assert.Equal(t, parser.KindBulletList, blocks[1].Kind)
}

func TestResetDiscardsStaleChunks(t *testing.T) {
	b := New()
	old := b.Generation()
	require.True(t, b.Append(old, "first stream"))

	next := b.Reset()
	assert.NotEqual(t, old, next)
	assert.Empty(t, b.Snapshot().Text)
	assert.False(t, b.Current(old))
	assert.True(t, b.Current(next))

	assert.False(t, b.Append(old, "late chunk"))
	assert.Empty(t, b.Snapshot().Text)

	require.True(t, b.Append(next, "second"))
	assert.Equal(t, "second", b.Snapshot().Text)
}

func TestSnapshotIsStableAcrossAppends(t *testing.T) {
	b := New()
	gen := b.Generation()
	b.Append(gen, "abc")
	snap := b.Snapshot()
	b.Append(gen, "def")

	assert.Equal(t, "abc", snap.Text)
	assert.Equal(t, "abcdef", b.Snapshot().Text)
}

func TestConcurrentAppendAndParse(t *testing.T) {
	b := New()
	gen := b.Generation()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			b.Append(gen, "- item\n")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			snap := b.Snapshot()
			for _, blk := range snap.Blocks() {
				if blk.Kind == parser.KindBulletList {
					for _, item := range blk.Items {
						assert.Equal(t, "item", item.Text())
					}
				}
			}
		}
	}()
	wg.Wait()

	blocks := b.Snapshot().Blocks()
	require.Len(t, blocks, 2)
	assert.Len(t, blocks[0].Items, 200)
	assert.Equal(t, parser.KindSpacer, blocks[1].Kind)
}
