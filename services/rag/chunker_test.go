package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitShortTextIsSingleChunk(t *testing.T) {
	c := NewChunker(1000, 200)
	assert.Equal(t, []string{"hello world"}, c.Split("  hello world  "))
	assert.Nil(t, c.Split("   "))
	assert.Nil(t, c.Split(""))
}

func TestSplitRespectsSizeBound(t *testing.T) {
	c := NewChunker(10, 3)
	chunks := c.Split("aaaa bbbb cccc dddd eeee")
	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 10, "chunk %q exceeds size", chunk)
	}
	// No content lost.
	joined := strings.Join(chunks, " ")
	for _, word := range []string{"aaaa", "bbbb", "cccc", "dddd", "eeee"} {
		assert.Contains(t, joined, word)
	}
}

func TestSplitPrefersParagraphBreaks(t *testing.T) {
	c := NewChunker(30, 0)
	chunks := c.Split("first paragraph here\n\nsecond paragraph here")
	require.Len(t, chunks, 2)
	assert.Equal(t, "first paragraph here", chunks[0])
	assert.Equal(t, "second paragraph here", chunks[1])
}

func TestSplitHardCutsUnbrokenText(t *testing.T) {
	c := NewChunker(10, 3)
	text := "abcdefghijklmnopqrstuvwxy"
	chunks := c.Split(text)
	require.True(t, len(chunks) > 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 10)
	}
	// Neighboring chunks share the overlap region.
	assert.Equal(t, chunks[0][len(chunks[0])-3:], chunks[1][:3])
}

func TestSplitCarriesOverlap(t *testing.T) {
	c := NewChunker(20, 8)
	chunks := c.Split("one two three four five six seven eight")
	require.True(t, len(chunks) > 1)
	// Some tail of each chunk reappears at the head of the next.
	for i := 1; i < len(chunks); i++ {
		head := strings.Fields(chunks[i])[0]
		assert.Contains(t, chunks[i-1], head, "chunk %d should overlap with its predecessor", i)
	}
}
