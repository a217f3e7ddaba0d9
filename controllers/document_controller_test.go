package controllers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextShortPassthrough(t *testing.T) {
	chunks := chunkText("just a short note", 100)
	require.Len(t, chunks, 1)
	assert.Equal(t, "just a short note", chunks[0])
}

func TestChunkTextEmpty(t *testing.T) {
	assert.Nil(t, chunkText("   ", 100))
	assert.Nil(t, chunkText("", 100))
}

func TestChunkTextSplitsOnParagraphs(t *testing.T) {
	text := strings.Repeat("a", 60) + "\n\n" + strings.Repeat("b", 60) + "\n\n" + strings.Repeat("c", 60)
	chunks := chunkText(text, 100)
	require.True(t, len(chunks) >= 2)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 100)
	}
}

func TestChunkTextHardSplitsOversizedParagraph(t *testing.T) {
	text := strings.Repeat("x", 250)
	chunks := chunkText(text, 100)
	require.True(t, len(chunks) >= 3)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 100)
	}
}
