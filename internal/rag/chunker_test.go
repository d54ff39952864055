package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunker_Split_SizeAndOverlap(t *testing.T) {
	chunker := NewChunker(1000, 150)
	text := strings.Repeat("abcdefghij", 250) // 2500 字符

	chunks := chunker.Split(text)
	require.NotEmpty(t, chunks)

	for i, chunk := range chunks {
		runeLen := len([]rune(chunk.Content))
		require.LessOrEqual(t, runeLen, 1000, "第 %d 块超出大小限制", i)
		require.Equal(t, i, chunk.ChunkIndex)
	}

	// 相邻块首尾共享恰好150个字符(末块除外)
	for i := 0; i+1 < len(chunks); i++ {
		cur := []rune(chunks[i].Content)
		next := []rune(chunks[i+1].Content)
		require.Equal(t, string(cur[len(cur)-150:]), string(next[:150]),
			"第 %d/%d 块之间重叠不正确", i, i+1)
	}
}

func TestChunker_Split_ShortText(t *testing.T) {
	chunker := NewChunker(1000, 150)

	chunks := chunker.Split("短文本")
	require.Len(t, chunks, 1)
	require.Equal(t, "短文本", chunks[0].Content)
	require.Equal(t, 0, chunks[0].ChunkIndex)
}

func TestChunker_Split_Empty(t *testing.T) {
	chunker := NewChunker(1000, 150)

	require.Nil(t, chunker.Split(""))
	require.Nil(t, chunker.Split("   \n\t  "))
}

func TestChunker_Split_MultibyteBoundary(t *testing.T) {
	chunker := NewChunker(10, 3)
	text := strings.Repeat("中文字符测试", 5) // 30 runes

	chunks := chunker.Split(text)
	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		require.LessOrEqual(t, len([]rune(chunk.Content)), 10)
	}
	for i := 0; i+1 < len(chunks); i++ {
		cur := []rune(chunks[i].Content)
		next := []rune(chunks[i+1].Content)
		require.Equal(t, string(cur[len(cur)-3:]), string(next[:3]))
	}
}

func TestNewChunker_Defaults(t *testing.T) {
	chunker := NewChunker(0, -1)
	require.Equal(t, DefaultChunkSize, chunker.ChunkSize)
	require.Equal(t, 0, chunker.ChunkOverlap)

	// 重叠不能大于等于块大小
	chunker = NewChunker(100, 100)
	require.Equal(t, 10, chunker.ChunkOverlap)
}

func TestChunker_ContentHashAndTokens(t *testing.T) {
	chunker := NewChunker(1000, 150)
	chunks := chunker.Split("hello world 中文内容")
	require.Len(t, chunks, 1)
	require.Len(t, chunks[0].ContentHash, 64)
	require.Greater(t, chunks[0].TokenCount, 0)
}
