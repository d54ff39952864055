package rag

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// 默认分块参数
const (
	DefaultChunkSize    = 1000 // 每块字符数
	DefaultChunkOverlap = 150  // 相邻块重叠字符数
)

// Chunker 固定大小分块器
// 相邻分块之间保留固定长度的重叠,按 rune 计数
type Chunker struct {
	ChunkSize    int
	ChunkOverlap int
}

// NewChunker 创建分块器
func NewChunker(chunkSize, chunkOverlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}
	if chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize / 10
	}

	return &Chunker{
		ChunkSize:    chunkSize,
		ChunkOverlap: chunkOverlap,
	}
}

// ChunkResult 分块结果
type ChunkResult struct {
	Content     string // 分块内容
	ChunkIndex  int    // 分块索引(从0开始)
	StartOffset int    // 起始偏移量(rune)
	EndOffset   int    // 结束偏移量(rune)
	TokenCount  int    // Token数量(近似)
	ContentHash string // 内容哈希(SHA256)
}

// Split 按固定大小切分文本
// 每块不超过 ChunkSize,相邻块首尾共享恰好 ChunkOverlap 个字符
// (末块可能不足);空白文本返回零个分块
func (c *Chunker) Split(content string) []*ChunkResult {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	runes := []rune(content)
	totalLen := len(runes)
	step := c.ChunkSize - c.ChunkOverlap

	chunks := make([]*ChunkResult, 0, totalLen/step+1)
	index := 0

	for start := 0; start < totalLen; start += step {
		end := start + c.ChunkSize
		if end > totalLen {
			end = totalLen
		}

		chunkContent := string(runes[start:end])
		chunks = append(chunks, &ChunkResult{
			Content:     chunkContent,
			ChunkIndex:  index,
			StartOffset: start,
			EndOffset:   end,
			TokenCount:  estimateTokenCount(chunkContent),
			ContentHash: hashContent(chunkContent),
		})
		index++

		if end >= totalLen {
			break
		}
	}

	return chunks
}

// estimateTokenCount 估算Token数量
// 英文按单词数,中文按字符数/1.5
func estimateTokenCount(text string) int {
	wordCount := len(strings.Fields(text))

	chineseCount := 0
	for _, r := range text {
		if r >= 0x4E00 && r <= 0x9FA5 {
			chineseCount++
		}
	}

	return wordCount + int(float64(chineseCount)/1.5)
}

// hashContent 计算内容哈希
func hashContent(content string) string {
	hash := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x", hash)
}
