package rag

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// Chunk 向量库中的一条文档分块记录
// ID 为摄取流程分配的顺序标识(doc-0, doc-1, …),同一集合内重复摄取
// 会以相同 ID 覆盖旧记录
type Chunk struct {
	ID         string `json:"id" gorm:"primaryKey;size:64"`
	Collection string `json:"collection" gorm:"size:255;not null;index"`

	Content     string            `json:"content" gorm:"type:text;not null"`
	ContentHash string            `json:"contentHash" gorm:"size:64"`
	TokenCount  int               `json:"tokenCount" gorm:"default:0"`
	Metadata    datatypes.JSONMap `json:"metadata" gorm:"type:jsonb"`

	// 向量(PostgreSQL pgvector 类型)
	Embedding         pgvector.Vector `json:"-" gorm:"type:vector(1536)"`
	EmbeddingModel    string          `json:"embeddingModel" gorm:"size:100"`
	EmbeddingProvider string          `json:"embeddingProvider" gorm:"size:50"`

	CreatedAt time.Time `json:"createdAt" gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"not null;autoUpdateTime"`
}

// ScoredChunk 一次相似度检索返回的单条结果
type ScoredChunk struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"` // 余弦相似度,越接近1越相似
}

// IngestSummary 摄取完成后的汇总信息
type IngestSummary struct {
	Chunks     int    `json:"chunks"`     // 写入的分块数量
	Pages      int    `json:"pages"`      // 解析出的页数
	Collection string `json:"collection"` // 目标集合名
}
