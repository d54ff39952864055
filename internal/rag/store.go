package rag

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentStore 抽象分块的写入与相似度检索,便于测试替换实现
type DocumentStore interface {
	Upsert(ctx context.Context, chunks []*Chunk) error
	Search(ctx context.Context, collection string, queryVector []float32, topK int) ([]ScoredChunk, error)
	Close() error
}

// StoreOpener 按连接串打开向量存储
// 每个顶层操作(一次摄取、一次提问)打开一条新连接,用完即关
type StoreOpener func(url string) (DocumentStore, error)

// PGVectorStore 基于 PostgreSQL pgvector 扩展的向量存储实现
type PGVectorStore struct {
	db *gorm.DB
}

// OpenStore 连接数据库并准备 pgvector 扩展与表结构
func OpenStore(url string) (DocumentStore, error) {
	db, err := gorm.Open(postgres.Open(url), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("打开数据库连接失败: %w", err)
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return nil, fmt.Errorf("启用 pgvector 扩展失败: %w", err)
	}
	if err := db.AutoMigrate(&Chunk{}); err != nil {
		return nil, fmt.Errorf("迁移分块表失败: %w", err)
	}

	return &PGVectorStore{db: db}, nil
}

// NewPGVectorStore 在现有连接上创建存储实例(测试用)
func NewPGVectorStore(db *gorm.DB) *PGVectorStore {
	return &PGVectorStore{db: db}
}

// Upsert 按主键写入分块,已存在的 ID 覆盖内容、元数据与向量
func (s *PGVectorStore) Upsert(ctx context.Context, chunks []*Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"collection", "content", "content_hash", "token_count",
				"metadata", "embedding", "embedding_model", "embedding_provider",
				"updated_at",
			}),
		}).
		Create(chunks).Error
	if err != nil {
		return fmt.Errorf("写入分块失败: %w", err)
	}

	return nil
}

// Search 在指定集合内做余弦相似度检索,按相似度降序返回至多 topK 条
// <=> 是 pgvector 的余弦距离操作符,1 - 距离即相似度
func (s *PGVectorStore) Search(ctx context.Context, collection string, queryVector []float32, topK int) ([]ScoredChunk, error) {
	if len(queryVector) == 0 {
		return nil, fmt.Errorf("查询向量不能为空")
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	query := `
		SELECT
			id,
			collection,
			content,
			content_hash,
			token_count,
			metadata,
			1 - (embedding <=> ?) AS score
		FROM chunks
		WHERE collection = ?
		ORDER BY embedding <=> ?
		LIMIT ?
	`

	queryVec := pgvector.NewVector(queryVector)

	var rows []struct {
		ID          string            `gorm:"column:id"`
		Collection  string            `gorm:"column:collection"`
		Content     string            `gorm:"column:content"`
		ContentHash string            `gorm:"column:content_hash"`
		TokenCount  int               `gorm:"column:token_count"`
		Metadata    datatypes.JSONMap `gorm:"column:metadata"`
		Score       float64           `gorm:"column:score"`
	}

	if err := s.db.WithContext(ctx).Raw(query, queryVec, collection, queryVec, topK).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("向量检索失败: %w", err)
	}

	results := make([]ScoredChunk, 0, len(rows))
	for _, r := range rows {
		results = append(results, ScoredChunk{
			Chunk: Chunk{
				ID:          r.ID,
				Collection:  r.Collection,
				Content:     r.Content,
				ContentHash: r.ContentHash,
				TokenCount:  r.TokenCount,
				Metadata:    r.Metadata,
			},
			Score: r.Score,
		})
	}

	return results, nil
}

// Close 关闭底层数据库连接
func (s *PGVectorStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
