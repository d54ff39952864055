package rag

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ragchat/internal/config"
	"ragchat/internal/logger"
	"ragchat/pkg/aiinterface"
)

// DefaultTopK 检索结果数量默认值
const DefaultTopK = 10

// Searcher 相似度检索流水线
// 查询向量由与摄取时相同的嵌入配置计算;若摄取后切换了提供商,
// 检索质量会静默下降而不会报错
type Searcher struct {
	cfg       *config.Config
	embedder  aiinterface.EmbeddingProvider
	openStore StoreOpener
}

// NewSearcher 创建检索流水线
func NewSearcher(cfg *config.Config, embedder aiinterface.EmbeddingProvider) *Searcher {
	return &Searcher{
		cfg:       cfg,
		embedder:  embedder,
		openStore: OpenStore,
	}
}

// Search 检索与查询最相似的至多 topK 条分块,按相似度降序
// topK 大于库内分块总数时返回全部;topK 非正时取默认值
func (s *Searcher) Search(ctx context.Context, query string, topK int) ([]ScoredChunk, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	queryVector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("查询向量化失败: %w", err)
	}

	store, err := s.openStore(s.cfg.PGVectorURL)
	if err != nil {
		return nil, fmt.Errorf("连接向量库失败: %w", err)
	}
	defer store.Close()

	results, err := store.Search(ctx, s.cfg.PGVectorCollection, queryVector, topK)
	if err != nil {
		return nil, err
	}

	logger.Debug("相似度检索完成",
		zap.Int("topK", topK),
		zap.Int("results", len(results)),
	)
	return results, nil
}
