package rag

import (
	"context"
	"errors"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"ragchat/internal/config"
	"ragchat/internal/logger"
	"ragchat/internal/rag/parsers"
	"ragchat/pkg/aiinterface"
)

// ErrNoChunks 整个 PDF 未产出任何分块
var ErrNoChunks = errors.New("未生成任何分块,请检查 PDF 文件内容")

// pdfLoader 抽象 PDF 解析,便于测试替换
type pdfLoader interface {
	ParseFile(path string) ([]parsers.PageText, error)
}

// Ingester PDF 摄取流水线: 解析 → 分块 → 清理元数据 → 编号 → 向量化入库
//
// 分块 ID 始终为 doc-0 … doc-{N-1},重复摄取同一集合会以相同编号覆盖
// 上一次的记录;若新一次产出的分块更少,旧记录的多余部分会残留,
// 本流程不做去重或版本管理
type Ingester struct {
	cfg       *config.Config
	embedder  aiinterface.EmbeddingProvider
	parser    pdfLoader
	chunker   *Chunker
	openStore StoreOpener
}

// NewIngester 创建摄取流水线,使用默认分块参数与 pgvector 存储
func NewIngester(cfg *config.Config, embedder aiinterface.EmbeddingProvider) *Ingester {
	return &Ingester{
		cfg:       cfg,
		embedder:  embedder,
		parser:    parsers.NewPDFParser(),
		chunker:   NewChunker(DefaultChunkSize, DefaultChunkOverlap),
		openStore: OpenStore,
	}
}

// Run 执行一次完整摄取,每步失败立即中止,错误不重试
func (ing *Ingester) Run(ctx context.Context, pdfPath string) (*IngestSummary, error) {
	// 1. 按页解析 PDF
	pages, err := ing.parser.ParseFile(pdfPath)
	if err != nil {
		return nil, err
	}
	logger.Info("PDF 解析完成", zap.String("path", pdfPath), zap.Int("pages", len(pages)))

	// 2. 逐页分块,编号在整次摄取内连续递增
	var chunks []*Chunk
	var texts []string
	for _, page := range pages {
		for _, result := range ing.chunker.Split(page.Text) {
			metadata := CleanMetadata(map[string]any{
				"source": pdfPath,
				"page":   page.Page,
			})

			chunks = append(chunks, &Chunk{
				ID:                fmt.Sprintf("doc-%d", len(chunks)),
				Collection:        ing.cfg.PGVectorCollection,
				Content:           result.Content,
				ContentHash:       result.ContentHash,
				TokenCount:        result.TokenCount,
				Metadata:          datatypes.JSONMap(metadata),
				EmbeddingModel:    ing.embedder.Model(),
				EmbeddingProvider: ing.embedder.ProviderName(),
			})
			texts = append(texts, result.Content)
		}
	}

	if len(chunks) == 0 {
		return nil, ErrNoChunks
	}
	logger.Info("文档分块完成", zap.Int("chunks", len(chunks)))

	// 3. 批量向量化
	embeddings, err := ing.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("向量化失败: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return nil, fmt.Errorf("向量数量不匹配: 期望 %d, 实际 %d", len(chunks), len(embeddings))
	}
	for i, embedding := range embeddings {
		chunks[i].Embedding = pgvector.NewVector(embedding)
	}

	// 4. 入库
	store, err := ing.openStore(ing.cfg.PGVectorURL)
	if err != nil {
		return nil, fmt.Errorf("连接向量库失败: %w", err)
	}
	defer store.Close()

	if err := store.Upsert(ctx, chunks); err != nil {
		return nil, err
	}
	logger.Info("分块已写入向量库",
		zap.Int("chunks", len(chunks)),
		zap.String("collection", ing.cfg.PGVectorCollection),
	)

	return &IngestSummary{
		Chunks:     len(chunks),
		Pages:      len(pages),
		Collection: ing.cfg.PGVectorCollection,
	}, nil
}

// CleanMetadata 移除值为空字符串或 nil 的元数据项,其余原样保留
func CleanMetadata(metadata map[string]any) map[string]any {
	cleaned := make(map[string]any, len(metadata))
	for key, value := range metadata {
		if value == nil {
			continue
		}
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		cleaned[key] = value
	}
	return cleaned
}
