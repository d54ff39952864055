package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ragchat/internal/rag/parsers"
)

func newTestIngester(parser pdfLoader, store *fakeStore, opened *int) *Ingester {
	return &Ingester{
		cfg:       testConfig(),
		embedder:  &fakeEmbedder{},
		parser:    parser,
		chunker:   NewChunker(100, 10),
		openStore: storeOpenerFor(store, opened),
	}
}

func TestIngester_Run(t *testing.T) {
	parser := &fakeParser{pages: []parsers.PageText{
		{Page: 1, Text: strings.Repeat("第一页的内容。", 30)},
		{Page: 2, Text: "第二页内容较短。"},
	}}
	store := &fakeStore{}
	ing := newTestIngester(parser, store, nil)

	summary, err := ing.Run(context.Background(), "document.pdf")
	require.NoError(t, err)
	require.Equal(t, 2, summary.Pages)
	require.Equal(t, "docs", summary.Collection)
	require.Equal(t, len(store.upserted), summary.Chunks)
	require.NotEmpty(t, store.upserted)
	require.True(t, store.closed)
}

func TestIngester_Run_SequentialIDs(t *testing.T) {
	parser := &fakeParser{pages: []parsers.PageText{
		{Page: 1, Text: strings.Repeat("a", 250)},
		{Page: 2, Text: strings.Repeat("b", 250)},
	}}
	store := &fakeStore{}
	ing := newTestIngester(parser, store, nil)

	_, err := ing.Run(context.Background(), "document.pdf")
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i, chunk := range store.upserted {
		require.Equal(t, fmt.Sprintf("doc-%d", i), chunk.ID)
		require.False(t, seen[chunk.ID], "ID 重复: %s", chunk.ID)
		seen[chunk.ID] = true
	}
}

func TestIngester_Run_ChunkFields(t *testing.T) {
	parser := &fakeParser{pages: []parsers.PageText{{Page: 7, Text: "只有一页的内容。"}}}
	store := &fakeStore{}
	ing := newTestIngester(parser, store, nil)

	_, err := ing.Run(context.Background(), "document.pdf")
	require.NoError(t, err)
	require.Len(t, store.upserted, 1)

	chunk := store.upserted[0]
	require.Equal(t, "docs", chunk.Collection)
	require.Equal(t, "document.pdf", chunk.Metadata["source"])
	require.EqualValues(t, 7, chunk.Metadata["page"])
	require.Equal(t, "test-embedding", chunk.EmbeddingModel)
	require.Equal(t, "test-provider", chunk.EmbeddingProvider)
	require.NotEmpty(t, chunk.Embedding.Slice())
}

func TestIngester_Run_NoChunks(t *testing.T) {
	// 所有页面均为空白时不应触碰向量库
	parser := &fakeParser{pages: []parsers.PageText{{Page: 1, Text: "   \n  "}}}
	store := &fakeStore{}
	opened := 0
	ing := newTestIngester(parser, store, &opened)

	_, err := ing.Run(context.Background(), "document.pdf")
	require.ErrorIs(t, err, ErrNoChunks)
	require.Zero(t, opened)
	require.Empty(t, store.upserted)
}

func TestIngester_Run_ParseError(t *testing.T) {
	parseErr := errors.New("PDF 文件不存在: document.pdf")
	ing := newTestIngester(&fakeParser{err: parseErr}, &fakeStore{}, nil)

	_, err := ing.Run(context.Background(), "document.pdf")
	require.ErrorIs(t, err, parseErr)
}

func TestPDFParser_FileNotFound(t *testing.T) {
	parser := parsers.NewPDFParser()
	_, err := parser.ParseFile("testdata/不存在的文件.pdf")
	require.Error(t, err)
	require.Contains(t, err.Error(), "PDF 文件不存在")
}

func TestCleanMetadata(t *testing.T) {
	metadata := map[string]any{
		"source":  "document.pdf",
		"page":    3,
		"title":   "",
		"author":  nil,
		"creator": "writer",
	}

	cleaned := CleanMetadata(metadata)
	require.Equal(t, map[string]any{
		"source":  "document.pdf",
		"page":    3,
		"creator": "writer",
	}, cleaned)
}
