package aiinterface

import (
	"context"
	"strings"
)

// EmbeddingProvider 抽象不同向量模型/服务的统一接口
type EmbeddingProvider interface {
	// Embed 将单条文本转换为向量
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch 批量向量化文本,返回顺序与输入一致
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Model 返回当前使用的嵌入模型标识
	Model() string

	// ProviderName 返回提供商名称(如 "openai", "google")
	ProviderName() string
}

// ChatClient 对话补全客户端统一接口,单轮调用
type ChatClient interface {
	// Invoke 发送单轮提示词并返回响应
	Invoke(ctx context.Context, prompt string) (*ChatResponse, error)

	// Model 返回当前使用的对话模型标识
	Model() string
}

// ChatResponse 对话补全响应
// 部分提供商返回整段文本,部分提供商返回按序排列的内容片段
type ChatResponse struct {
	Content   string   // 整段文本内容
	Fragments []string // 内容片段列表(按生成顺序)
}

// Text 提取纯文本内容,始终返回字符串
// Content 非空时直接返回,否则按顺序拼接 Fragments
func (r *ChatResponse) Text() string {
	if r == nil {
		return ""
	}
	if r.Content != "" {
		return r.Content
	}
	return strings.Join(r.Fragments, "")
}
