package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"ragchat/pkg/aiinterface"
)

const defaultMaxRetries = 3

// EmbeddingClient OpenAI 向量化客户端
type EmbeddingClient struct {
	client *openai.Client
	model  string
}

// NewEmbeddingClient 创建 OpenAI 向量化客户端
func NewEmbeddingClient(apiKey, model string) *EmbeddingClient {
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	return &EmbeddingClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Embed 将文本转换为向量
func (c *EmbeddingClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("文本不能为空")
	}

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(c.model),
	})
	if err != nil {
		return nil, fmt.Errorf("调用 OpenAI Embeddings API 失败: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("OpenAI API 返回空向量")
	}

	return resp.Data[0].Embedding, nil
}

// EmbedBatch 批量向量化文本
// OpenAI API 单次请求最多 2048 个输入,超出时分批处理
func (c *EmbeddingClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	const batchSize = 2048
	allEmbeddings := make([][]float32, 0, len(texts))

	for i := 0; i < len(texts); i += batchSize {
		end := i + batchSize
		if end > len(texts) {
			end = len(texts)
		}

		resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: texts[i:end],
			Model: openai.EmbeddingModel(c.model),
		})
		if err != nil {
			return nil, fmt.Errorf("批量向量化失败(batch %d-%d): %w", i, end, err)
		}
		if len(resp.Data) != end-i {
			return nil, fmt.Errorf("OpenAI API 返回向量数量不匹配: 期望 %d, 实际 %d", end-i, len(resp.Data))
		}

		for _, data := range resp.Data {
			allEmbeddings = append(allEmbeddings, data.Embedding)
		}
	}

	return allEmbeddings, nil
}

// Model 获取当前使用的模型
func (c *EmbeddingClient) Model() string {
	return c.model
}

// ProviderName 获取提供商名称
func (c *EmbeddingClient) ProviderName() string {
	return "openai"
}

// ChatClient OpenAI 对话补全客户端,固定零温度生成
type ChatClient struct {
	client     *openai.Client
	model      string
	maxRetries int
}

// NewChatClient 创建 OpenAI 对话客户端
func NewChatClient(apiKey, model string) *ChatClient {
	return &ChatClient{
		client:     openai.NewClient(apiKey),
		model:      model,
		maxRetries: defaultMaxRetries,
	}
}

// Invoke 发送单轮提示词
func (c *ChatClient) Invoke(ctx context.Context, prompt string) (*aiinterface.ChatResponse, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0,
	}

	// 调用 API(带重试)
	var resp openai.ChatCompletionResponse
	var err error
	for i := 0; i <= c.maxRetries; i++ {
		resp, err = c.client.CreateChatCompletion(ctx, req)
		if err == nil {
			break
		}
		if !isRetryableError(err) {
			break
		}
		if i < c.maxRetries {
			backoff := time.Duration(1<<uint(i)) * time.Second
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("调用 OpenAI Chat API 失败: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("OpenAI API 返回空响应")
	}

	return &aiinterface.ChatResponse{
		Content: resp.Choices[0].Message.Content,
	}, nil
}

// Model 获取当前使用的模型
func (c *ChatClient) Model() string {
	return c.model
}

// isRetryableError 判断错误是否可重试(限流与服务端错误)
func isRetryableError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests ||
			apiErr.HTTPStatusCode >= http.StatusInternalServerError
	}
	return false
}
