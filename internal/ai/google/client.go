package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ragchat/pkg/aiinterface"
)

const (
	defaultBaseURL    = "https://generativelanguage.googleapis.com/v1beta"
	defaultMaxRetries = 3
	defaultTimeout    = 60 * time.Second
)

// Client Google Gemini 客户端,同时提供向量化与对话补全能力
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	maxRetries int
}

// NewEmbeddingClient 创建 Gemini 向量化客户端
func NewEmbeddingClient(apiKey, model string) *Client {
	return newClient(apiKey, model)
}

// NewChatClient 创建 Gemini 对话客户端
func NewChatClient(apiKey, model string) *Client {
	return newClient(apiKey, model)
}

func newClient(apiKey, model string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      strings.TrimPrefix(model, "models/"),
		maxRetries: defaultMaxRetries,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// Embed 将文本转换为向量
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("文本不能为空")
	}

	req := &EmbedContentRequest{
		Model:   "models/" + c.model,
		Content: GeminiContent{Parts: []GeminiPart{{Text: text}}},
	}

	var resp EmbedContentResponse
	if err := c.doJSON(ctx, "embedContent", req, &resp); err != nil {
		return nil, fmt.Errorf("调用 Gemini embedContent 失败: %w", err)
	}
	if len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("Gemini API 返回空向量")
	}

	return resp.Embedding.Values, nil
}

// EmbedBatch 批量向量化文本
// batchEmbedContents 单次请求最多 100 条,超出时分批处理
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	const batchSize = 100
	allEmbeddings := make([][]float32, 0, len(texts))

	for i := 0; i < len(texts); i += batchSize {
		end := i + batchSize
		if end > len(texts) {
			end = len(texts)
		}

		batch := texts[i:end]
		requests := make([]EmbedContentRequest, len(batch))
		for j, text := range batch {
			requests[j] = EmbedContentRequest{
				Model:   "models/" + c.model,
				Content: GeminiContent{Parts: []GeminiPart{{Text: text}}},
			}
		}

		var resp BatchEmbedContentsResponse
		if err := c.doJSON(ctx, "batchEmbedContents", &BatchEmbedContentsRequest{Requests: requests}, &resp); err != nil {
			return nil, fmt.Errorf("批量向量化失败(batch %d-%d): %w", i, end, err)
		}
		if len(resp.Embeddings) != len(batch) {
			return nil, fmt.Errorf("Gemini API 返回向量数量不匹配: 期望 %d, 实际 %d", len(batch), len(resp.Embeddings))
		}

		for _, emb := range resp.Embeddings {
			allEmbeddings = append(allEmbeddings, emb.Values)
		}
	}

	return allEmbeddings, nil
}

// Invoke 发送单轮提示词,零温度生成
// Gemini 以片段列表的形式返回内容,原样映射到 ChatResponse.Fragments
func (c *Client) Invoke(ctx context.Context, prompt string) (*aiinterface.ChatResponse, error) {
	req := &GenerateContentRequest{
		Contents: []GeminiContent{
			{Role: "user", Parts: []GeminiPart{{Text: prompt}}},
		},
		GenerationConfig: &GenerationConfig{Temperature: 0},
	}

	var resp GenerateContentResponse
	if err := c.doJSON(ctx, "generateContent", req, &resp); err != nil {
		return nil, fmt.Errorf("调用 Gemini generateContent 失败: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("Gemini API 返回空响应")
	}

	parts := resp.Candidates[0].Content.Parts
	fragments := make([]string, 0, len(parts))
	for _, part := range parts {
		fragments = append(fragments, part.Text)
	}

	return &aiinterface.ChatResponse{Fragments: fragments}, nil
}

// Model 获取当前使用的模型
func (c *Client) Model() string {
	return c.model
}

// ProviderName 获取提供商名称
func (c *Client) ProviderName() string {
	return "google"
}

// doJSON 发送 JSON 请求并解析响应(带重试)
// 仅对网络错误和 5xx 状态码重试,4xx 直接返回
func (c *Client) doJSON(ctx context.Context, method string, reqBody, respBody any) error {
	url := fmt.Sprintf("%s/models/%s:%s?key=%s", c.baseURL, c.model, method, c.apiKey)

	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("序列化请求失败: %w", err)
	}

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("创建 HTTP 请求失败: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			lastErr = err
			if sleepErr := sleepCtx(ctx, time.Duration(i+1)*time.Second); sleepErr != nil {
				return sleepErr
			}
			continue
		}

		if resp.StatusCode == http.StatusOK {
			defer resp.Body.Close()
			if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
				return fmt.Errorf("解析响应失败: %w", err)
			}
			return nil
		}

		respBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		lastErr = fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBytes))

		// 仅 5xx 错误重试
		if resp.StatusCode < http.StatusInternalServerError {
			return lastErr
		}
		if sleepErr := sleepCtx(ctx, time.Duration(i+1)*time.Second); sleepErr != nil {
			return sleepErr
		}
	}

	return lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
