package ai

import (
	"fmt"

	"ragchat/internal/ai/google"
	"ragchat/internal/ai/openai"
	"ragchat/internal/config"
	"ragchat/pkg/aiinterface"
)

// NewEmbeddingProvider 根据配置创建向量化客户端
// 提供商在启动时确定一次,之后作为依赖注入使用
func NewEmbeddingProvider(cfg *config.Config) (aiinterface.EmbeddingProvider, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openai.NewEmbeddingClient(cfg.OpenAIAPIKey, cfg.OpenAIEmbeddingModel), nil
	case config.ProviderGoogle:
		return google.NewEmbeddingClient(cfg.GoogleAPIKey, cfg.GoogleEmbeddingModel), nil
	default:
		// 配置校验应已拦截,此处为防御性检查
		return nil, fmt.Errorf("AI_PROVIDER 取值无效: %s", cfg.Provider)
	}
}

// NewChatClient 根据配置创建对话补全客户端,固定零温度生成
func NewChatClient(cfg *config.Config) (aiinterface.ChatClient, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openai.NewChatClient(cfg.OpenAIAPIKey, cfg.OpenAILLMModel), nil
	case config.ProviderGoogle:
		return google.NewChatClient(cfg.GoogleAPIKey, cfg.GoogleLLMModel), nil
	default:
		return nil, fmt.Errorf("AI_PROVIDER 取值无效: %s", cfg.Provider)
	}
}
