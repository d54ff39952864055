package ai

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ragchat/internal/config"
)

func TestNewEmbeddingProvider(t *testing.T) {
	cfg := &config.Config{
		Provider:             config.ProviderOpenAI,
		OpenAIAPIKey:         "sk-test",
		OpenAIEmbeddingModel: "text-embedding-3-small",
	}
	provider, err := NewEmbeddingProvider(cfg)
	require.NoError(t, err)
	require.Equal(t, "openai", provider.ProviderName())
	require.Equal(t, "text-embedding-3-small", provider.Model())

	cfg = &config.Config{
		Provider:             config.ProviderGoogle,
		GoogleAPIKey:         "test-key",
		GoogleEmbeddingModel: "text-embedding-004",
	}
	provider, err = NewEmbeddingProvider(cfg)
	require.NoError(t, err)
	require.Equal(t, "google", provider.ProviderName())
	require.Equal(t, "text-embedding-004", provider.Model())
}

func TestNewChatClient(t *testing.T) {
	cfg := &config.Config{
		Provider:       config.ProviderOpenAI,
		OpenAIAPIKey:   "sk-test",
		OpenAILLMModel: "gpt-4o-mini",
	}
	client, err := NewChatClient(cfg)
	require.NoError(t, err)
	require.Equal(t, "gpt-4o-mini", client.Model())
}

func TestFactory_InvalidProvider(t *testing.T) {
	cfg := &config.Config{Provider: "azure"}

	_, err := NewEmbeddingProvider(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "AI_PROVIDER")

	_, err = NewChatClient(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "AI_PROVIDER")
}
